package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOrderColumn(t *testing.T) {
	testCases := []struct {
		in   string
		want OrderColumn
	}{
		{"name", OrderByName},
		{"created", OrderByCreated},
		{"", OrderByName},
		{"description", OrderByName},
		{"name; DROP TABLE organizations", OrderByName},
		{"CREATED", OrderByName},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, ParseOrderColumn(tc.in), "ParseOrderColumn(%q)", tc.in)
	}
}

func TestOrganizationValidate(t *testing.T) {
	assert.Error(t, (&Organization{}).Validate())
	assert.Error(t, (&Organization{Name: "   "}).Validate())
	assert.NoError(t, (&Organization{Name: "Oslo"}).Validate())
}
