package web

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	geographydomain "pirate-admin/backend/internal/geography/domain"
	organizationdomain "pirate-admin/backend/internal/organization/domain"
)

func TestParse_Embedded(t *testing.T) {
	tmpl, err := Parse("")
	require.NoError(t, err)

	for _, name := range []string{
		"admin/organizations.html",
		"admin/geography.html",
		"admin/users.html",
		"error/403.html",
		"error/404.html",
		"error/500.html",
		"error/default.html",
	} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestParse_RendersOrganizations(t *testing.T) {
	tmpl, err := Parse("")
	require.NoError(t, err)

	oslo := &organizationdomain.Organization{
		ID:      uuid.New(),
		Name:    "Piratpartiet Oslo",
		Active:  true,
		Created: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	var buf bytes.Buffer
	err = tmpl.ExecuteTemplate(&buf, "admin/organizations.html", map[string]any{
		"title":         "Organizations",
		"organizations": []*organizationdomain.Organization{oslo},
		"default":       oslo,
		"search":        "Oslo",
	})
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Piratpartiet Oslo")
	assert.Contains(t, out, "2024-03-01")
	assert.Contains(t, out, "Default organization")
}

func TestParse_RendersGeographyDepth(t *testing.T) {
	tmpl, err := Parse("")
	require.NoError(t, err)

	var buf bytes.Buffer
	err = tmpl.ExecuteTemplate(&buf, "admin/geography.html", map[string]any{
		"title": "Geography",
		"areas": []*geographydomain.Area{{ID: uuid.New(), Name: "Grünerløkka", Path: "norway.oslo.grunerlokka"}},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `data-depth="2"`)
}

func TestParse_OverrideDir(t *testing.T) {
	dir := t.TempDir()
	for _, sub := range []string{"layout", "admin", "error"} {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, sub), 0o755))
	}
	files := map[string]string{
		"layout/layout.html": `{{define "layout/header"}}{{end}}`,
		"admin/users.html":   `{{define "admin/users.html"}}custom users{{end}}`,
		"error/default.html": `{{define "error/default.html"}}custom {{.status}}{{end}}`,
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}

	tmpl, err := Parse(dir)
	require.NoError(t, err)
	assert.Nil(t, tmpl.Lookup("admin/organizations.html"))

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "admin/users.html", nil))
	assert.Equal(t, "custom users", buf.String())
}

func TestParse_MissingDir(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
