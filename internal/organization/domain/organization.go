package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Organization is an organization managed from the admin pages. Name is unique in storage.
type Organization struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Active      bool      `json:"active"`
	Created     time.Time `json:"created"`
}

// OrderColumn is a column organizations can be listed by.
type OrderColumn string

const (
	OrderByName    OrderColumn = "name"
	OrderByCreated OrderColumn = "created"
)

// ParseOrderColumn maps a user-supplied column to the allow-list; anything else orders by name.
func ParseOrderColumn(s string) OrderColumn {
	switch OrderColumn(s) {
	case OrderByCreated:
		return OrderByCreated
	default:
		return OrderByName
	}
}

// Validate checks the fields a create or update request must carry.
func (o *Organization) Validate() error {
	if strings.TrimSpace(o.Name) == "" {
		return errors.New("name is required")
	}
	return nil
}
