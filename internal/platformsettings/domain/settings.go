package domain

import "github.com/google/uuid"

// Settings is the single global settings row. DefaultOrganization is nil when no default is configured.
type Settings struct {
	DefaultOrganization *uuid.UUID
}

// IsDefault reports whether id is the configured default organization.
func (s *Settings) IsDefault(id uuid.UUID) bool {
	return s != nil && s.DefaultOrganization != nil && *s.DefaultOrganization == id
}
