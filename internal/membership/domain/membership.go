package domain

import (
	"time"

	"github.com/google/uuid"
)

// Membership links a user to an organization.
type Membership struct {
	UserID         uuid.UUID `json:"user_id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	Created        time.Time `json:"created"`
}
