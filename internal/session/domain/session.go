package domain

import (
	"time"

	"github.com/google/uuid"

	userdomain "pirate-admin/backend/internal/user/domain"
)

// Session is the identity provider session behind the current request. It is built fresh for
// every request and never persisted.
type Session struct {
	ID        uuid.UUID        `json:"id"`
	Hash      string           `json:"-"`
	IssuedAt  time.Time        `json:"issued_at"`
	ExpiresAt time.Time        `json:"expires_at"`
	User      *userdomain.User `json:"user"`
	LogoutURL string           `json:"logout_url"`
}

// UserID returns the session user's id, or uuid.Nil when the session or its user is missing.
func (s *Session) UserID() uuid.UUID {
	if s == nil || s.User == nil {
		return uuid.Nil
	}
	return s.User.ID
}
