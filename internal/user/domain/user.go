package domain

import (
	"time"

	"github.com/google/uuid"
)

// Name is a user's given and family name as held by the identity provider.
type Name struct {
	First string `json:"first"`
	Last  string `json:"last"`
}

// PostalAddress is a user's postal address as held by the identity provider.
type PostalAddress struct {
	Street     string `json:"street"`
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
}

// User merges identity provider traits with the optional local enrichment row.
// Created and Number are nil when no local row exists.
type User struct {
	ID            uuid.UUID     `json:"id"`
	Name          Name          `json:"name"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone"`
	PostalAddress PostalAddress `json:"postal_address"`
	Municipality  string        `json:"municipality"`
	Country       string        `json:"country"`
	Verified      bool          `json:"verified"`
	Created       *time.Time    `json:"created"`
	Number        *int64        `json:"number"`
}

// Enrich copies the local row's fields onto u. A nil info clears them.
func (u *User) Enrich(info *UserInfo) {
	if info == nil {
		u.Created = nil
		u.Number = nil
		return
	}
	created := info.Created
	u.Created = &created
	u.Number = info.Number
}

// UserInfo is the local users row keyed by the identity provider's identity id.
type UserInfo struct {
	ID      uuid.UUID `json:"id"`
	Created time.Time `json:"created"`
	Number  *int64    `json:"number"`
	Admin   bool      `json:"admin"`
}
