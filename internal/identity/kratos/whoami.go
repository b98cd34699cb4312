package kratos

import (
	"time"

	"github.com/google/uuid"

	sessiondomain "pirate-admin/backend/internal/session/domain"
	userdomain "pirate-admin/backend/internal/user/domain"
)

// WhoAmIResponse is the subset of the whoami payload this service reads. Pointer fields let
// Validate tell a missing value from an empty one.
type WhoAmIResponse struct {
	ID        *string    `json:"id"`
	IssuedAt  *time.Time `json:"issued_at"`
	ExpiresAt *time.Time `json:"expires_at"`
	Identity  *Identity  `json:"identity"`
}

type Identity struct {
	ID                  *string             `json:"id"`
	Traits              *Traits             `json:"traits"`
	VerifiableAddresses []VerifiableAddress `json:"verifiable_addresses"`
}

// Traits mirrors the identity schema. Phone is optional; the provider does not carry phone
// numbers yet.
type Traits struct {
	Name          *TraitName    `json:"name"`
	Email         *string       `json:"email"`
	Phone         *string       `json:"phone"`
	PostalAddress *TraitAddress `json:"postal_address"`
	Municipality  *string       `json:"municipality"`
	Country       *string       `json:"country"`
}

type TraitName struct {
	First *string `json:"first"`
	Last  *string `json:"last"`
}

type TraitAddress struct {
	Street     *string `json:"street"`
	PostalCode *string `json:"postal_code"`
	City       *string `json:"city"`
}

type VerifiableAddress struct {
	Verified *bool `json:"verified"`
}

// Validate checks every required field, in payload order, and that both ids are UUIDs.
func (r *WhoAmIResponse) Validate() error {
	if r.ID == nil {
		return missing("id")
	}
	if r.IssuedAt == nil {
		return missing("issued_at")
	}
	if r.ExpiresAt == nil {
		return missing("expires_at")
	}
	id := r.Identity
	if id == nil {
		return missing("identity")
	}
	if id.ID == nil {
		return missing("identity.id")
	}
	t := id.Traits
	if t == nil {
		return missing("identity.traits")
	}
	if t.Name == nil {
		return missing("identity.traits.name")
	}
	if t.Name.First == nil {
		return missing("identity.traits.name.first")
	}
	if t.Name.Last == nil {
		return missing("identity.traits.name.last")
	}
	if t.Email == nil {
		return missing("identity.traits.email")
	}
	if t.PostalAddress == nil {
		return missing("identity.traits.postal_address")
	}
	if t.PostalAddress.Street == nil {
		return missing("identity.traits.postal_address.street")
	}
	if t.PostalAddress.PostalCode == nil {
		return missing("identity.traits.postal_address.postal_code")
	}
	if t.PostalAddress.City == nil {
		return missing("identity.traits.postal_address.city")
	}
	if t.Municipality == nil {
		return missing("identity.traits.municipality")
	}
	if t.Country == nil {
		return missing("identity.traits.country")
	}
	if len(id.VerifiableAddresses) == 0 || id.VerifiableAddresses[0].Verified == nil {
		return missing("identity.verifiable_addresses[0].verified")
	}

	if _, err := uuid.Parse(*r.ID); err != nil {
		return &MalformedFieldError{Field: "id", Err: err}
	}
	if _, err := uuid.Parse(*id.ID); err != nil {
		return &MalformedFieldError{Field: "identity.id", Err: err}
	}
	return nil
}

// Session validates r and builds the session record. hash is the raw cookie header value the
// session was resolved with. The user is not yet enriched with the local row.
func (r *WhoAmIResponse) Session(hash, logoutURL string) (*sessiondomain.Session, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	t := r.Identity.Traits
	user := &userdomain.User{
		ID: uuid.MustParse(*r.Identity.ID),
		Name: userdomain.Name{
			First: *t.Name.First,
			Last:  *t.Name.Last,
		},
		Email: *t.Email,
		PostalAddress: userdomain.PostalAddress{
			Street:     *t.PostalAddress.Street,
			PostalCode: *t.PostalAddress.PostalCode,
			City:       *t.PostalAddress.City,
		},
		Municipality: *t.Municipality,
		Country:      *t.Country,
		Verified:     *r.Identity.VerifiableAddresses[0].Verified,
	}
	if t.Phone != nil {
		user.Phone = *t.Phone
	}
	return &sessiondomain.Session{
		ID:        uuid.MustParse(*r.ID),
		Hash:      hash,
		IssuedAt:  *r.IssuedAt,
		ExpiresAt: *r.ExpiresAt,
		User:      user,
		LogoutURL: logoutURL,
	}, nil
}

func missing(field string) error {
	return &MissingFieldError{Field: field}
}
