// Package resolver turns the identity provider session cookie into a Session, once per request.
package resolver

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pirate-admin/backend/internal/identity/kratos"
	"pirate-admin/backend/internal/logging"
	"pirate-admin/backend/internal/session/domain"
	userdomain "pirate-admin/backend/internal/user/domain"
)

// CookieName is the identity provider's session cookie.
const CookieName = "ory_kratos_session"

// IdentityProvider is the part of the identity provider API the resolver calls.
type IdentityProvider interface {
	WhoAmI(ctx context.Context, cookie string) (*kratos.WhoAmIResponse, error)
	LogoutURL(ctx context.Context, cookie string) (string, error)
}

// UserInfoLookup loads the local enrichment row for a user.
type UserInfoLookup interface {
	GetUserInfo(ctx context.Context, id uuid.UUID) (*userdomain.UserInfo, error)
}

type Resolver struct {
	identity IdentityProvider
	users    UserInfoLookup
	logger   *zap.Logger
}

// New returns a resolver. logger may be nil.
func New(identity IdentityProvider, users UserInfoLookup, logger *zap.Logger) *Resolver {
	return &Resolver{
		identity: identity,
		users:    users,
		logger:   logging.OrGlobal(logger).Named("session"),
	}
}

// Hash returns the cookie header the identity provider expects for cookieValue.
func Hash(cookieValue string) string {
	return CookieName + "=" + cookieValue
}

// Resolve returns the session for cookieValue, or nil when there is no cookie or the session
// cannot be built. Failures are logged at critical severity and never returned.
func (r *Resolver) Resolve(ctx context.Context, cookieValue string) *domain.Session {
	if cookieValue == "" {
		return nil
	}
	hash := Hash(cookieValue)

	resp, err := r.identity.WhoAmI(ctx, hash)
	if err != nil {
		logging.Critical(r.logger, "error when retrieving session", zap.Error(err))
		return nil
	}
	logoutURL, err := r.identity.LogoutURL(ctx, hash)
	if err != nil {
		logging.Critical(r.logger, "error when retrieving session", zap.Error(err))
		return nil
	}

	session, err := resp.Session(hash, logoutURL)
	if err != nil {
		logging.Critical(r.logger, "error when building session and user model", zap.Error(err))
		return nil
	}

	info, err := r.users.GetUserInfo(ctx, session.User.ID)
	if err != nil {
		logging.Critical(r.logger, "error when building session and user model", zap.Stringer("user_id", session.User.ID), zap.Error(err))
		return nil
	}
	session.User.Enrich(info)

	r.logger.Debug("Session user: " + session.User.ID.String())
	return session
}
