// Package web holds what every HTTP handler shares: the per-request session, the authentication
// guard, the JSON envelope and error page rendering.
package web

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"pirate-admin/backend/internal/session/domain"
	"pirate-admin/backend/internal/session/resolver"
)

const sessionKey = "pirate.session"

// SessionResolver resolves the identity provider cookie value into a session, or nil.
type SessionResolver interface {
	Resolve(ctx context.Context, cookieValue string) *domain.Session
}

// SessionMiddleware resolves the session once per request and stores it on the context.
// Requests without a valid session continue with no session attached.
func SessionMiddleware(r SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, err := c.Cookie(resolver.CookieName)
		if err == nil && value != "" {
			if s := r.Resolve(c.Request.Context(), value); s != nil {
				SetSession(c, s)
			}
		}
		c.Next()
	}
}

// SetSession attaches s to the request.
func SetSession(c *gin.Context, s *domain.Session) {
	c.Set(sessionKey, s)
}

// CurrentSession returns the session resolved for this request, or nil.
func CurrentSession(c *gin.Context) *domain.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	s, _ := v.(*domain.Session)
	return s
}

// IsAuthenticated reports whether the request carries a resolved session.
func IsAuthenticated(c *gin.Context) bool {
	return CurrentSession(c) != nil
}

// Authenticated guards a route group. Unauthenticated GET and HEAD requests are redirected to
// loginURL with the original URL as return_to; other methods get a 403 envelope.
func Authenticated(loginURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsAuthenticated(c) {
			c.Next()
			return
		}
		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
			c.Redirect(http.StatusFound, loginRedirect(loginURL, c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.AbortWithStatusJSON(http.StatusForbidden, Envelope{Success: false, Reason: "Authentication required"})
	}
}

func loginRedirect(loginURL, returnTo string) string {
	u, err := url.Parse(loginURL)
	if err != nil {
		return loginURL
	}
	q := u.Query()
	q.Set("return_to", returnTo)
	u.RawQuery = q.Encode()
	return u.String()
}

// ClearSessionCookie expires the identity provider cookie on the client.
func ClearSessionCookie(c *gin.Context) {
	c.SetCookie(resolver.CookieName, "", -1, "/", "", false, true)
}
