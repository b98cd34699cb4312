// Package server builds the gin engine: the middleware chain and every route.
package server

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"pirate-admin/backend/internal/audit"
	geographyhandler "pirate-admin/backend/internal/geography/handler"
	healthhandler "pirate-admin/backend/internal/health/handler"
	organizationhandler "pirate-admin/backend/internal/organization/handler"
	"pirate-admin/backend/internal/platform/web"
	sessionhandler "pirate-admin/backend/internal/session/handler"
	userhandler "pirate-admin/backend/internal/user/handler"
)

// Options holds router-wide settings.
type Options struct {
	// ServiceName is the otelgin server name. Empty disables request tracing.
	ServiceName string
	// LoginURL receives unauthenticated browser requests.
	LoginURL  string
	Templates *template.Template
	Logger    *zap.Logger
}

// Deps holds the handlers and collaborators the routes dispatch to.
type Deps struct {
	Sessions      web.SessionResolver
	Audit         audit.AuditLogger
	Health        *healthhandler.Handler
	Organizations *organizationhandler.Handler
	Geography     *geographyhandler.Handler
	Users         *userhandler.Handler
	Session       *sessionhandler.Handler
}

// NewRouter wires gin middleware and routes.
//
// Route → handler mapping:
//   - /healthz, /readyz                 → internal/health/handler
//   - /admin/organizations, /api/organizations/... → internal/organization/handler
//   - /admin/geography, /api/geography/...         → internal/geography/handler
//   - /admin/users, /api/users/me                  → internal/user/handler
//   - /logout                                      → internal/session/handler
func NewRouter(opts Options, deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(opts.Logger))
	if opts.ServiceName != "" {
		r.Use(otelgin.Middleware(opts.ServiceName))
	}
	if opts.Templates != nil {
		r.SetHTMLTemplate(opts.Templates)
	}

	if deps.Health != nil {
		r.GET("/healthz", deps.Health.Live)
		r.GET("/readyz", deps.Health.Ready)
	}

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/admin/organizations")
	})

	app := r.Group("/")
	app.Use(ClientIP())
	if deps.Sessions != nil {
		app.Use(web.SessionMiddleware(deps.Sessions))
	}
	app.Use(web.Authenticated(opts.LoginURL))
	app.Use(Audit(deps.Audit))

	if h := deps.Organizations; h != nil {
		app.GET("/admin/organizations", h.Page)
		orgs := app.Group("/api/organizations")
		{
			orgs.GET("", h.List)
			orgs.POST("", h.Create)
			orgs.GET("/default", h.GetDefault)
			orgs.PUT("/default", h.SetDefault)
			orgs.GET("/:id", h.Get)
			orgs.PUT("/:id", h.Update)
			orgs.DELETE("/:id", h.Delete)
			orgs.GET("/:id/recruitment-area", h.RecruitmentArea)
		}
	}

	if h := deps.Geography; h != nil {
		app.GET("/admin/geography", h.Page)
		geo := app.Group("/api/geography")
		{
			geo.GET("/countries", h.Countries)
			geo.GET("/countries/:id/municipalities", h.Municipalities)
			geo.GET("/countries/:id/areas", h.Areas)
		}
	}

	if h := deps.Users; h != nil {
		app.GET("/admin/users", h.Page)
		app.GET("/api/users/me", h.Me)
	}

	if h := deps.Session; h != nil {
		app.GET("/logout", h.Logout)
	}

	return r
}
