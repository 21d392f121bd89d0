package http

import (
	"log/slog"
	"net/http"
	"net/netip"
	"time"

	"github.com/aussiebroadwan/rolesvc/internal/roles/service"
	"github.com/aussiebroadwan/rolesvc/internal/roles/store"
	"github.com/aussiebroadwan/rolesvc/pkg/dbpool"
	"github.com/aussiebroadwan/rolesvc/pkg/httpx"
	"github.com/aussiebroadwan/rolesvc/pkg/jwtx"
	"github.com/aussiebroadwan/rolesvc/pkg/slogx"

	_ "github.com/aussiebroadwan/rolesvc/api/roles" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Capabilities checked against the token's scopes claim.
const (
	CapRoleCreate = "role:create"
	CapRoleRead   = "role:read"
	CapRoleUpdate = "role:update"
	CapRoleDelete = "role:delete"
)

// RouterConfig carries the router's dependencies. Pool is optional, the
// memory driver runs without one. Zero limits fall back to the httpx
// defaults.
type RouterConfig struct {
	Verifier     jwtx.Verifier
	ScopePrefix  string
	BuildVersion string
	Logger       *slog.Logger
	Store        store.Store
	Pool         *dbpool.Manager

	WriteLimit httpx.RateLimitConfig
	ReadLimit  httpx.RateLimitConfig

	// TrustedProxies may set X-Forwarded-For / X-Real-IP.
	TrustedProxies []netip.Prefix
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	scopePrefix  string
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	writeLimit httpx.RateLimitConfig
	readLimit  httpx.RateLimitConfig
	clientIP   httpx.KeyExtractor

	store        store.Store
	pool         *dbpool.Manager
	RolesService *service.RolesService
}

func NewRouter(cfg RouterConfig) *Router {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.WriteLimit == (httpx.RateLimitConfig{}) {
		cfg.WriteLimit = httpx.DefaultModerateLimit()
	}
	if cfg.ReadLimit == (httpx.RateLimitConfig{}) {
		cfg.ReadLimit = httpx.DefaultLenientLimit()
	}

	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     cfg.Verifier,
		scopePrefix:  cfg.ScopePrefix,
		buildVersion: cfg.BuildVersion,
		startTime:    time.Now(),
		logger:       cfg.Logger,
		writeLimit:   cfg.WriteLimit,
		readLimit:    cfg.ReadLimit,
		clientIP:     httpx.ClientIPExtractor(cfg.TrustedProxies),
		store:        cfg.Store,
		pool:         cfg.Pool,
		RolesService: service.NewRolesService(cfg.Store),
	}

	// Request logging wraps the connection binding so release happens
	// before the request is logged.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}
	if r.pool != nil {
		r.middlewares = append(r.middlewares, r.pool.RequestMiddleware)
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerRoles()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Role Service API
//	@version		0.1.0
//	@description	Role management: create, list and soft-delete roles, and manage which users hold them.
//	@description
//	@description				Every /api/v1 route needs a bearer token whose scopes claim carries the route's capability.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/rolesvc
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// capability applies the configured prefix, e.g. "fi.pvarki.arkia11nmodels." + "role:read".
func (r *Router) capability(c string) string {
	return r.scopePrefix + c
}

func (r *Router) secured(h http.HandlerFunc, capability string, limit httpx.RateLimitConfig) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier),                 // verify JWT (iss/exp)
		httpx.RequireAllScopes(r.capability(capability)), // enforce capability
		httpx.RateLimitByUser(limit, r.clientIP),
	)
}

func (r *Router) registerRoles() {
	h := &RolesHandler{RolesService: r.RolesService}

	r.Mux.Handle("POST /api/v1/roles", r.secured(h.HandleCreate, CapRoleCreate, r.writeLimit))
	r.Mux.Handle("GET /api/v1/roles", r.secured(h.HandleList, CapRoleRead, r.readLimit))
	r.Mux.Handle("GET /api/v1/roles/{id}", r.secured(h.HandleGet, CapRoleRead, r.readLimit))
	r.Mux.Handle("DELETE /api/v1/roles/{id}", r.secured(h.HandleDelete, CapRoleDelete, r.writeLimit))

	r.Mux.Handle("GET /api/v1/roles/{id}/users", r.secured(h.HandleListUsers, CapRoleRead, r.readLimit))
	r.Mux.Handle("POST /api/v1/roles/{id}/users", r.secured(h.HandleAssignUsers, CapRoleUpdate, r.writeLimit))
	r.Mux.Handle("DELETE /api/v1/roles/{id}/users/{userid}", r.secured(h.HandleRemoveUser, CapRoleUpdate, r.writeLimit))
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(r.readLimit, r.clientIP),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.pool),
			httpx.RateLimitByIP(r.readLimit, r.clientIP),
		),
	)
}
