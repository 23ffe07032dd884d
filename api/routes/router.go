package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rmartelo/freightops-backend/api/controllers"
	"github.com/rmartelo/freightops-backend/api/middleware"
	"github.com/rmartelo/freightops-backend/internal/agents"
	"github.com/rmartelo/freightops-backend/internal/auth"
	"github.com/rmartelo/freightops-backend/internal/carriers"
	"github.com/rmartelo/freightops-backend/internal/clients"
	"github.com/rmartelo/freightops-backend/internal/geodata"
	"github.com/rmartelo/freightops-backend/internal/opsfiles"
	"github.com/rmartelo/freightops-backend/internal/partners"
	"github.com/rmartelo/freightops-backend/internal/stats"
	"github.com/rmartelo/freightops-backend/internal/users"
	"github.com/rmartelo/freightops-backend/pkg/auth/session"
	"github.com/rmartelo/freightops-backend/pkg/config"
	"github.com/rmartelo/freightops-backend/pkg/db"
	"github.com/rmartelo/freightops-backend/pkg/logger"
	"github.com/rmartelo/freightops-backend/pkg/metrics"
	"github.com/rmartelo/freightops-backend/pkg/redis"
)

// Services bundles every domain service the router mounts.
type Services struct {
	Auth     auth.Service
	OpsFiles opsfiles.Service
	Clients  clients.Service
	Carriers carriers.Service
	Agents   agents.Service
	Partners partners.Service
	Geodata  geodata.Service
	Users    users.Service
	Stats    stats.Service
}

// Deps carries the infrastructure handles the router needs beyond services.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       db.Pinger
	Redis    *redis.Client
	Sessions session.AccessSessionChecker
	Registry *prometheus.Registry
}

func NewRouter(deps Deps, svcs Services) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	if deps.Registry != nil {
		httpMetrics := metrics.NewHTTPMetrics(deps.Registry)
		r.Use(httpMetrics.Middleware)
		r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.Registry))
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/login", controllers.AuthLogin(svcs.Auth, logg))
		r.Post("/refresh", controllers.AuthRefresh(svcs.Auth, logg))
		r.Post("/logout", controllers.AuthLogout(svcs.Auth, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))

		r.Route("/ops", func(r chi.Router) {
			r.Post("/", controllers.OpsFileCreate(svcs.OpsFiles, logg))
			r.Get("/", controllers.OpsFileList(svcs.OpsFiles, logg))

			r.Route("/comments", func(r chi.Router) {
				r.Post("/", controllers.OpsCommentCreate(svcs.OpsFiles, logg))
				r.Get("/{commentId}", controllers.OpsCommentDetail(svcs.OpsFiles, logg))
				r.Patch("/{commentId}", controllers.OpsCommentUpdate(svcs.OpsFiles, logg))
				r.Delete("/{commentId}", controllers.OpsCommentDelete(svcs.OpsFiles, logg))
			})
			r.Route("/packages", func(r chi.Router) {
				r.Post("/", controllers.OpsPackageCreate(svcs.OpsFiles, logg))
				r.Get("/{packageId}", controllers.OpsPackageDetail(svcs.OpsFiles, logg))
				r.Patch("/{packageId}", controllers.OpsPackageUpdate(svcs.OpsFiles, logg))
				r.Delete("/{packageId}", controllers.OpsPackageDelete(svcs.OpsFiles, logg))
			})
			r.Route("/status", func(r chi.Router) {
				r.Get("/", controllers.OpsStatusList(svcs.OpsFiles, logg))
				r.Get("/{statusId}", controllers.OpsStatusDetail(svcs.OpsFiles, logg))
			})

			r.Get("/{opId}", controllers.OpsFileDetail(svcs.OpsFiles, logg))
			r.Patch("/{opId}", controllers.OpsFileUpdate(svcs.OpsFiles, logg))
			r.Delete("/{opId}", controllers.OpsFileDelete(svcs.OpsFiles, logg))
		})

		r.Get("/stats", controllers.StatsSnapshot(svcs.Stats, logg))

		r.Route("/clients", func(r chi.Router) {
			r.Post("/", controllers.ClientCreate(svcs.Clients, logg))
			r.Get("/", controllers.ClientList(svcs.Clients, logg))
			r.Get("/{clientId}", controllers.ClientDetail(svcs.Clients, logg))
			r.Patch("/{clientId}", controllers.ClientUpdate(svcs.Clients, logg))
			r.Delete("/{clientId}", controllers.ClientDelete(svcs.Clients, logg))
		})

		r.Route("/carriers", func(r chi.Router) {
			r.Post("/", controllers.CarrierCreate(svcs.Carriers, logg))
			r.Get("/", controllers.CarrierList(svcs.Carriers, logg))
			r.Get("/{carrierId}", controllers.CarrierDetail(svcs.Carriers, logg))
			r.Patch("/{carrierId}", controllers.CarrierUpdate(svcs.Carriers, logg))
			r.Delete("/{carrierId}", controllers.CarrierDelete(svcs.Carriers, logg))
		})

		r.Route("/agents", func(r chi.Router) {
			r.Post("/", controllers.AgentCreate(svcs.Agents, logg))
			r.Get("/", controllers.AgentList(svcs.Agents, logg))
			r.Get("/{agentId}", controllers.AgentDetail(svcs.Agents, logg))
			r.Patch("/{agentId}", controllers.AgentUpdate(svcs.Agents, logg))
			r.Delete("/{agentId}", controllers.AgentDelete(svcs.Agents, logg))
		})

		r.Route("/partners", func(r chi.Router) {
			r.Route("/types", func(r chi.Router) {
				r.Post("/", controllers.PartnerTypeCreate(svcs.Partners, logg))
				r.Get("/", controllers.PartnerTypeList(svcs.Partners, logg))
				r.Get("/{typeId}", controllers.PartnerTypeDetail(svcs.Partners, logg))
			})

			r.Post("/", controllers.PartnerCreate(svcs.Partners, logg))
			r.Get("/", controllers.PartnerList(svcs.Partners, logg))
			r.Get("/{partnerId}", controllers.PartnerDetail(svcs.Partners, logg))
			r.Patch("/{partnerId}", controllers.PartnerUpdate(svcs.Partners, logg))
			r.Delete("/{partnerId}", controllers.PartnerDelete(svcs.Partners, logg))

			r.Post("/{partnerId}/contacts", controllers.PartnerContactCreate(svcs.Partners, logg))
			r.Patch("/contacts/{contactId}", controllers.PartnerContactUpdate(svcs.Partners, logg))
			r.Delete("/contacts/{contactId}", controllers.PartnerContactDelete(svcs.Partners, logg))
		})

		r.Route("/countries", func(r chi.Router) {
			r.Get("/", controllers.CountryList(svcs.Geodata, logg))
			r.Get("/{countryId}", controllers.CountryDetail(svcs.Geodata, logg))
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(middleware.RequireRole("admin", logg))
			r.Post("/", controllers.UserCreate(svcs.Users, logg))
			r.Get("/", controllers.UserList(svcs.Users, logg))
			r.Get("/roles", controllers.RoleList(svcs.Users, logg))
			r.Get("/{userId}", controllers.UserDetail(svcs.Users, logg))
			r.Patch("/{userId}", controllers.UserUpdate(svcs.Users, logg))
			r.Delete("/{userId}", controllers.UserDelete(svcs.Users, logg))
		})
	})

	return r
}
