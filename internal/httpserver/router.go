package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"go.uber.org/zap"

	"backoffice/internal/auth"
	"backoffice/internal/config"
	"backoffice/internal/httpserver/handlers"
	"backoffice/internal/models"
	"backoffice/internal/service"
)

// Deps carries everything the router wires together. All protected routes
// pass the authentication check first; the /v1/users group additionally
// requires the admin role.
type Deps struct {
	Config    config.Config
	Logger    *zap.SugaredLogger
	Tokens    *auth.TokenManager
	Auth      *service.Auth
	Users     *service.Users
	Dashboard *service.Dashboard
}

func NewRouter(d Deps) http.Handler {
	rs := handlers.Responder{Lg: d.Logger, Development: !d.Config.IsProduction()}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer, middleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{d.Config.FrontendURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(httprate.LimitByIP(d.Config.RateLimitRequests, d.Config.RateLimitWindow))

	// Credential endpoints get a tighter per-IP bucket.
	r.Group(func(pub chi.Router) {
		pub.Use(httprate.LimitByIP(d.Config.AuthRateRequests, d.Config.AuthRateWindow))
		pub.Post("/v1/auth/register", handlers.Register(d.Auth, rs, d.Config))
		pub.Post("/v1/auth/login", handlers.Login(d.Auth, rs, d.Config))
	})

	r.Group(func(protected chi.Router) {
		protected.Use(auth.Authenticate(d.Tokens))
		protected.Post("/v1/auth/logout", handlers.Logout(d.Auth, rs))
		protected.Get("/v1/auth/me", handlers.Me(d.Auth, rs))

		protected.Get("/v1/dashboard/stats", handlers.DashboardStats(d.Dashboard, rs))
		protected.Get("/v1/dashboard/recent-activity", handlers.RecentActivity(d.Dashboard, rs))
		protected.Get("/v1/dashboard/user-growth", handlers.UserGrowth(d.Dashboard, rs))

		protected.Group(func(admin chi.Router) {
			admin.Use(auth.RequireRole(models.RoleAdmin))
			admin.Get("/v1/users", handlers.ListUsers(d.Users, rs))
			admin.Get("/v1/users/{id}", handlers.GetUser(d.Users, rs))
			admin.Post("/v1/users", handlers.CreateUser(d.Users, rs))
			admin.Put("/v1/users/{id}", handlers.UpdateUser(d.Users, rs))
			admin.Delete("/v1/users/{id}", handlers.DeleteUser(d.Users, rs))
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	return r
}
