package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/nexohub/nexohub-api/app"
	"github.com/nexohub/nexohub-api/config"
	"github.com/nexohub/nexohub-api/internal/observability"
	"github.com/nexohub/nexohub-api/middleware"
	"github.com/nexohub/nexohub-api/models"
	"github.com/nexohub/nexohub-api/utils"
	"go.uber.org/zap"
)

var defaultCORSMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}

// SetupRoutes configures all application routes and middleware
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()

	// Core middleware
	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestLogger(deps.Logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(cors.Handler(corsOptions(deps.Config.CORS)))

	// Health check endpoints
	r.Get("/health", deps.HealthHandler.HandleHealth)
	r.Get("/health/ready", deps.HealthHandler.HandleReadiness)

	r.Route("/api/v1", func(r chi.Router) {
		// Public auth endpoints
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", deps.AuthHandler.HandleRegister)
			r.Post("/login", deps.AuthHandler.HandleLogin)
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(deps.AuthMiddleware.RequireAuth)
			r.Get("/me", deps.UserHandler.HandleMe)
		})

		// Bootstrap is guarded by the shared secret, not by a bearer token
		r.Route("/bootstrap", func(r chi.Router) {
			r.Use(middleware.RequireBootstrapToken(deps.Config.Bootstrap.Token, deps.Logger))
			r.Post("/assign-tenant-to-parking-admin", deps.BootstrapHandler.HandleAssignTenant)
		})

		r.Route("/parking-lots", func(r chi.Router) {
			r.Use(deps.AuthMiddleware.RequireAuth)
			r.Use(deps.AuthMiddleware.RequireTenantScope(models.RoleTenantAdmin))
			r.Post("/", deps.ParkingLotHandler.HandleCreate)
			r.Get("/", deps.ParkingLotHandler.HandleList)
			r.Put("/{lotID}", deps.ParkingLotHandler.HandleUpdate)
			r.Delete("/{lotID}", deps.ParkingLotHandler.HandleDelete)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteNotFound(w, "Endpoint not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed", nil)
	})

	return r
}

func corsOptions(cfg config.CORSConfig) cors.Options {
	methods := cfg.AllowedMethods
	if len(methods) == 0 || (len(methods) == 1 && methods[0] == "*") {
		methods = defaultCORSMethods
	}
	return cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   methods,
		AllowedHeaders:   cfg.AllowedHeaders,
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           300,
	}
}

// requestLogger emits one structured line per request
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			observability.WithRequest(r.Context(), logger).Info("request handled",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)))
		})
	}
}
