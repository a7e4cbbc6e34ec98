package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	analyticsapi "github.com/heyverne/verne-backend/internal/api/analytics"
	bookapi "github.com/heyverne/verne-backend/internal/api/book"
	"github.com/heyverne/verne-backend/internal/api/docs"
	"github.com/heyverne/verne-backend/internal/api/middleware"
	sessionapi "github.com/heyverne/verne-backend/internal/api/session"
	storyapi "github.com/heyverne/verne-backend/internal/api/story"
	"github.com/heyverne/verne-backend/internal/config"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Handlers bundles the per-domain HTTP handlers for router setup.
type Handlers struct {
	Session   *sessionapi.Handler
	Story     *storyapi.Handler
	Analytics *analyticsapi.Handler
	Book      *bookapi.Handler
}

// SetupRouter creates and configures the HTTP router
func SetupRouter(handlers Handlers, cfg *config.Config, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)                 // Recover from panics
	r.Use(chimiddleware.RequestID)                 // Add request ID
	r.Use(middleware.Logger(logger))               // Log requests
	r.Use(middleware.CORS(cfg.CORSOrigin))         // Handle CORS
	r.Use(chimiddleware.Timeout(60 * time.Second)) // Default timeout

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler())

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	// Generated illustrations and uploaded photos
	fileServer := http.StripPrefix(cfg.FileUploadCfg.PublicPrefix, http.FileServer(http.Dir(cfg.FileUploadCfg.UploadDir)))
	r.Get(cfg.FileUploadCfg.PublicPrefix+"/*", fileServer.ServeHTTP)

	// Register API routes
	r.Route("/api", func(r chi.Router) {
		sessionapi.RegisterRoutes(r, handlers.Session)
		storyapi.RegisterRoutes(r, handlers.Story)
		analyticsapi.RegisterRoutes(r, handlers.Analytics)
		bookapi.RegisterRoutes(r, handlers.Book)
	})

	return r
}
