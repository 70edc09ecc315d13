package router

import (
	"net/http"

	"roots-catalog/internal/handler"
	"roots-catalog/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Options configures the HTTP router.
type Options struct {
	APIKey string

	// UploadsDir is served at PublicPath when both are set.
	UploadsDir string
	PublicPath string
}

// New creates a new HTTP router with all routes and middleware configured.
func New(
	productHandler *handler.ProductHandler,
	uploadHandler *handler.UploadHandler,
	opts Options,
	logger zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	var publicPrefixes []string
	if opts.UploadsDir != "" && opts.PublicPath != "" {
		publicPrefixes = append(publicPrefixes, opts.PublicPath)
	}

	// Apply middleware in order: Recovery -> CorrelationID -> Logging -> CORS -> APIKeyAuth
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CorrelationID)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)
	r.Use(middleware.APIKeyAuth(opts.APIKey, publicPrefixes, logger))

	r.NotFound(handler.NotFound(logger))
	r.MethodNotAllowed(handler.MethodNotAllowed(logger))

	// Health check endpoint (no authentication required)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	r.Get("/api/products", productHandler.List)
	r.Post("/api/products", productHandler.Create)
	r.Get("/api/products/{id}", productHandler.GetByID)
	r.Put("/api/products/{id}", productHandler.Update)
	r.Delete("/api/products/{id}", productHandler.Delete)
	r.Post("/api/upload", uploadHandler.Upload)

	if len(publicPrefixes) > 0 {
		files := http.StripPrefix(opts.PublicPath, http.FileServer(http.Dir(opts.UploadsDir)))
		r.Get(opts.PublicPath+"*", files.ServeHTTP)
	}

	return r
}
