package api

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iconidentify/blogsmith/internal/api/handler"
	mw "github.com/iconidentify/blogsmith/internal/api/middleware"
)

// Handlers groups the HTTP handlers served by the router.
type Handlers struct {
	Health *handler.HealthHandler
	Auth   *handler.AuthHandler
	Blog   *handler.BlogHandler
	Job    *handler.JobHandler
	Image  *handler.ImageHandler
	Stream *handler.StreamHandler
}

// RouterConfig holds router settings.
type RouterConfig struct {
	CORSOrigins    []string
	RequestTimeout time.Duration
}

// NewRouter creates the HTTP router with all routes configured.
func NewRouter(h Handlers, auth mw.Authenticator, cfg RouterConfig, logger *slog.Logger) *chi.Mux {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 5 * time.Minute
	}

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CleanPath)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mw.Logger(logger))
	r.Use(middleware.Recoverer)
	r.Use(mw.Metrics)
	r.Use(mw.CORS(cfg.CORSOrigins))

	r.Get("/health", h.Health.Live)
	r.Get("/ready", h.Health.Ready)
	r.Handle("/metrics", promhttp.Handler())

	// Websocket stream lives outside the timeout group: the connection is
	// hijacked and bounded by the generation itself.
	r.With(mw.OptionalAuth(auth)).Get("/api/blogs/generate/stream", h.Stream.Generate)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Timeout(cfg.RequestTimeout))

		r.With(mw.RequireAuth(auth)).Get("/stats", h.Health.Stats)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)

			r.Group(func(r chi.Router) {
				r.Use(mw.RequireAuth(auth))
				r.Get("/me", h.Auth.Me)
				r.Put("/profile", h.Auth.UpdateProfile)
			})
		})

		r.Route("/blogs", func(r chi.Router) {
			r.Get("/", h.Blog.List)
			r.Get("/{id}", h.Blog.Get)
			r.Get("/{id}/html", h.Blog.HTML)

			r.Group(func(r chi.Router) {
				r.Use(mw.OptionalAuth(auth))
				r.Post("/generate", h.Blog.Generate)
				r.Post("/jobs", h.Job.Enqueue)
				r.Get("/jobs/{jobID}", h.Job.Get)
			})

			r.Group(func(r chi.Router) {
				r.Use(mw.RequireAuth(auth))
				r.Put("/{id}", h.Blog.Update)
				r.Delete("/{id}", h.Blog.Delete)
				r.Post("/{id}/images", h.Blog.AttachImage)
			})
		})

		r.With(mw.OptionalAuth(auth)).Post("/images/generate", h.Image.Generate)
	})

	return r
}
