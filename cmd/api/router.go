package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/lessonforge/backend/internal/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

type routerConfig struct {
	AllowedOrigins     []string
	APIRequests        int
	GenerationRequests int
	RateWindow         time.Duration
	SwaggerURL         string
}

// routeRegistrar is implemented by every handler
type routeRegistrar interface {
	RegisterRoutes(r chi.Router)
}

// generationRegistrar is implemented by handlers that expose model-backed routes
type generationRegistrar interface {
	RegisterGenerationRoutes(r chi.Router)
}

// newRouter builds the HTTP handler tree. Model-backed routes share the tighter generation limit
// on top of the general API limit.
func newRouter(cfg routerConfig, logger *zap.Logger, registrars ...routeRegistrar) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.AccessLog(logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.BodyLimit(middleware.DefaultMaxBodyBytes))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("API is running..."))
	})

	if cfg.SwaggerURL != "" {
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(cfg.SwaggerURL)))
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(httprate.LimitByIP(cfg.APIRequests, cfg.RateWindow))

		r.Group(func(r chi.Router) {
			r.Use(httprate.LimitByIP(cfg.GenerationRequests, cfg.RateWindow))
			for _, reg := range registrars {
				if gen, ok := reg.(generationRegistrar); ok {
					gen.RegisterGenerationRoutes(r)
				}
			}
		})

		for _, reg := range registrars {
			reg.RegisterRoutes(r)
		}
	})

	return otelhttp.NewHandler(r, "lessonforge-api",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
}
