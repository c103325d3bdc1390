/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the chi router, the middleware stack and the route groups.
  The API is a thin shell over the role orchestrators: one query route and
  one report route per role, all responses shaped as the engine Envelope so
  UI code always has something to render.

MIDDLEWARE STACK:
  1. RequestID:  unique ID per request for tracing
  2. Recoverer:  panic recovery (500 instead of crash)
  3. zap logger: structured request logging
  4. CORS:       cross-origin requests for the frontend

ROUTE GROUPS:
  /healthz                                     Liveness probe
  /api/{role}/entities/{id}/months/{month}            Attendance query
  /api/{role}/entities/{id}/months/{month}/report     Punctuality summary

SEE ALSO:
  - handlers.go: handler implementations
  - cmd/server/main.go: server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a router with all routes configured.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(h.Log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/healthz", h.Health)

	r.Route("/api/{role}", func(r chi.Router) {
		r.Route("/entities/{entityID}/months/{month}", func(r chi.Router) {
			r.Get("/", h.QueryMonth)
			r.Get("/report", h.MonthReport)
		})
	})

	return r
}
