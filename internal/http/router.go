package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/tbakken/delelager/internal/http/handlers"
)

// NewRouter builds the API router. Handler dependencies are injected through
// the handlers package setters before the router serves traffic.
func NewRouter(log zerolog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(RequestLogger(log))
	r.Use(Recoverer(log))
	r.Use(RateLimit)

	r.Route("/api", func(r chi.Router) {
		r.Get("/inventory", handlers.ListInventoryHandler)
		r.Post("/inventory", handlers.CreateItemHandler)
		r.Put("/inventory/{id}", handlers.UpdateItemHandler)
		r.Delete("/inventory/{id}", handlers.DeleteItemHandler)
		r.Get("/audit-logs", handlers.AuditLogsHandler)
		r.Get("/report", handlers.ReportHandler)
		r.Get("/updates", handlers.UpdatesHandler)
		r.Post("/logs", handlers.ClientLogHandler)
	})

	return r
}
