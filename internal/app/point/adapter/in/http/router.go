package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/JoeShih716/go-mem-point/internal/logger"
	"github.com/JoeShih716/go-mem-point/internal/metrics"
	"github.com/JoeShih716/go-mem-point/internal/middleware"
)

func NewRouter(h *Handler, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover(log), middleware.HTTPMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{middleware.HeaderRequestID},
	}))

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	r.Route("/point/{id}", func(r chi.Router) {
		r.Get("/", h.GetPoint)
		r.Get("/histories", h.History)
		r.Patch("/charge", h.Charge)
		r.Patch("/use", h.Use)
	})

	return r
}
