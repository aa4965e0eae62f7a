package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes configures the router: the public form endpoints at the
// root, the admin surface under /api.
func SetupRoutes(h *Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)

	// The form is served from GitHub Pages, so CORS stays open to it.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://feds201.github.io", "http://localhost:5173", "http://localhost:8080"},
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", h.HealthCheck)

	// Public form endpoints
	r.Post("/submit", h.HandleSubmit)
	r.Get("/slots", h.HandleSlots)

	// Admin surface
	r.Route("/api", func(r chi.Router) {
		r.Route("/schedule", func(r chi.Router) {
			r.Get("/config", h.GetScheduleConfig)
			r.Put("/config", h.UpdateScheduleConfig)
			r.Get("/preview", h.PreviewSchedule)
		})
		r.Post("/reminders/run", h.RunReminders)
		r.Post("/messages", h.SendMessage)
	})

	return r
}
