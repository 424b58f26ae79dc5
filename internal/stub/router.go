package stub

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type RouterConfig struct {
	Store    *Store
	Sessions *AdminSessions
	Logger   zerolog.Logger
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(cfg.Logger))

	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/appointments", func(r chi.Router) {
		r.Get("/", listAppointmentsHandler(cfg.Store))
		r.Post("/", createAppointmentHandler(cfg.Store))
		r.Get("/search", searchAppointmentsHandler(cfg.Store))
		r.Get("/statuses", listStatusesHandler())

		// Triage operations need an admin session.
		r.Group(func(r chi.Router) {
			r.Use(requireAdmin(cfg.Sessions))
			r.Patch("/{id}/status", updateStatusHandler(cfg.Store))
			r.Delete("/{id}", deleteAppointmentHandler(cfg.Store))
		})
	})

	r.Post("/admin/login", adminLoginHandler(cfg.Sessions))
	r.Post("/admin/logout", adminLogoutHandler(cfg.Sessions))

	return r
}

func requireAdmin(sessions *AdminSessions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				writeDetail(w, http.StatusUnauthorized, "Missing or invalid admin token.")
				return
			}
			if _, ok := sessions.Authorize(header); !ok {
				writeDetail(w, http.StatusUnauthorized, "Invalid or expired admin session.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
