package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/portfolio/backend/pkg/auth"
)

// RouterDeps holds everything the HTTP routes need.
type RouterDeps struct {
	Health        *Handler
	Contact       *ContactHandler
	Admin         *AdminHandler
	FrontendURL   string
	SessionSecret []byte
}

// NewRouter wires the public submission routes and the gated dashboard routes.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(SecurityHeaders(deps.FrontendURL))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{deps.FrontendURL},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/api/health", deps.Health.Health)

	// Submission flow
	r.Post("/api/contact", deps.Contact.Submit)
	r.Get("/contact-form", deps.Contact.ContactForm)
	r.Post("/contact", deps.Contact.ContactPost)

	r.Route("/api/admin", func(r chi.Router) {
		r.Get("/session", deps.Admin.Session)
		r.Post("/login", deps.Admin.Login)
		r.Post("/logout", deps.Admin.Logout)

		r.Group(func(r chi.Router) {
			r.Use(deps.Admin.RequirePassword)
			r.Use(auth.RequireDashboard(deps.SessionSecret))
			r.Get("/messages", deps.Contact.AdminList)
			r.Get("/messages/export", deps.Contact.AdminExport)
			r.Delete("/messages/{id}", deps.Contact.Delete)
		})
	})

	return r
}
