package users

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dialoguedock/dialoguedock/internal/app/system/auth"
)

func Routes(h *Handler, tokens *auth.TokenManager, logger *zap.Logger) chi.Router {
	r := chi.NewRouter()

	// Registration is open; it runs on every client sign-in.
	r.Post("/", h.HandleCreate)

	r.Group(func(pr chi.Router) {
		pr.Use(tokens.RequireToken)

		pr.Get("/admin/{email}", h.HandleAdminCheck)
		pr.Patch("/{email}", h.HandleBecomeMember)

		pr.Group(func(ar chi.Router) {
			ar.Use(auth.RequireAdmin(h.Users, logger))

			ar.Get("/", h.HandleList)
			ar.Patch("/admin/{id}", h.HandleGrantAdmin)
		})
	})

	return r
}
