package messages

import (
	"github.com/go-chi/chi/v5"

	"github.com/dialoguedock/dialoguedock/internal/app/system/auth"
)

func Routes(h *Handler, tokens *auth.TokenManager) chi.Router {
	r := chi.NewRouter()

	// The feed and counters are public; votes come from anonymous readers
	// as well as signed-in users.
	r.Get("/", h.HandleList)
	r.Get("/{id}", h.HandleGet)
	r.Patch("/upvote/{id}", h.HandleIncrement("upvote"))
	r.Patch("/downvote/{id}", h.HandleIncrement("downvote"))
	r.Patch("/commentsCount/{id}", h.HandleIncrement("commentsCount"))

	r.Group(func(pr chi.Router) {
		pr.Use(tokens.RequireToken)

		pr.Get("/count/{email}", h.HandleCount)
		pr.Post("/", h.HandleCreate)
		pr.Delete("/{id}", h.HandleDelete)
	})

	return r
}
