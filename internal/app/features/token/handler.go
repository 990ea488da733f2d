// Package token serves the token-issuing endpoint. The request body is a
// JSON object and becomes the token payload verbatim, with the server
// stamping issuance and expiry.
package token

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/dialoguedock/dialoguedock/internal/app/system/auth"
	"github.com/dialoguedock/dialoguedock/internal/app/system/httpjson"
)

type Handler struct {
	Tokens *auth.TokenManager
	Log    *zap.Logger
}

func NewHandler(tokens *auth.TokenManager, logger *zap.Logger) *Handler {
	return &Handler{
		Tokens: tokens,
		Log:    logger,
	}
}

type tokenResponse struct {
	Token string `json:"token"`
}

// HandleIssue handles POST /jwt.
func (h *Handler) HandleIssue(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if err := httpjson.Decode(r, &payload); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	signed, err := h.Tokens.Issue(payload)
	if err != nil {
		h.Log.Error("issue token", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not issue token")
		return
	}

	httpjson.OK(w, tokenResponse{Token: signed})
}
