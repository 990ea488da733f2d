// Package payments serves the payment-intent endpoint that backs the
// member purchase flow.
package payments

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/dialoguedock/dialoguedock/internal/app/system/httpjson"
	"github.com/dialoguedock/dialoguedock/internal/app/system/timeouts"
)

type Handler struct {
	Gateway  Gateway
	Currency string
	Log      *zap.Logger
}

func NewHandler(gateway Gateway, currency string, logger *zap.Logger) *Handler {
	if currency == "" {
		currency = "usd"
	}
	return &Handler{
		Gateway:  gateway,
		Currency: currency,
		Log:      logger,
	}
}

type intentRequest struct {
	Price float64 `json:"price"`
}

type intentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// HandleCreateIntent handles POST /create-payment-intent. The price is a
// decimal major-unit amount; it is converted to minor units by truncation,
// matching how the client displays the charge.
func (h *Handler) HandleCreateIntent(w http.ResponseWriter, r *http.Request) {
	var req intentRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Price <= 0 {
		httpjson.Error(w, http.StatusBadRequest, "price must be a positive number")
		return
	}
	amount := int64(req.Price * 100)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	secret, err := h.Gateway.CreateIntent(ctx, amount, h.Currency)
	if err != nil {
		h.Log.Error("create payment intent",
			zap.Int64("amount", amount), zap.Error(err))
		httpjson.Error(w, http.StatusBadGateway, "payment provider unavailable")
		return
	}

	httpjson.OK(w, intentResponse{ClientSecret: secret})
}
