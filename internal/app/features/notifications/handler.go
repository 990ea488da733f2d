// Package notifications serves the notification feed. Events are written
// by clients when they vote or comment and read back as one list.
package notifications

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	notificationstore "github.com/dialoguedock/dialoguedock/internal/app/store/notifications"
	"github.com/dialoguedock/dialoguedock/internal/app/system/httpjson"
	"github.com/dialoguedock/dialoguedock/internal/app/system/timeouts"
	"github.com/dialoguedock/dialoguedock/internal/domain/models"
)

type Handler struct {
	Notifications *notificationstore.Store
	Log           *zap.Logger
}

func NewHandler(notifications *notificationstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Notifications: notifications,
		Log:           logger,
	}
}

// HandleList handles GET /notification.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Notifications.List(ctx)
	if err != nil {
		h.Log.Error("list notifications", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not list notifications")
		return
	}
	httpjson.OK(w, list)
}

// HandleCreate handles POST /notification.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var n models.Notification
	if err := httpjson.Decode(r, &n); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := h.Notifications.Create(ctx, n)
	if err != nil {
		h.Log.Error("create notification", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not create notification")
		return
	}

	hex := created.ID.Hex()
	httpjson.OK(w, httpjson.InsertAck{Acknowledged: true, InsertedID: &hex})
}
