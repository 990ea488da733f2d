// Package comments serves the comment list and comment creation. The
// client pairs a new comment with a PATCH to the parent message's
// commentsCount counter.
package comments

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	commentstore "github.com/dialoguedock/dialoguedock/internal/app/store/comments"
	"github.com/dialoguedock/dialoguedock/internal/app/system/httpjson"
	"github.com/dialoguedock/dialoguedock/internal/app/system/timeouts"
	"github.com/dialoguedock/dialoguedock/internal/domain/models"
)

type Handler struct {
	Comments *commentstore.Store
	Log      *zap.Logger
}

func NewHandler(comments *commentstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Comments: comments,
		Log:      logger,
	}
}

// HandleList handles GET /comments.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	comments, err := h.Comments.List(ctx)
	if err != nil {
		h.Log.Error("list comments", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not list comments")
		return
	}
	httpjson.OK(w, comments)
}

// HandleCreate handles POST /comments.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var c models.Comment
	if err := httpjson.Decode(r, &c); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if c.MsgID == "" {
		httpjson.Error(w, http.StatusBadRequest, "msgId is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := h.Comments.Create(ctx, c)
	if err != nil {
		h.Log.Error("create comment", zap.String("msgId", c.MsgID), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not create comment")
		return
	}

	hex := created.ID.Hex()
	httpjson.OK(w, httpjson.InsertAck{Acknowledged: true, InsertedID: &hex})
}
