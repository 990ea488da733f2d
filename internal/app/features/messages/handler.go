// Package messages serves the discussion board: the post feed, single
// posts, vote counters, and post lifecycle.
package messages

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	messagestore "github.com/dialoguedock/dialoguedock/internal/app/store/messages"
	userstore "github.com/dialoguedock/dialoguedock/internal/app/store/users"
	"github.com/dialoguedock/dialoguedock/internal/app/system/auth"
	"github.com/dialoguedock/dialoguedock/internal/app/system/httpjson"
	"github.com/dialoguedock/dialoguedock/internal/app/system/normalize"
	"github.com/dialoguedock/dialoguedock/internal/app/system/timeouts"
	"github.com/dialoguedock/dialoguedock/internal/domain/models"
)

// Non-members may hold at most this many posts.
const freePostLimit = 5

const msgQuotaExceeded = "You have reached the maximum number of posts allowed."

type Handler struct {
	Messages *messagestore.Store
	Users    *userstore.Store
	Log      *zap.Logger
}

func NewHandler(messages *messagestore.Store, users *userstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Messages: messages,
		Users:    users,
		Log:      logger,
	}
}

// HandleList handles GET /allMsg. Newest first.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	msgs, err := h.Messages.ListNewestFirst(ctx)
	if err != nil {
		h.Log.Error("list messages", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not list messages")
		return
	}
	httpjson.OK(w, msgs)
}

// HandleGet handles GET /allMsg/{id}. Malformed and unknown ids both read
// as not found.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "message not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	m, err := h.Messages.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "message not found")
			return
		}
		h.Log.Error("get message", zap.String("id", oid.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not load message")
		return
	}
	httpjson.OK(w, m)
}

type countResponse struct {
	Count int64 `json:"count"`
}

// HandleCount handles GET /allMsg/count/{email}.
func (h *Handler) HandleCount(w http.ResponseWriter, r *http.Request) {
	email := normalize.Email(chi.URLParam(r, "email"))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	n, err := h.Messages.CountByEmail(ctx, email)
	if err != nil {
		h.Log.Error("count messages", zap.String("email", email), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not count messages")
		return
	}
	httpjson.OK(w, countResponse{Count: n})
}

// HandleCreate handles POST /allMsg. The author is the verified caller,
// regardless of what the body claims, and postTime is stamped server-side.
// Non-members are capped at freePostLimit posts; the check is a read
// before the insert, so a burst of concurrent posts can overshoot by a
// few. That was judged acceptable for a soft quota.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.CurrentIdentity(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, auth.MsgUnauthorized)
		return
	}

	var m models.Message
	if err := httpjson.Decode(r, &m); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	m.Email = id.Email

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	member, err := h.isMember(ctx, id.Email)
	if err != nil {
		h.Log.Error("membership lookup", zap.String("email", id.Email), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not create message")
		return
	}
	if !member {
		n, err := h.Messages.CountByEmail(ctx, id.Email)
		if err != nil {
			h.Log.Error("quota count", zap.String("email", id.Email), zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "could not create message")
			return
		}
		if n >= freePostLimit {
			httpjson.Error(w, http.StatusForbidden, msgQuotaExceeded)
			return
		}
	}

	created, err := h.Messages.Create(ctx, m)
	if err != nil {
		h.Log.Error("create message", zap.String("email", id.Email), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not create message")
		return
	}

	hex := created.ID.Hex()
	httpjson.OK(w, httpjson.InsertAck{Acknowledged: true, InsertedID: &hex})
}

func (h *Handler) isMember(ctx context.Context, email string) (bool, error) {
	u, err := h.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, err
	}
	return u.IsMember(), nil
}

// HandleIncrement handles the three PATCH counter routes. The field is
// fixed per route, never taken from the request, so callers cannot target
// arbitrary document fields.
func (h *Handler) HandleIncrement(field string) http.HandlerFunc {
	var apply func(*messagestore.Store, context.Context, primitive.ObjectID) (*mongo.UpdateResult, error)
	switch field {
	case "upvote":
		apply = (*messagestore.Store).IncUpvote
	case "downvote":
		apply = (*messagestore.Store).IncDownvote
	case "commentsCount":
		apply = (*messagestore.Store).IncCommentsCount
	default:
		panic("unknown counter field: " + field)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
		if err != nil {
			httpjson.Error(w, http.StatusNotFound, "message not found")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
		defer cancel()

		res, err := apply(h.Messages, ctx, oid)
		if err != nil {
			h.Log.Error("increment counter",
				zap.String("field", field), zap.String("id", oid.Hex()), zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "could not update message")
			return
		}
		if res.MatchedCount == 0 {
			httpjson.Error(w, http.StatusNotFound, "message not found")
			return
		}
		httpjson.OK(w, httpjson.UpdateAck{
			Acknowledged:  true,
			MatchedCount:  res.MatchedCount,
			ModifiedCount: res.ModifiedCount,
		})
	}
}

// HandleDelete handles DELETE /allMsg/{id}. Only the author or an admin
// may remove a post.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.CurrentIdentity(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, auth.MsgUnauthorized)
		return
	}
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "message not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	m, err := h.Messages.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "message not found")
			return
		}
		h.Log.Error("load message for delete", zap.String("id", oid.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not delete message")
		return
	}

	if m.Email != id.Email {
		u, err := h.Users.GetByEmail(ctx, id.Email)
		if err != nil || !u.IsAdmin() {
			httpjson.Error(w, http.StatusForbidden, auth.MsgForbidden)
			return
		}
	}

	deleted, err := h.Messages.Delete(ctx, oid)
	if err != nil {
		h.Log.Error("delete message", zap.String("id", oid.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not delete message")
		return
	}
	httpjson.OK(w, httpjson.DeleteAck{Acknowledged: true, DeletedCount: deleted})
}
