// Package users serves account management: registration, the admin
// checks, and the membership and role upgrades.
package users

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	userstore "github.com/dialoguedock/dialoguedock/internal/app/store/users"
	"github.com/dialoguedock/dialoguedock/internal/app/system/auth"
	"github.com/dialoguedock/dialoguedock/internal/app/system/httpjson"
	"github.com/dialoguedock/dialoguedock/internal/app/system/normalize"
	"github.com/dialoguedock/dialoguedock/internal/app/system/timeouts"
	"github.com/dialoguedock/dialoguedock/internal/domain/models"
)

type Handler struct {
	Users *userstore.Store
	Log   *zap.Logger
}

func NewHandler(users *userstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Users: users,
		Log:   logger,
	}
}

// HandleList handles GET /users. Admin only; the route guard has already
// checked the caller's role.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		h.Log.Error("list users", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not list users")
		return
	}
	httpjson.OK(w, users)
}

type adminCheckResponse struct {
	Admin bool `json:"admin"`
}

// HandleAdminCheck handles GET /users/admin/{email}. A caller may only ask
// about their own account; an unknown account reads as not-admin.
func (h *Handler) HandleAdminCheck(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.CurrentIdentity(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, auth.MsgUnauthorized)
		return
	}
	email := normalize.Email(chi.URLParam(r, "email"))
	if email != id.Email {
		httpjson.Error(w, http.StatusForbidden, auth.MsgForbidden)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.OK(w, adminCheckResponse{Admin: false})
			return
		}
		h.Log.Error("admin check", zap.String("email", email), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not check role")
		return
	}
	httpjson.OK(w, adminCheckResponse{Admin: u.IsAdmin()})
}

// HandleCreate handles POST /users. Creation is idempotent by email: a
// repeat registration answers 200 with a null insertedId rather than an
// error, so clients can call it on every sign-in.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var u models.User
	if err := httpjson.Decode(r, &u); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if normalize.Email(u.Email) == "" {
		httpjson.Error(w, http.StatusBadRequest, "email is required")
		return
	}

	// Registration is open, so privileged fields never come from the
	// client. Roles are granted via the admin route, membership via the
	// purchase flow.
	u.Role = ""
	u.Membership = ""

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	insertedID, created, err := h.Users.CreateIfAbsent(ctx, u)
	if err != nil {
		h.Log.Error("create user", zap.String("email", u.Email), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not create user")
		return
	}
	if !created {
		httpjson.OK(w, httpjson.InsertAck{
			Acknowledged: true,
			InsertedID:   nil,
			Message:      "user already exists",
		})
		return
	}

	hex := insertedID.Hex()
	httpjson.OK(w, httpjson.InsertAck{Acknowledged: true, InsertedID: &hex})
}

// HandleBecomeMember handles PATCH /users/{email}. Self-only; flips the
// account to the member tier after a completed purchase.
func (h *Handler) HandleBecomeMember(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.CurrentIdentity(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, auth.MsgUnauthorized)
		return
	}
	email := normalize.Email(chi.URLParam(r, "email"))
	if email != id.Email {
		httpjson.Error(w, http.StatusForbidden, auth.MsgForbidden)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	res, err := h.Users.SetMembership(ctx, email, models.MembershipMember)
	if err != nil {
		h.Log.Error("set membership", zap.String("email", email), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not update membership")
		return
	}
	if res.MatchedCount == 0 {
		httpjson.Error(w, http.StatusNotFound, "user not found")
		return
	}
	httpjson.OK(w, httpjson.UpdateAck{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	})
}

// HandleGrantAdmin handles PATCH /users/admin/{id}. Admin only; promotes
// the addressed account to the admin role.
func (h *Handler) HandleGrantAdmin(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "user not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	res, err := h.Users.SetRoleByID(ctx, oid, models.RoleAdmin)
	if err != nil {
		h.Log.Error("grant admin", zap.String("id", oid.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not update role")
		return
	}
	if res.MatchedCount == 0 {
		httpjson.Error(w, http.StatusNotFound, "user not found")
		return
	}
	httpjson.OK(w, httpjson.UpdateAck{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	})
}
