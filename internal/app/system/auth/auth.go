// Package auth implements the bearer-token layer: issuing and verifying
// signed tokens, and the middleware that gates protected routes.
//
// Tokens are HS256-signed with a server-held secret and expire after the
// configured TTL. There is no refresh mechanism and no revocation list; a
// token is valid until it expires.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/dialoguedock/dialoguedock/internal/app/system/httpjson"
	"github.com/dialoguedock/dialoguedock/internal/app/system/normalize"
	"github.com/dialoguedock/dialoguedock/internal/app/system/timeouts"
	"github.com/dialoguedock/dialoguedock/internal/domain/models"
)

// Client-facing messages, matched to the HTTP status they accompany.
const (
	MsgUnauthorized = "unauthorized access"
	MsgForbidden    = "forbidden access"
)

// Identity is the verified token payload injected into the request context.
// Email is always present; Claims carries the full decoded payload for
// handlers that need more than the email.
type Identity struct {
	Email  string
	Claims map[string]any
}

type ctxKey string

const identityKey ctxKey = "identity"

// CurrentIdentity returns the verified identity and a found flag. The flag
// is false on routes that did not pass through RequireToken.
func CurrentIdentity(r *http.Request) (*Identity, bool) {
	id, ok := r.Context().Value(identityKey).(*Identity)
	return id, ok
}

// WithTestIdentity injects an identity directly into the request context,
// bypassing token verification. For handler tests only.
func WithTestIdentity(r *http.Request, id *Identity) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), identityKey, id))
}

var (
	errNoEmailClaim = errors.New("token payload has no email claim")
)

// TokenManager signs and verifies bearer tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	log    *zap.Logger
}

// NewTokenManager builds a TokenManager from the configured signing secret
// and token lifetime. A non-positive ttl is a configuration error, not a
// default to paper over.
func NewTokenManager(secret string, ttl time.Duration, logger *zap.Logger) (*TokenManager, error) {
	if secret == "" {
		return nil, fmt.Errorf("token secret is empty; provide ≥32 random chars")
	}
	if len(secret) < 32 {
		logger.Warn("token secret is short; 32+ chars recommended",
			zap.Int("length", len(secret)))
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %s", ttl)
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, log: logger}, nil
}

// Issue signs the given payload as an HS256 token expiring after the
// configured TTL. Client-supplied exp/iat values are overwritten; the
// server controls the token lifetime.
func (m *TokenManager) Issue(payload map[string]any) (string, error) {
	claims := jwt.MapClaims{}
	for k, v := range payload {
		claims[k] = v
	}
	now := time.Now()
	claims["iat"] = now.Unix()
	claims["exp"] = now.Add(m.ttl).Unix()

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the decoded identity.
// The payload must carry an email claim; a structurally valid token
// without one is rejected.
func (m *TokenManager) Verify(tokenString string) (*Identity, error) {
	tok, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("verify token: %w", err)
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errNoEmailClaim
	}
	email, _ := claims["email"].(string)
	if email == "" {
		return nil, errNoEmailClaim
	}
	return &Identity{Email: normalize.Email(email), Claims: claims}, nil
}

// RequireToken verifies the Authorization header ("Bearer <token>") and
// injects the decoded identity into the request context. Missing header,
// bad signature, and expired tokens all answer 401 before the handler runs.
func (m *TokenManager) RequireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			httpjson.Error(w, http.StatusUnauthorized, MsgUnauthorized)
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httpjson.Error(w, http.StatusUnauthorized, MsgUnauthorized)
			return
		}
		id, err := m.Verify(parts[1])
		if err != nil {
			m.log.Debug("token rejected", zap.Error(err))
			httpjson.Error(w, http.StatusUnauthorized, MsgUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(
			context.WithValue(r.Context(), identityKey, id)))
	})
}

// UserSource looks up a user document by normalized email. Implemented by
// the users store; kept as an interface so middleware tests can stub it.
type UserSource interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// RequireAdmin gates a route to callers whose user document carries the
// admin role. It must run after RequireToken. The lookup is read-only; a
// missing user and a non-admin user both answer 403.
func RequireAdmin(users UserSource, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := CurrentIdentity(r)
			if !ok {
				httpjson.Error(w, http.StatusUnauthorized, MsgUnauthorized)
				return
			}

			ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
			defer cancel()

			u, err := users.GetByEmail(ctx, id.Email)
			if err != nil || !u.IsAdmin() {
				if err != nil {
					logger.Debug("admin lookup failed",
						zap.String("email", id.Email), zap.Error(err))
				}
				httpjson.Error(w, http.StatusForbidden, MsgForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
