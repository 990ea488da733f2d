package token_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/dialoguedock/dialoguedock/internal/app/features/token"
	"github.com/dialoguedock/dialoguedock/internal/app/system/auth"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestHandler(t *testing.T) (*token.Handler, *auth.TokenManager) {
	t.Helper()
	tm, err := auth.NewTokenManager(testSecret, time.Hour, zap.NewNop())
	if err != nil {
		t.Fatalf("NewTokenManager failed: %v", err)
	}
	return token.NewHandler(tm, zap.NewNop()), tm
}

func TestHandleIssue_RoundTrip(t *testing.T) {
	handler, tm := newTestHandler(t)

	body := strings.NewReader(`{"email":"Alice@Example.com","name":"Alice"}`)
	req := httptest.NewRequest("POST", "/jwt", body)
	rec := httptest.NewRecorder()

	handler.HandleIssue(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a token in the response")
	}

	id, err := tm.Verify(resp.Token)
	if err != nil {
		t.Fatalf("issued token did not verify: %v", err)
	}
	if id.Email != "alice@example.com" {
		t.Errorf("email: got %q, want normalized", id.Email)
	}
	if id.Claims["name"] != "Alice" {
		t.Errorf("name claim: got %v", id.Claims["name"])
	}
}

func TestHandleIssue_BadBody(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest("POST", "/jwt", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	handler.HandleIssue(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}
