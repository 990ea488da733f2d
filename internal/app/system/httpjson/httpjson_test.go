package httpjson_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dialoguedock/dialoguedock/internal/app/system/httpjson"
)

func TestError_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	httpjson.Error(rec, http.StatusForbidden, "forbidden access")

	if rec.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusForbidden)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q, want application/json", ct)
	}

	var body httpjson.ErrorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse body: %v", err)
	}
	if body.Message != "forbidden access" {
		t.Errorf("message: got %q, want %q", body.Message, "forbidden access")
	}
}

func TestOK_WritesValue(t *testing.T) {
	rec := httptest.NewRecorder()
	httpjson.OK(rec, map[string]int{"count": 3})

	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rec.Code)
	}
	var body map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse body: %v", err)
	}
	if body["count"] != 3 {
		t.Errorf("count: got %d, want 3", body["count"])
	}
}

func TestDecode_Malformed(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader("{not json"))
	var dst map[string]any
	if err := httpjson.Decode(req, &dst); err == nil {
		t.Error("expected error for malformed JSON")
	}
}
