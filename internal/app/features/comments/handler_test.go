package comments_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/dialoguedock/dialoguedock/internal/app/features/comments"
	commentstore "github.com/dialoguedock/dialoguedock/internal/app/store/comments"
	"github.com/dialoguedock/dialoguedock/internal/app/system/httpjson"
	"github.com/dialoguedock/dialoguedock/internal/domain/models"
	"github.com/dialoguedock/dialoguedock/internal/testutil"
)

func newTestHandler(t *testing.T) (*comments.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return comments.NewHandler(commentstore.New(db), zap.NewNop()), testutil.NewFixtures(t, db)
}

func TestHandleCreateAndList(t *testing.T) {
	handler, _ := newTestHandler(t)

	msgID := primitive.NewObjectID().Hex()
	req := testutil.JSONRequest(t, "POST", "/comments", map[string]any{
		"msgId":   msgID,
		"email":   "reader@example.com",
		"comment": "well said",
	})
	rec := httptest.NewRecorder()
	handler.HandleCreate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}
	var ack httpjson.InsertAck
	testutil.DecodeBody(t, rec, &ack)
	if ack.InsertedID == nil {
		t.Fatal("expected an insertedId")
	}

	req = httptest.NewRequest("GET", "/comments", nil)
	rec = httptest.NewRecorder()
	handler.HandleList(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	var list []models.Comment
	testutil.DecodeBody(t, rec, &list)
	if len(list) != 1 {
		t.Fatalf("expected 1 comment, got %d", len(list))
	}
	if list[0].MsgID != msgID {
		t.Errorf("msgId: got %q, want %q", list[0].MsgID, msgID)
	}
}

func TestHandleCreate_MissingMsgID(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := testutil.JSONRequest(t, "POST", "/comments",
		map[string]any{"comment": "orphan"})
	rec := httptest.NewRecorder()
	handler.HandleCreate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}
