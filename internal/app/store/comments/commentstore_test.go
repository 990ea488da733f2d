package commentstore_test

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	commentstore "github.com/dialoguedock/dialoguedock/internal/app/store/comments"
	"github.com/dialoguedock/dialoguedock/internal/domain/models"
	"github.com/dialoguedock/dialoguedock/internal/testutil"
)

func TestCreateAndList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := commentstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	msgID := primitive.NewObjectID().Hex()
	created, err := store.Create(ctx, models.Comment{
		MsgID:   msgID,
		Email:   "Commenter@Example.com",
		Comment: "nice post",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == primitive.NilObjectID {
		t.Error("expected an assigned id")
	}
	if created.Email != "commenter@example.com" {
		t.Errorf("email: got %q, want normalized", created.Email)
	}

	comments, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(comments) != 1 {
		t.Fatalf("expected 1 comment, got %d", len(comments))
	}
	if comments[0].MsgID != msgID {
		t.Errorf("msgId: got %q, want %q", comments[0].MsgID, msgID)
	}
}

func TestList_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := commentstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	comments, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(comments) != 0 {
		t.Errorf("expected empty list, got %d", len(comments))
	}
}
