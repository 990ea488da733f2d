package notificationstore_test

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	notificationstore "github.com/dialoguedock/dialoguedock/internal/app/store/notifications"
	"github.com/dialoguedock/dialoguedock/internal/domain/models"
	"github.com/dialoguedock/dialoguedock/internal/testutil"
)

func TestCreateAndList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := notificationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Notification{
		ToEmail:   "author@example.com",
		FromEmail: "voter@example.com",
		FromName:  "Voter",
		Message:   "upvoted your post",
		MsgID:     primitive.NewObjectID().Hex(),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == primitive.NilObjectID {
		t.Error("expected an assigned id")
	}

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(list))
	}
	if list[0].ToEmail != "author@example.com" {
		t.Errorf("toEmail: got %q", list[0].ToEmail)
	}
}

func TestDeleteCreatedBefore(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := notificationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// One stale notification, inserted with a backdated ObjectID.
	stale := models.Notification{
		ID:      primitive.NewObjectIDFromTimestamp(time.Now().Add(-48 * time.Hour)),
		ToEmail: "old@example.com",
	}
	if _, err := db.Collection("notification").InsertOne(ctx, stale); err != nil {
		t.Fatalf("seed stale notification: %v", err)
	}

	if _, err := store.Create(ctx, models.Notification{ToEmail: "fresh@example.com"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	deleted, err := store.DeleteCreatedBefore(ctx, time.Now().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("DeleteCreatedBefore failed: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("expected 1 deleted, got %d", deleted)
	}

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 1 || list[0].ToEmail != "fresh@example.com" {
		t.Errorf("expected only the fresh notification to survive, got %+v", list)
	}
}
