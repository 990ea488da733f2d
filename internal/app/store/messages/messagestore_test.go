package messagestore_test

import (
	"sync"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	messagestore "github.com/dialoguedock/dialoguedock/internal/app/store/messages"
	"github.com/dialoguedock/dialoguedock/internal/domain/models"
	"github.com/dialoguedock/dialoguedock/internal/testutil"
)

func TestCreate_StampsPostTime(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := messagestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	before := time.Now().UTC()
	created, err := store.Create(ctx, models.Message{
		Email:    "author@example.com",
		Title:    "hello",
		Text:     "first post",
		PostTime: "1999-01-01T00:00:00Z", // client-supplied, must be discarded
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	stamped, err := time.Parse(time.RFC3339Nano, created.PostTime)
	if err != nil {
		t.Fatalf("postTime %q is not RFC 3339: %v", created.PostTime, err)
	}
	if stamped.Before(before.Add(-time.Second)) {
		t.Errorf("postTime %v predates the insert (client value not discarded?)", stamped)
	}
}

func TestListNewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := messagestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for _, title := range []string{"first", "second", "third"} {
		if _, err := store.Create(ctx, models.Message{Email: "a@example.com", Title: title}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		// postTime is the sort key; make sure consecutive stamps differ.
		time.Sleep(2 * time.Millisecond)
	}

	msgs, err := store.ListNewestFirst(ctx)
	if err != nil {
		t.Fatalf("ListNewestFirst failed: %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	if msgs[0].Title != "third" || msgs[2].Title != "first" {
		t.Errorf("sort order wrong: got %q, %q, %q", msgs[0].Title, msgs[1].Title, msgs[2].Title)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := messagestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.GetByID(ctx, primitive.NewObjectID()); err != mongo.ErrNoDocuments {
		t.Errorf("expected mongo.ErrNoDocuments, got %v", err)
	}
}

func TestCountByEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := messagestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for i := 0; i < 3; i++ {
		if _, err := store.Create(ctx, models.Message{Email: "counted@example.com"}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}
	if _, err := store.Create(ctx, models.Message{Email: "other@example.com"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	n, err := store.CountByEmail(ctx, "Counted@Example.com")
	if err != nil {
		t.Fatalf("CountByEmail failed: %v", err)
	}
	if n != 3 {
		t.Errorf("count: got %d, want 3", n)
	}
}

func TestIncrements_NoLostUpdates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := messagestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Message{Email: "a@example.com"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.IncUpvote(ctx, created.ID); err != nil {
				t.Errorf("IncUpvote failed: %v", err)
			}
		}()
	}
	wg.Wait()

	m, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if m.Upvote != n {
		t.Errorf("upvote after %d concurrent increments: got %d, want %d", n, m.Upvote, n)
	}
	if m.Downvote != 0 || m.CommentsCount != 0 {
		t.Errorf("other counters moved: downvote=%d commentsCount=%d", m.Downvote, m.CommentsCount)
	}
}

func TestInc_MissingMessage(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := messagestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	res, err := store.IncDownvote(ctx, primitive.NewObjectID())
	if err != nil {
		t.Fatalf("IncDownvote failed: %v", err)
	}
	if res.MatchedCount != 0 {
		t.Errorf("matched: got %d, want 0", res.MatchedCount)
	}
}

func TestDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := messagestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Message{Email: "a@example.com"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	deleted, err := store.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted: got %d, want 1", deleted)
	}

	deleted, err = store.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
	if deleted != 0 {
		t.Errorf("second delete: got %d, want 0", deleted)
	}
}
