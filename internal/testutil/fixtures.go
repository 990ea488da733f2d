package testutil

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dialoguedock/dialoguedock/internal/domain/models"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a Fixtures instance bound to the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts a user with the given email, role, and membership.
func (f *Fixtures) CreateUser(ctx context.Context, email, role, membership string) models.User {
	f.t.Helper()

	u := models.User{
		ID:         primitive.NewObjectID(),
		Email:      email,
		Name:       "Test User",
		Role:       role,
		Membership: membership,
		CreatedAt:  time.Now().UTC(),
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("fixture user insert failed: %v", err)
	}
	return u
}

// CreateMessage inserts a message authored by email. PostTime is stamped
// the way the live write path stamps it.
func (f *Fixtures) CreateMessage(ctx context.Context, email, title string) models.Message {
	f.t.Helper()

	m := models.Message{
		ID:       primitive.NewObjectID(),
		Email:    email,
		Title:    title,
		Text:     "fixture message body",
		PostTime: time.Now().UTC().Format(time.RFC3339Nano),
	}
	if _, err := f.db.Collection("allMsg").InsertOne(ctx, m); err != nil {
		f.t.Fatalf("fixture message insert failed: %v", err)
	}
	return m
}

// CreateComment inserts a comment on the given message id.
func (f *Fixtures) CreateComment(ctx context.Context, msgID, email, text string) models.Comment {
	f.t.Helper()

	c := models.Comment{
		ID:          primitive.NewObjectID(),
		MsgID:       msgID,
		Email:       email,
		Comment:     text,
		CommentTime: time.Now().UTC().Format(time.RFC3339Nano),
	}
	if _, err := f.db.Collection("comments").InsertOne(ctx, c); err != nil {
		f.t.Fatalf("fixture comment insert failed: %v", err)
	}
	return c
}
