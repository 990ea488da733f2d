// Package messagestore is the accessor for the "allMsg" collection.
package messagestore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dialoguedock/dialoguedock/internal/app/system/normalize"
	"github.com/dialoguedock/dialoguedock/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("allMsg")}
}

// ListNewestFirst returns all messages sorted by postTime descending.
func (s *Store) ListNewestFirst(ctx context.Context) ([]models.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "postTime", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	msgs := []models.Message{}
	if err := cur.All(ctx, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// GetByID loads one message. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Message, error) {
	var m models.Message
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

// CountByEmail counts messages authored by the given email. Backs the
// non-member post quota.
func (s *Store) CountByEmail(ctx context.Context, email string) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"email": normalize.Email(email)})
}

// Create inserts a message. PostTime is stamped here, server-side, in
// RFC 3339 form; any client-supplied value is discarded.
func (s *Store) Create(ctx context.Context, m models.Message) (models.Message, error) {
	m.ID = primitive.NewObjectID()
	m.Email = normalize.Email(m.Email)
	m.PostTime = time.Now().UTC().Format(time.RFC3339Nano)

	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.Message{}, err
	}
	return m, nil
}

// inc applies an atomic $inc to a single counter field. The increment
// happens at the store, never as a client-side read-modify-write, so
// concurrent votes cannot lose updates.
func (s *Store) inc(ctx context.Context, id primitive.ObjectID, field string) (*mongo.UpdateResult, error) {
	return s.c.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{field: 1}})
}

// IncUpvote increments the upvote counter.
func (s *Store) IncUpvote(ctx context.Context, id primitive.ObjectID) (*mongo.UpdateResult, error) {
	return s.inc(ctx, id, "upvote")
}

// IncDownvote increments the downvote counter.
func (s *Store) IncDownvote(ctx context.Context, id primitive.ObjectID) (*mongo.UpdateResult, error) {
	return s.inc(ctx, id, "downvote")
}

// IncCommentsCount increments the comment counter.
func (s *Store) IncCommentsCount(ctx context.Context, id primitive.ObjectID) (*mongo.UpdateResult, error) {
	return s.inc(ctx, id, "commentsCount")
}

// Delete removes a message by id. Returns the number of documents deleted
// (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
