// Package notificationstore is the accessor for the "notification"
// collection. Notifications are write-once and read back as a list.
package notificationstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dialoguedock/dialoguedock/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("notification")}
}

// List returns every notification document.
func (s *Store) List(ctx context.Context) ([]models.Notification, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	notifications := []models.Notification{}
	if err := cur.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// Create inserts a notification and returns it with its assigned id.
func (s *Store) Create(ctx context.Context, n models.Notification) (models.Notification, error) {
	n.ID = primitive.NewObjectID()

	if _, err := s.c.InsertOne(ctx, n); err != nil {
		return models.Notification{}, err
	}
	return n, nil
}

// DeleteCreatedBefore removes notifications created before the cutoff and
// returns the number deleted. The creation instant comes from the ObjectID
// timestamp, so client-supplied time fields cannot shield a document from
// pruning.
func (s *Store) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	boundary := primitive.NewObjectIDFromTimestamp(cutoff)
	res, err := s.c.DeleteMany(ctx, bson.M{"_id": bson.M{"$lt": boundary}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
