// Package userstore is the accessor for the "users" collection.
package userstore

import (
	"context"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dialoguedock/dialoguedock/internal/app/system/normalize"
	"github.com/dialoguedock/dialoguedock/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// List returns every user document.
func (s *Store) List(ctx context.Context) ([]models.User, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetByEmail looks up a user by normalized email.
// Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateIfAbsent inserts the user unless a document with the same email
// already exists. The pre-insert existence check leaves a race window; the
// unique index on email closes it, and a concurrent duplicate insert is
// reported the same way as an existing user (created=false).
func (s *Store) CreateIfAbsent(ctx context.Context, u models.User) (primitive.ObjectID, bool, error) {
	u.Email = normalize.Email(u.Email)

	err := s.c.FindOne(ctx, bson.M{"email": u.Email}).Err()
	if err == nil {
		return primitive.NilObjectID, false, nil
	}
	if err != mongo.ErrNoDocuments {
		return primitive.NilObjectID, false, err
	}

	u.ID = primitive.NewObjectID()
	u.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return primitive.NilObjectID, false, nil
		}
		return primitive.NilObjectID, false, err
	}
	return u.ID, true, nil
}

// SetMembership sets the membership tier on the user with the given email.
func (s *Store) SetMembership(ctx context.Context, email, membership string) (*mongo.UpdateResult, error) {
	return s.c.UpdateOne(ctx,
		bson.M{"email": normalize.Email(email)},
		bson.M{"$set": bson.M{"membership": membership}})
}

// SetRoleByID sets the role on the user with the given id.
func (s *Store) SetRoleByID(ctx context.Context, id primitive.ObjectID, role string) (*mongo.UpdateResult, error) {
	return s.c.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"role": role}})
}
