// Package indexes declares and ensures the Mongo indexes the API relies on.
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// EnsureAll is called at startup. Each ensure* function is idempotent.
// Errors are aggregated so every problem is visible and startup can fail
// fast.
func EnsureAll(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	var problems []string

	if err := ensureUsers(ctx, db, logger); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureMessages(ctx, db, logger); err != nil {
		problems = append(problems, "allMsg: "+err.Error())
	}
	if err := ensureComments(ctx, db, logger); err != nil {
		problems = append(problems, "comments: "+err.Error())
	}
	if err := ensureNotifications(ctx, db, logger); err != nil {
		problems = append(problems, "notification: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

type existingIndex struct {
	Name string `bson:"name"`
	Key  bson.D `bson:"key"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

// isDuplicateKeyErr detects E11000 across driver error shapes.
func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 {
				return true
			}
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 11000 {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "E11000") || strings.Contains(strings.ToLower(s), "duplicate key")
}

// ensureIndexSet creates any index whose key pattern does not already exist
// on the collection. Existing indexes with the same keys are reused
// regardless of name, so renames never churn production indexes.
func ensureIndexSet(ctx context.Context, coll *mongo.Collection, logger *zap.Logger, models []mongo.IndexModel) error {
	existing := map[string]struct{}{}
	cur, err := coll.Indexes().List(ctx)
	if err == nil {
		defer cur.Close(ctx)
		for cur.Next(ctx) {
			var idx existingIndex
			if err := cur.Decode(&idx); err != nil {
				logger.Warn("failed to decode existing index",
					zap.String("collection", coll.Name()), zap.Error(err))
				continue
			}
			existing[keySig(idx.Key)] = struct{}{}
		}
	}

	var errs []string
	for _, m := range models {
		sig := keySig(m.Keys.(bson.D))
		name := ""
		unique := false
		if m.Options != nil {
			if m.Options.Name != nil {
				name = *m.Options.Name
			}
			if m.Options.Unique != nil {
				unique = *m.Options.Unique
			}
		}

		if _, ok := existing[sig]; ok {
			continue
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			if isDuplicateKeyErr(err) && unique {
				errs = append(errs, fmt.Sprintf(
					"%s(%s): cannot create unique index, duplicates present", coll.Name(), name))
			} else {
				errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), name, err))
			}
			continue
		}
		logger.Info("index ensured",
			zap.String("collection", coll.Name()),
			zap.String("name", name),
			zap.String("keys", sig),
			zap.Bool("unique", unique))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func ensureUsers(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	c := db.Collection("users")
	return ensureIndexSet(ctx, c, logger, []mongo.IndexModel{
		// Email is the identity key. The application also checks before
		// insert, but this index closes the race between two concurrent
		// sign-ins with the same email.
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_users_email"),
		},
	})
}

func ensureMessages(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	c := db.Collection("allMsg")
	return ensureIndexSet(ctx, c, logger, []mongo.IndexModel{
		// Listing sorts newest-first on postTime.
		{
			Keys:    bson.D{{Key: "postTime", Value: -1}},
			Options: options.Index().SetName("idx_allmsg_posttime"),
		},
		// Per-author counts back the post quota check.
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("idx_allmsg_email"),
		},
	})
}

func ensureComments(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	c := db.Collection("comments")
	return ensureIndexSet(ctx, c, logger, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "msgId", Value: 1}},
			Options: options.Index().SetName("idx_comments_msgid"),
		},
	})
}

func ensureNotifications(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	c := db.Collection("notification")
	return ensureIndexSet(ctx, c, logger, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "toEmail", Value: 1}},
			Options: options.Index().SetName("idx_notification_toemail"),
		},
	})
}
