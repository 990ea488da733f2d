package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Message is a document in the "allMsg" collection. PostTime is stamped by
// the server at insert time (ISO-8601) and is the sort key for listings.
// The three counters are only ever changed with atomic $inc updates.
type Message struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email         string             `bson:"email" json:"email"`
	Name          string             `bson:"name,omitempty" json:"name,omitempty"`
	PhotoURL      string             `bson:"photoURL,omitempty" json:"photoURL,omitempty"`
	Title         string             `bson:"title,omitempty" json:"title,omitempty"`
	Text          string             `bson:"text,omitempty" json:"text,omitempty"`
	PostTime      string             `bson:"postTime" json:"postTime"`
	Upvote        int64              `bson:"upvote" json:"upvote"`
	Downvote      int64              `bson:"downvote" json:"downvote"`
	CommentsCount int64              `bson:"commentsCount" json:"commentsCount"`
}
