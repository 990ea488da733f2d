package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Comment is a document in the "comments" collection. MsgID references the
// parent message by hex id. Comments are create-only; there is no update or
// delete path.
type Comment struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	MsgID       string             `bson:"msgId" json:"msgId"`
	Email       string             `bson:"email" json:"email"`
	Name        string             `bson:"name,omitempty" json:"name,omitempty"`
	PhotoURL    string             `bson:"photoURL,omitempty" json:"photoURL,omitempty"`
	Comment     string             `bson:"comment" json:"comment"`
	CommentTime string             `bson:"commentTime,omitempty" json:"commentTime,omitempty"`
}
