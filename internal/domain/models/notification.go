package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Notification is a document in the "notification" collection. The payload
// is a free-form description of an event ("X commented on your post");
// notifications are write-once and read back as a list.
type Notification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	ToEmail   string             `bson:"toEmail,omitempty" json:"toEmail,omitempty"`
	FromEmail string             `bson:"fromEmail,omitempty" json:"fromEmail,omitempty"`
	FromName  string             `bson:"fromName,omitempty" json:"fromName,omitempty"`
	Message   string             `bson:"message" json:"message"`
	MsgID     string             `bson:"msgId,omitempty" json:"msgId,omitempty"`
	Time      string             `bson:"time,omitempty" json:"time,omitempty"`
}
