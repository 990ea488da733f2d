package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role and membership values stored on a user document. Both fields are
// empty for a freshly signed-up user.
const (
	RoleAdmin        = "admin"
	MembershipMember = "member"
)

// User is a document in the "users" collection. Users are created on first
// sign-in; email is the identity key and is unique across the collection.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email      string             `bson:"email" json:"email"`
	Name       string             `bson:"name,omitempty" json:"name,omitempty"`
	PhotoURL   string             `bson:"photoURL,omitempty" json:"photoURL,omitempty"`
	Role       string             `bson:"role,omitempty" json:"role,omitempty"`
	Membership string             `bson:"membership,omitempty" json:"membership,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// IsMember reports whether the user has purchased the member tier.
func (u *User) IsMember() bool {
	return u != nil && u.Membership == MembershipMember
}
