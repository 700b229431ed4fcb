package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User represents an email/password account in the authentication system.
type User struct {
	ID            bson.ObjectID `bson:"_id,omitempty"`
	Email         string        `bson:"email"`
	PasswordHash  string        `bson:"password_hash"`
	DisplayName   string        `bson:"display_name,omitempty"`
	EmailVerified bool          `bson:"email_verified"`
	LastLoginAt   time.Time     `bson:"last_login_at,omitempty"`
	CreatedAt     time.Time     `bson:"created_at"`
	UpdatedAt     time.Time     `bson:"updated_at"`
}
