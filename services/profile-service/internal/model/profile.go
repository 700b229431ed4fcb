package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Profile is the application data kept for one identity. OwnerID is the
// identity provider's subject id and is unique across profiles.
type Profile struct {
	ID        bson.ObjectID  `bson:"_id,omitempty" json:"id"`
	OwnerID   string         `bson:"owner_id"      json:"owner_id"`
	Email     string         `bson:"email"         json:"email"`
	Data      map[string]any `bson:"data"          json:"data"`
	CreatedAt time.Time      `bson:"created_at"    json:"created_at"`
	UpdatedAt time.Time      `bson:"updated_at"    json:"updated_at"`
}
