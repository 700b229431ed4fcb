package profile

import (
	"context"
	"time"
)

// Profile is the application profile owned by one identity.
type Profile struct {
	ID        string         `json:"id"         bson:"id"`
	OwnerID   string         `json:"owner_id"   bson:"owner_id"`
	Data      map[string]any `json:"data"       bson:"data"`
	CreatedAt time.Time      `json:"created_at" bson:"created_at"`
}

// Client talks to the profile service on behalf of a signed-in account.
type Client interface {
	// GetProfile returns the caller's profile, or nil when none exists yet.
	GetProfile(ctx context.Context, token string) (*Profile, error)

	// CreateProfile creates the caller's profile. The service returns the
	// existing profile when one was created concurrently.
	CreateProfile(ctx context.Context, token string) (*Profile, error)
}
