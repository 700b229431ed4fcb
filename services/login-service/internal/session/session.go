package session

import (
	"context"
	"maps"
	"time"

	"github.com/vasapolrittideah/loginflow/services/login-service/internal/identity"
	"github.com/vasapolrittideah/loginflow/services/login-service/internal/profile"
)

// Record is the merged identity and profile kept for one browser session.
type Record struct {
	ID        string            `json:"id"         bson:"_id"`
	Identity  identity.Identity `json:"identity"   bson:"identity"`
	Profile   profile.Profile   `json:"profile"    bson:"profile"`
	CreatedAt time.Time         `json:"created_at" bson:"created_at"`
	ExpiresAt time.Time         `json:"expires_at" bson:"expires_at"`
}

// Store persists session records. Put replaces the whole record in a single
// write; Get returns (nil, nil) when the record is absent or expired.
type Store interface {
	Put(ctx context.Context, record *Record) error
	Get(ctx context.Context, id string) (*Record, error)
}

func (r *Record) clone() *Record {
	c := *r
	c.Identity.IDToken = ""
	c.Profile.Data = maps.Clone(r.Profile.Data)
	return &c
}

func (r *Record) expiredAt(now time.Time) bool {
	return !r.ExpiresAt.IsZero() && !now.Before(r.ExpiresAt)
}
