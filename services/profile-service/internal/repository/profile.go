package repository

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vasapolrittideah/loginflow/services/profile-service/internal/model"
)

// ProfileRepository defines the interface for profile-related database operations.
type ProfileRepository interface {
	// GetProfileByOwner returns mongo.ErrNoDocuments when ownerID has no profile.
	GetProfileByOwner(ctx context.Context, ownerID string) (*model.Profile, error)

	// CreateProfileIfAbsent inserts profile unless its owner already has one and
	// returns the stored profile. created is true only for the call that inserted it.
	CreateProfileIfAbsent(ctx context.Context, profile *model.Profile) (stored *model.Profile, created bool, err error)
}

const profileCollection = "profiles"

type profileMongoRepository struct {
	db *mongo.Database
}

func NewProfileMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) ProfileRepository {
	collection := db.Collection(profileCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "owner_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create profile indexes")
	}

	return &profileMongoRepository{db: db}
}

func (r *profileMongoRepository) GetProfileByOwner(ctx context.Context, ownerID string) (*model.Profile, error) {
	result := r.db.Collection(profileCollection).FindOne(ctx, bson.M{"owner_id": ownerID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var profile model.Profile
	if err := result.Decode(&profile); err != nil {
		return nil, err
	}

	return &profile, nil
}

func (r *profileMongoRepository) CreateProfileIfAbsent(
	ctx context.Context,
	profile *model.Profile,
) (*model.Profile, bool, error) {
	now := time.Now()

	// $setOnInsert leaves an existing document untouched, and the unique
	// owner_id index turns a lost upsert race into a duplicate key error.
	result, err := r.db.Collection(profileCollection).UpdateOne(
		ctx,
		bson.M{"owner_id": profile.OwnerID},
		bson.M{"$setOnInsert": bson.M{
			"owner_id":   profile.OwnerID,
			"email":      profile.Email,
			"data":       profile.Data,
			"created_at": now,
			"updated_at": now,
		}},
		options.UpdateOne().SetUpsert(true),
	)
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return nil, false, err
	}

	created := err == nil && result.UpsertedCount == 1

	stored, err := r.GetProfileByOwner(ctx, profile.OwnerID)
	if err != nil {
		return nil, false, err
	}

	return stored, created, nil
}
