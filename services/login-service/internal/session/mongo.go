package session

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const sessionCollection = "sessions"

// MongoStore keeps one document per session id. Expired documents are removed
// by a TTL index on expires_at.
type MongoStore struct {
	db *mongo.Database
}

// NewMongoStore creates the session collection indexes and returns the store.
func NewMongoStore(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) *MongoStore {
	collection := db.Collection(sessionCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
		{
			Keys: bson.D{{Key: "identity.subject_id", Value: 1}},
		},
	}

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		logger.Fatal().Err(err).Msg("failed to create session indexes")
	}

	return &MongoStore{db: db}
}

// Put replaces the document for record.ID in one upserting write.
func (s *MongoStore) Put(ctx context.Context, record *Record) error {
	if record == nil || record.ID == "" {
		return ErrMissingID
	}

	_, err := s.db.Collection(sessionCollection).ReplaceOne(
		ctx,
		bson.M{"_id": record.ID},
		record.clone(),
		options.Replace().SetUpsert(true),
	)
	return err
}

func (s *MongoStore) Get(ctx context.Context, id string) (*Record, error) {
	filter := bson.M{
		"_id":        id,
		"expires_at": bson.M{"$gt": time.Now()},
	}

	var record Record
	err := s.db.Collection(sessionCollection).FindOne(ctx, filter).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &record, nil
}
