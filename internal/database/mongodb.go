package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names used by the service.
const (
	ScenariosCollection = "scenarios"
	SharesCollection    = "shares"
	AnswersCollection   = "answers"
)

// ConnectMongo opens a connection and returns the client. Caller should call client.Disconnect(ctx).
func ConnectMongo(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	clientOpts := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// EnsureCollections creates the scenarios/shares/answers collections when
// they don't exist yet. Idempotent, safe to call on every startup.
func EnsureCollections(ctx context.Context, db *mongo.Database) error {
	existing, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("list collections: %w", err)
	}
	have := make(map[string]bool, len(existing))
	for _, name := range existing {
		have[name] = true
	}
	for _, name := range []string{ScenariosCollection, SharesCollection, AnswersCollection} {
		if have[name] {
			continue
		}
		if err := db.CreateCollection(ctx, name); err != nil {
			return fmt.Errorf("create collection %s: %w", name, err)
		}
	}
	return nil
}

// EnsureIndexes creates the indexes the query paths rely on. The unique token
// index also backstops the non-transactional share-creation race: a concurrent
// duplicate insert fails instead of producing two shares with one token.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	scenarioIdx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "tags", Value: 1}}},
	}
	if _, err := db.Collection(ScenariosCollection).Indexes().CreateMany(ctx, scenarioIdx); err != nil {
		return fmt.Errorf("scenario indexes: %w", err)
	}

	shareIdx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "token", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "scenarioId", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}
	if _, err := db.Collection(SharesCollection).Indexes().CreateMany(ctx, shareIdx); err != nil {
		return fmt.Errorf("share indexes: %w", err)
	}

	answerIdx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "shareId", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "public", Value: 1}}},
	}
	if _, err := db.Collection(AnswersCollection).Indexes().CreateMany(ctx, answerIdx); err != nil {
		return fmt.Errorf("answer indexes: %w", err)
	}
	return nil
}
