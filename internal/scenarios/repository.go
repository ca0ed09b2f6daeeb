package scenarios

import (
	"context"
	"errors"
	"time"

	"github.com/knowthatperson/knowthatperson/backend/api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound  = errors.New("scenario not found")
	ErrInvalidID = errors.New("invalid scenario id")
)

// ListParams are resolved query parameters: Skip/Limit are already clamped by
// the service, Categories is the cleaned any-of filter (empty = no filter).
type ListParams struct {
	Skip       int64
	Limit      int64
	Categories []string
}

// Repository defines persistence operations for scenarios
type Repository interface {
	GetByID(ctx context.Context, id string) (*models.Scenario, error)
	List(ctx context.Context, p ListParams) ([]*models.Scenario, error)
	IncrementShareCount(ctx context.Context, id primitive.ObjectID) error
	SoftDelete(ctx context.Context, id string) error
}

// MongoRepository implements Repository using MongoDB
type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func activeByID(id string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	return bson.M{"_id": oid, "status": models.StatusActive}, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (*models.Scenario, error) {
	filter, err := activeByID(id)
	if err != nil {
		return nil, err
	}
	var sc models.Scenario
	if err := r.col.FindOne(ctx, filter).Decode(&sc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sc, nil
}

func (r *MongoRepository) List(ctx context.Context, p ListParams) ([]*models.Scenario, error) {
	filter := bson.M{"status": models.StatusActive}
	if len(p.Categories) > 0 {
		filter["category"] = bson.M{"$in": p.Categories}
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(p.Skip).
		SetLimit(p.Limit)
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*models.Scenario{}
	for cur.Next(ctx) {
		var sc models.Scenario
		if err := cur.Decode(&sc); err != nil {
			return nil, err
		}
		out = append(out, &sc)
	}
	return out, cur.Err()
}

func (r *MongoRepository) IncrementShareCount(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.StatusActive},
		bson.M{"$inc": bson.M{"shareCount": 1}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository) SoftDelete(ctx context.Context, id string) error {
	filter, err := activeByID(id)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	res, err := r.col.UpdateOne(ctx, filter,
		bson.M{"$set": bson.M{"status": models.StatusDeleted, "deletedAt": now}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
