package answers

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
	ErrNotFound  = errors.New("answer not found")
	ErrInvalidID = errors.New("invalid answer id")
)

// Repository defines persistence operations for answers
type Repository interface {
	Insert(ctx context.Context, a *models.Answer) error
	ListPublicByShare(ctx context.Context, shareID primitive.ObjectID) ([]*models.Answer, error)
	SoftDelete(ctx context.Context, id string) error
}

// MongoRepository implements Repository using MongoDB
type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Insert(ctx context.Context, a *models.Answer) error {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, a)
	return err
}

// ListPublicByShare returns the share's visible answers, oldest first.
func (r *MongoRepository) ListPublicByShare(ctx context.Context, shareID primitive.ObjectID) ([]*models.Answer, error) {
	filter := bson.M{
		"shareId": shareID,
		"status":  models.StatusActive,
		"public":  true,
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*models.Answer{}
	for cur.Next(ctx) {
		var a models.Answer
		if err := cur.Decode(&a); err != nil {
			return nil, err
		}
		out = append(out, &a)
	}
	return out, cur.Err()
}

func (r *MongoRepository) SoftDelete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}
	now := time.Now().UTC()
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid, "status": models.StatusActive},
		bson.M{"$set": bson.M{"status": models.StatusDeleted, "deletedAt": now}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
