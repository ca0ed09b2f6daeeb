package shares

import (
	"context"
	"errors"
	"time"

	"github.com/knowthatperson/knowthatperson/backend/api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound = errors.New("share not found")
	// ErrTokenRetryExhausted is returned when repeated collisions prevent the
	// creation of a unique token. With 128 bits of entropy this only happens
	// when the generator is broken.
	ErrTokenRetryExhausted = errors.New("share token generation retries exhausted")
)

// Repository defines persistence operations for shares
type Repository interface {
	Insert(ctx context.Context, sh *models.Share) error
	GetByToken(ctx context.Context, token string) (*models.Share, error)
	SoftDelete(ctx context.Context, token string) error
}

// MongoRepository implements Repository using MongoDB
type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Insert(ctx context.Context, sh *models.Share) error {
	if sh.ID.IsZero() {
		sh.ID = primitive.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, sh)
	return err
}

func (r *MongoRepository) GetByToken(ctx context.Context, token string) (*models.Share, error) {
	var sh models.Share
	filter := bson.M{"token": token, "status": models.StatusActive}
	if err := r.col.FindOne(ctx, filter).Decode(&sh); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sh, nil
}

func (r *MongoRepository) SoftDelete(ctx context.Context, token string) error {
	now := time.Now().UTC()
	res, err := r.col.UpdateOne(ctx,
		bson.M{"token": token, "status": models.StatusActive},
		bson.M{"$set": bson.M{"status": models.StatusDeleted, "deletedAt": now}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
