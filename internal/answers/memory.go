package answers

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/knowthatperson/knowthatperson/backend/api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepository is an in-memory Repository used by unit tests.
type MemoryRepository struct {
	mu    sync.RWMutex
	store []*models.Answer
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (m *MemoryRepository) Insert(ctx context.Context, a *models.Answer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	cp := *a
	m.store = append(m.store, &cp)
	return nil
}

func (m *MemoryRepository) ListPublicByShare(ctx context.Context, shareID primitive.ObjectID) ([]*models.Answer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*models.Answer{}
	for _, a := range m.store {
		if a.ShareID == shareID && a.Status == models.StatusActive && a.Public {
			cp := *a
			out = append(out, &cp)
		}
	}
	// stable: insertion order is kept for equal timestamps
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MemoryRepository) SoftDelete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.store {
		if a.ID == oid && a.Status == models.StatusActive {
			now := time.Now().UTC()
			a.Status = models.StatusDeleted
			a.DeletedAt = &now
			return nil
		}
	}
	return ErrNotFound
}
