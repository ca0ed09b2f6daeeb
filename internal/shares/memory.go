package shares

import (
	"context"
	"sync"
	"time"

	"github.com/knowthatperson/knowthatperson/backend/api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepository is an in-memory Repository used by unit tests.
type MemoryRepository struct {
	mu    sync.RWMutex
	store []*models.Share
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (m *MemoryRepository) Insert(ctx context.Context, sh *models.Share) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if sh.ID.IsZero() {
		sh.ID = primitive.NewObjectID()
	}
	cp := *sh
	m.store = append(m.store, &cp)
	return nil
}

func (m *MemoryRepository) GetByToken(ctx context.Context, token string) (*models.Share, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, sh := range m.store {
		if sh.Token == token && sh.Status == models.StatusActive {
			cp := *sh
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryRepository) SoftDelete(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, sh := range m.store {
		if sh.Token == token && sh.Status == models.StatusActive {
			now := time.Now().UTC()
			sh.Status = models.StatusDeleted
			sh.DeletedAt = &now
			return nil
		}
	}
	return ErrNotFound
}
