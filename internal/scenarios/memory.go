package scenarios

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
	store map[primitive.ObjectID]*models.Scenario
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{store: make(map[primitive.ObjectID]*models.Scenario)}
}

// Add inserts a scenario, assigning an id when missing. Test seeding helper.
func (m *MemoryRepository) Add(sc *models.Scenario) primitive.ObjectID {
	m.mu.Lock()
	defer m.mu.Unlock()
	if sc.ID.IsZero() {
		sc.ID = primitive.NewObjectID()
	}
	if sc.Status == "" {
		sc.Status = models.StatusActive
	}
	if sc.CreatedAt.IsZero() {
		sc.CreatedAt = time.Now().UTC()
	}
	cp := *sc
	m.store[sc.ID] = &cp
	return sc.ID
}

func (m *MemoryRepository) GetByID(ctx context.Context, id string) (*models.Scenario, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	sc, ok := m.store[oid]
	if !ok || sc.Status != models.StatusActive {
		return nil, ErrNotFound
	}
	cp := *sc
	return &cp, nil
}

func (m *MemoryRepository) List(ctx context.Context, p ListParams) ([]*models.Scenario, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	matched := []*models.Scenario{}
	for _, sc := range m.store {
		if sc.Status != models.StatusActive {
			continue
		}
		if len(p.Categories) > 0 && !contains(p.Categories, sc.Category) {
			continue
		}
		cp := *sc
		matched = append(matched, &cp)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	if p.Skip >= int64(len(matched)) {
		return []*models.Scenario{}, nil
	}
	matched = matched[p.Skip:]
	if p.Limit > 0 && int64(len(matched)) > p.Limit {
		matched = matched[:p.Limit]
	}
	return matched, nil
}

func (m *MemoryRepository) IncrementShareCount(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	sc, ok := m.store[id]
	if !ok || sc.Status != models.StatusActive {
		return ErrNotFound
	}
	sc.ShareCount++
	return nil
}

func (m *MemoryRepository) SoftDelete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	sc, ok := m.store[oid]
	if !ok || sc.Status != models.StatusActive {
		return ErrNotFound
	}
	now := time.Now().UTC()
	sc.Status = models.StatusDeleted
	sc.DeletedAt = &now
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
