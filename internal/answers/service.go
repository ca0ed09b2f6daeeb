package answers

import (
	"context"
	"strings"
	"time"

	"github.com/knowthatperson/knowthatperson/backend/api/internal/models"
	"github.com/knowthatperson/knowthatperson/backend/api/internal/validate"
	"github.com/knowthatperson/knowthatperson/backend/api/pkg/metrics"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ShareResolver is the slice of the share repository answer submission needs.
type ShareResolver interface {
	GetByToken(ctx context.Context, token string) (*models.Share, error)
}

// Service accepts and surfaces answers to a share.
type Service struct {
	repo   Repository
	shares ShareResolver
}

func NewService(r Repository, shares ShareResolver) *Service {
	return &Service{repo: r, shares: shares}
}

// Submit validates and stores an answer, then returns the full public answer
// list for the share so the response reflects the post-insert state.
// A failed share lookup surfaces the share package's not-found error.
func (s *Service) Submit(ctx context.Context, token, name, perspective string, public bool) ([]models.AnswerListItem, error) {
	if err := validate.Name(name); err != nil {
		return nil, err
	}
	if err := validate.Perspective(perspective); err != nil {
		return nil, err
	}

	sh, err := s.shares.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	a := &models.Answer{
		ShareID:     sh.ID,
		Name:        strings.TrimSpace(name),
		Perspective: strings.TrimSpace(perspective),
		Public:      public,
		Status:      models.StatusActive,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, a); err != nil {
		return nil, err
	}
	metrics.AnswersSubmitted.Inc()

	return s.ListPublic(ctx, sh.ID)
}

// ListPublic returns the visible answers for a share, oldest first.
func (s *Service) ListPublic(ctx context.Context, shareID primitive.ObjectID) ([]models.AnswerListItem, error) {
	list, err := s.repo.ListPublicByShare(ctx, shareID)
	if err != nil {
		return nil, err
	}
	items := make([]models.AnswerListItem, 0, len(list))
	for _, a := range list {
		items = append(items, models.AnswerListItem{
			ID:          a.ID.Hex(),
			Name:        a.Name,
			Perspective: a.Perspective,
			CreatedAt:   a.CreatedAt,
		})
	}
	return items, nil
}

// SoftDelete marks an answer deleted. Moderation path.
func (s *Service) SoftDelete(ctx context.Context, id string) error {
	return s.repo.SoftDelete(ctx, id)
}
