package shares

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/knowthatperson/knowthatperson/backend/api/internal/models"
	"github.com/knowthatperson/knowthatperson/backend/api/internal/tokens"
	"github.com/knowthatperson/knowthatperson/backend/api/pkg/metrics"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

// maxTokenAttempts bounds the collision-retry loop. A collision on a 128-bit
// token is already vanishingly unlikely; five in a row means the generator is
// returning duplicates and retrying forever would just spin.
const maxTokenAttempts = 5

// ScenarioStore is the slice of the scenario repository share creation needs.
type ScenarioStore interface {
	GetByID(ctx context.Context, id string) (*models.Scenario, error)
	IncrementShareCount(ctx context.Context, id primitive.ObjectID) error
}

// AnswerLister is the slice of the answer repository the bundle fetch needs.
type AnswerLister interface {
	ListPublicByShare(ctx context.Context, shareID primitive.ObjectID) ([]*models.Answer, error)
}

// CreateResult is the response to a successful share creation.
type CreateResult struct {
	ShareURL string `json:"shareUrl"`
	Token    string `json:"token"`
}

// BundleScenario is the scenario view embedded in a share bundle. It omits
// the share counter: viewers of a link don't see popularity numbers.
type BundleScenario struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Category string   `json:"category"`
	FullText string   `json:"fullText"`
	Tags     []string `json:"tags"`
}

// Bundle is the combined share view: the scenario plus its public answers.
type Bundle struct {
	Scenario BundleScenario          `json:"scenario"`
	Answers  []models.AnswerListItem `json:"answers"`
}

// Service creates and resolves share links.
type Service struct {
	repo      Repository
	scenarios ScenarioStore
	answers   AnswerLister
	generate  tokens.Generator
	baseURL   string
}

func NewService(r Repository, scenarios ScenarioStore, answers AnswerLister, gen tokens.Generator, baseURL string) *Service {
	if gen == nil {
		gen = tokens.NewShareToken
	}
	return &Service{
		repo:      r,
		scenarios: scenarios,
		answers:   answers,
		generate:  gen,
		baseURL:   strings.TrimRight(baseURL, "/"),
	}
}

// Create mints a share for the given scenario and bumps its share counter.
//
// The existence check, uniqueness check, insert and counter increment run as
// four independent calls without a transaction, matching the per-document
// atomicity the store guarantees. Two concurrent creators could in theory
// pass the uniqueness check with the same token; the unique index on
// shares.token turns that into an insert error rather than a duplicate.
func (s *Service) Create(ctx context.Context, scenarioID string) (*CreateResult, error) {
	scenario, err := s.scenarios.GetByID(ctx, scenarioID)
	if err != nil {
		return nil, err
	}

	var token string
	for attempt := 0; attempt < maxTokenAttempts; attempt++ {
		candidate, err := s.generate()
		if err != nil {
			return nil, err
		}
		_, err = s.repo.GetByToken(ctx, candidate)
		if errors.Is(err, ErrNotFound) {
			token = candidate
			break
		}
		if err != nil {
			return nil, err
		}
		// an active share already holds this token
		metrics.ShareTokenCollisions.Inc()
	}
	if token == "" {
		return nil, ErrTokenRetryExhausted
	}

	sh := &models.Share{
		Token:      token,
		ScenarioID: scenario.ID,
		Status:     models.StatusActive,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, sh); err != nil {
		return nil, err
	}
	if err := s.scenarios.IncrementShareCount(ctx, scenario.ID); err != nil {
		return nil, err
	}
	metrics.SharesCreated.Inc()

	return &CreateResult{
		ShareURL: s.baseURL + "/s/" + token,
		Token:    token,
	}, nil
}

// GetByToken resolves an active share.
func (s *Service) GetByToken(ctx context.Context, token string) (*models.Share, error) {
	return s.repo.GetByToken(ctx, token)
}

// GetBundle resolves a share and fetches its scenario and public answers.
// The two fetches are independent and run concurrently.
func (s *Service) GetBundle(ctx context.Context, token string) (*Bundle, error) {
	sh, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	var (
		scenario *models.Scenario
		answers  []*models.Answer
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sc, err := s.scenarios.GetByID(gctx, sh.ScenarioID.Hex())
		if err != nil {
			return err
		}
		scenario = sc
		return nil
	})
	g.Go(func() error {
		ans, err := s.answers.ListPublicByShare(gctx, sh.ID)
		if err != nil {
			return err
		}
		answers = ans
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	items := make([]models.AnswerListItem, 0, len(answers))
	for _, a := range answers {
		items = append(items, models.AnswerListItem{
			ID:          a.ID.Hex(),
			Name:        a.Name,
			Perspective: a.Perspective,
			CreatedAt:   a.CreatedAt,
		})
	}
	tags := scenario.Tags
	if tags == nil {
		tags = []string{}
	}
	return &Bundle{
		Scenario: BundleScenario{
			ID:       scenario.ID.Hex(),
			Title:    scenario.Title,
			Category: scenario.Category,
			FullText: scenario.Story,
			Tags:     tags,
		},
		Answers: items,
	}, nil
}

// SoftDelete marks a share deleted. Moderation path.
func (s *Service) SoftDelete(ctx context.Context, token string) error {
	return s.repo.SoftDelete(ctx, token)
}
