package shares

import (
	"context"
	"testing"
	"time"

	"github.com/knowthatperson/knowthatperson/backend/api/internal/answers"
	"github.com/knowthatperson/knowthatperson/backend/api/internal/models"
	"github.com/knowthatperson/knowthatperson/backend/api/internal/scenarios"
	"github.com/knowthatperson/knowthatperson/backend/api/internal/tokens"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, gen tokens.Generator) (*Service, *scenarios.MemoryRepository, *answers.MemoryRepository, string) {
	t.Helper()
	scRepo := scenarios.NewMemoryRepository()
	ansRepo := answers.NewMemoryRepository()
	shRepo := NewMemoryRepository()
	id := scRepo.Add(&models.Scenario{
		Title:    "AITA for refusing to lend my sister money?",
		Category: "Money",
		Story:    "My sister asked me to loan her money for her wedding...",
		Tags:     []string{"aita", "money"},
	})
	svc := NewService(shRepo, scRepo, ansRepo, gen, "https://knowthatperson.example/")
	return svc, scRepo, ansRepo, id.Hex()
}

func TestCreateShare(t *testing.T) {
	svc, scRepo, _, scenarioID := newTestService(t, nil)
	ctx := context.Background()

	res, err := svc.Create(ctx, scenarioID)
	require.NoError(t, err)
	require.Len(t, res.Token, 32)
	require.Equal(t, "https://knowthatperson.example/s/"+res.Token, res.ShareURL)

	sh, err := svc.GetByToken(ctx, res.Token)
	require.NoError(t, err)
	require.Equal(t, scenarioID, sh.ScenarioID.Hex())

	// counter moved by exactly one per share
	sc, err := scRepo.GetByID(ctx, scenarioID)
	require.NoError(t, err)
	require.EqualValues(t, 1, sc.ShareCount)

	_, err = svc.Create(ctx, scenarioID)
	require.NoError(t, err)
	_, err = svc.Create(ctx, scenarioID)
	require.NoError(t, err)
	sc, err = scRepo.GetByID(ctx, scenarioID)
	require.NoError(t, err)
	require.EqualValues(t, 3, sc.ShareCount)
}

func TestCreateShareScenarioMissing(t *testing.T) {
	svc, _, _, _ := newTestService(t, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, "ffffffffffffffffffffffff")
	require.ErrorIs(t, err, scenarios.ErrNotFound)

	_, err = svc.Create(ctx, "nope")
	require.ErrorIs(t, err, scenarios.ErrInvalidID)
}

func TestCreateShareRetriesOnCollision(t *testing.T) {
	// generator yields a duplicate once, then a fresh token
	seq := []string{"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"}
	i := 0
	gen := func() (string, error) {
		tok := seq[i]
		i++
		return tok, nil
	}
	svc, _, _, scenarioID := newTestService(t, gen)
	ctx := context.Background()

	first, err := svc.Create(ctx, scenarioID)
	require.NoError(t, err)
	require.Equal(t, "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", first.Token)

	second, err := svc.Create(ctx, scenarioID)
	require.NoError(t, err)
	require.Equal(t, "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", second.Token)
	require.Equal(t, 3, i)
}

func TestCreateShareRetryExhausted(t *testing.T) {
	gen := func() (string, error) { return "cccccccccccccccccccccccccccccccc", nil }
	svc, _, _, scenarioID := newTestService(t, gen)
	ctx := context.Background()

	_, err := svc.Create(ctx, scenarioID)
	require.NoError(t, err)

	// every regeneration collides with the share above
	_, err = svc.Create(ctx, scenarioID)
	require.ErrorIs(t, err, ErrTokenRetryExhausted)
}

func TestGetBundle(t *testing.T) {
	svc, _, ansRepo, scenarioID := newTestService(t, nil)
	ctx := context.Background()

	res, err := svc.Create(ctx, scenarioID)
	require.NoError(t, err)

	bundle, err := svc.GetBundle(ctx, res.Token)
	require.NoError(t, err)
	require.Equal(t, scenarioID, bundle.Scenario.ID)
	require.Equal(t, "Money", bundle.Scenario.Category)
	require.NotEmpty(t, bundle.Scenario.FullText)
	require.Empty(t, bundle.Answers)

	sh, err := svc.GetByToken(ctx, res.Token)
	require.NoError(t, err)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, name := range []string{"first", "second", "third"} {
		require.NoError(t, ansRepo.Insert(ctx, &models.Answer{
			ShareID:     sh.ID,
			Name:        name,
			Perspective: "view " + name,
			Public:      true,
			Status:      models.StatusActive,
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}))
	}
	// private and deleted answers stay hidden
	require.NoError(t, ansRepo.Insert(ctx, &models.Answer{
		ShareID: sh.ID, Name: "hidden", Perspective: "private view",
		Public: false, Status: models.StatusActive, CreatedAt: base,
	}))
	require.NoError(t, ansRepo.Insert(ctx, &models.Answer{
		ShareID: sh.ID, Name: "gone", Perspective: "removed view",
		Public: true, Status: models.StatusDeleted, CreatedAt: base,
	}))

	bundle, err = svc.GetBundle(ctx, res.Token)
	require.NoError(t, err)
	require.Len(t, bundle.Answers, 3)
	require.Equal(t, "first", bundle.Answers[0].Name)
	require.Equal(t, "second", bundle.Answers[1].Name)
	require.Equal(t, "third", bundle.Answers[2].Name)
}

func TestGetBundleUnknownToken(t *testing.T) {
	svc, _, _, _ := newTestService(t, nil)
	_, err := svc.GetBundle(context.Background(), "deadbeefdeadbeefdeadbeefdeadbeef")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSoftDeletedShareIsInvisible(t *testing.T) {
	svc, _, _, scenarioID := newTestService(t, nil)
	ctx := context.Background()

	res, err := svc.Create(ctx, scenarioID)
	require.NoError(t, err)

	require.NoError(t, svc.SoftDelete(ctx, res.Token))

	_, err = svc.GetByToken(ctx, res.Token)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = svc.GetBundle(ctx, res.Token)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, svc.SoftDelete(ctx, res.Token), ErrNotFound)
}

func TestBundleScenarioDeleted(t *testing.T) {
	svc, scRepo, _, scenarioID := newTestService(t, nil)
	ctx := context.Background()

	res, err := svc.Create(ctx, scenarioID)
	require.NoError(t, err)

	require.NoError(t, scRepo.SoftDelete(ctx, scenarioID))

	_, err = svc.GetBundle(ctx, res.Token)
	require.ErrorIs(t, err, scenarios.ErrNotFound)
}
