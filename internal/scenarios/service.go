package scenarios

import (
	"context"
	"strings"

	"github.com/knowthatperson/knowthatperson/backend/api/internal/config"
	"github.com/knowthatperson/knowthatperson/backend/api/internal/models"
)

// PreviewLen is the list-view truncation point. A story of exactly PreviewLen
// characters is returned whole; anything longer is cut there and suffixed
// with an ellipsis. Measured in runes.
const PreviewLen = 200

// Pagination reports the resolved page parameters back to the client.
type Pagination struct {
	Page    int  `json:"page"`
	Limit   int  `json:"limit"`
	HasMore bool `json:"hasMore"`
}

// Service encapsulates scenario read logic: pagination clamping, category
// filter parsing and the preview projection.
type Service struct {
	repo Repository
	pag  config.PaginationConfig
}

func NewService(r Repository, pag config.PaginationConfig) *Service {
	return &Service{repo: r, pag: pag}
}

// Get returns the full detail view of an active scenario.
func (s *Service) Get(ctx context.Context, id string) (*models.ScenarioDetail, error) {
	sc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.ScenarioDetail{
		ID:         sc.ID.Hex(),
		Title:      sc.Title,
		Category:   sc.Category,
		FullText:   sc.Story,
		Tags:       tagsOrEmpty(sc.Tags),
		ShareCount: sc.ShareCount,
	}, nil
}

// List returns one page of scenario previews, newest first. category is the
// raw comma-separated query value; page/limit are the raw parsed query values
// and get clamped against the configured defaults.
func (s *Service) List(ctx context.Context, page, limit int, category string) ([]models.ScenarioListItem, Pagination, error) {
	if page < 1 {
		page = s.pag.DefaultPage
	}
	if limit < 1 {
		limit = s.pag.DefaultLimit
	}
	if limit > s.pag.MaxLimit {
		limit = s.pag.MaxLimit
	}

	params := ListParams{
		Skip: int64(page-1) * int64(limit),
		// fetch one extra row to detect whether more pages exist
		Limit:      int64(limit) + 1,
		Categories: ParseCategories(category),
	}
	docs, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, Pagination{}, err
	}

	hasMore := len(docs) > limit
	if hasMore {
		docs = docs[:limit]
	}

	items := make([]models.ScenarioListItem, 0, len(docs))
	for _, sc := range docs {
		items = append(items, models.ScenarioListItem{
			ID:         sc.ID.Hex(),
			Title:      sc.Title,
			Category:   sc.Category,
			Preview:    Preview(sc.Story),
			Tags:       tagsOrEmpty(sc.Tags),
			ShareCount: sc.ShareCount,
		})
	}
	return items, Pagination{Page: page, Limit: limit, HasMore: hasMore}, nil
}

// SoftDelete marks a scenario deleted. Moderation path.
func (s *Service) SoftDelete(ctx context.Context, id string) error {
	return s.repo.SoftDelete(ctx, id)
}

// ParseCategories splits a comma-separated filter value, trimming whitespace
// and dropping empty tokens. An empty result means "no filter".
func ParseCategories(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if c := strings.TrimSpace(p); c != "" {
			out = append(out, c)
		}
	}
	return out
}

// Preview truncates a story for list views.
func Preview(story string) string {
	r := []rune(story)
	if len(r) <= PreviewLen {
		return story
	}
	return string(r[:PreviewLen]) + "..."
}

func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
