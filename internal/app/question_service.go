package app

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"bigbang-quiz-service/internal/auth"
	"bigbang-quiz-service/internal/domain"
	"bigbang-quiz-service/internal/periodic"
)

// HintCount is the fixed number of hints every question carries.
const HintCount = 3

// ListFilter selects a page of questions for the admin panel.
type ListFilter struct {
	Search string
	Level  domain.Level // zero means all levels
	Page   int          // 1-based
	Size   int
}

// QuestionPage is one paginated listing result. Count and items come from a
// single database transaction so the page math stays consistent.
type QuestionPage struct {
	Items []domain.Question `json:"itens"`
	Total int               `json:"total"`
	Page  int               `json:"pagina"`
	Size  int               `json:"tamanho"`
}

// QuestionRepository is the persistent question table. Hint replacement on
// update is all-or-nothing.
type QuestionRepository interface {
	QuestionsByLevel(ctx context.Context, level domain.Level) ([]domain.Question, error)
	ByID(ctx context.Context, id int64) (domain.Question, error)
	List(ctx context.Context, filter ListFilter) ([]domain.Question, int, error)
	Create(ctx context.Context, q *domain.Question) error
	Update(ctx context.Context, q *domain.Question) error
	Delete(ctx context.Context, id int64) error
	NameOrSymbolTaken(ctx context.Context, nameKey, symbolKey string, excludeID int64) (bool, error)
}

// ImageStore persists uploaded element images. Remove is best-effort: the
// implementation logs and counts the outcome instead of surfacing errors.
type ImageStore interface {
	Save(name string, r io.Reader) (string, error)
	Remove(path string)
}

// PoolInvalidator drops a cached level pool after an authoring write, so the
// next game start sees fresh questions instead of waiting out the TTL.
type PoolInvalidator interface {
	Invalidate(ctx context.Context, level domain.Level)
}

// ImageKind selects which of a question's two image slots an upload targets.
type ImageKind string

const (
	ImageMain         ImageKind = "imagem"
	ImageDistribution ImageKind = "distribuicao"
)

// QuestionService owns authoring: CRUD with the element-table, hint-count and
// uniqueness invariants, plus image slot handling.
type QuestionService struct {
	repo   QuestionRepository
	images ImageStore
	cache  PoolInvalidator
	logger *slog.Logger
}

func NewQuestionService(repo QuestionRepository, images ImageStore, logger *slog.Logger) *QuestionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &QuestionService{repo: repo, images: images, logger: logger}
}

// UsePoolCache registers the level-pool cache to invalidate after writes.
func (s *QuestionService) UsePoolCache(cache PoolInvalidator) {
	s.cache = cache
}

func (s *QuestionService) invalidate(ctx context.Context, levels ...domain.Level) {
	if s.cache == nil {
		return
	}
	seen := map[domain.Level]bool{}
	for _, level := range levels {
		if !seen[level] {
			seen[level] = true
			s.cache.Invalidate(ctx, level)
		}
	}
}

// Get fetches one question with its hints.
func (s *QuestionService) Get(ctx context.Context, id int64) (domain.Question, error) {
	return s.repo.ByID(ctx, id)
}

// List returns one admin-panel page, with total count from the same
// transaction as the rows.
func (s *QuestionService) List(ctx context.Context, filter ListFilter) (QuestionPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Size < 1 {
		filter.Size = 10
	}
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return QuestionPage{}, err
	}
	return QuestionPage{Items: items, Total: total, Page: filter.Page, Size: filter.Size}, nil
}

// Create validates and stores a new question.
func (s *QuestionService) Create(ctx context.Context, q *domain.Question) error {
	if err := s.validate(ctx, q, 0); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, q); err != nil {
		return err
	}
	s.invalidate(ctx, q.Level)
	return nil
}

// Update validates and rewrites a question, replacing all three hints. Stale
// image files left behind by a path change are removed best-effort.
func (s *QuestionService) Update(ctx context.Context, q *domain.Question) error {
	stored, err := s.repo.ByID(ctx, q.ID)
	if err != nil {
		return err
	}
	if err := s.validate(ctx, q, q.ID); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, q); err != nil {
		return err
	}
	s.invalidate(ctx, stored.Level, q.Level)
	if stored.ImagePath != "" && stored.ImagePath != q.ImagePath {
		s.images.Remove(stored.ImagePath)
	}
	if stored.DistributionImage != "" && stored.DistributionImage != q.DistributionImage {
		s.images.Remove(stored.DistributionImage)
	}
	return nil
}

// Delete removes a question together with its hints and uploaded images.
// Requires the delete-elements permission.
func (s *QuestionService) Delete(ctx context.Context, actor auth.Context, id int64) error {
	if !actor.SuperAdmin && !actor.CanDeleteQuiz {
		return domain.ErrPermissionDenied
	}
	stored, err := s.repo.ByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, stored.Level)
	if stored.ImagePath != "" {
		s.images.Remove(stored.ImagePath)
	}
	if stored.DistributionImage != "" {
		s.images.Remove(stored.DistributionImage)
	}
	return nil
}

// AttachImage stores an uploaded file into one of the question's image slots
// and drops the slot's previous file.
func (s *QuestionService) AttachImage(ctx context.Context, id int64, kind ImageKind, filename string, r io.Reader) (domain.Question, error) {
	stored, err := s.repo.ByID(ctx, id)
	if err != nil {
		return domain.Question{}, err
	}

	path, err := s.images.Save(filename, r)
	if err != nil {
		return domain.Question{}, err
	}

	var old string
	switch kind {
	case ImageDistribution:
		old = stored.DistributionImage
		stored.DistributionImage = path
	default:
		old = stored.ImagePath
		stored.ImagePath = path
	}

	if err := s.repo.Update(ctx, &stored); err != nil {
		s.images.Remove(path)
		return domain.Question{}, err
	}
	s.invalidate(ctx, stored.Level)
	if old != "" && old != path {
		s.images.Remove(old)
	}
	return stored, nil
}

func (s *QuestionService) validate(ctx context.Context, q *domain.Question, excludeID int64) error {
	q.Name = strings.TrimSpace(q.Name)
	q.Symbol = strings.TrimSpace(q.Symbol)

	if !q.Level.Valid() {
		return domain.ErrUnknownLevelTag
	}
	if len(q.Hints) != HintCount {
		return domain.ErrHintCount
	}
	for _, h := range q.Hints {
		if strings.TrimSpace(h) == "" {
			return domain.ErrHintCount
		}
	}
	if !periodic.Lookup(q.Name, q.Symbol) {
		return domain.ErrUnknownElement
	}

	taken, err := s.repo.NameOrSymbolTaken(ctx, periodic.FoldKey(q.Name), periodic.FoldKey(q.Symbol), excludeID)
	if err != nil {
		return err
	}
	if taken {
		return domain.ErrDuplicateElement
	}
	return nil
}
