package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"bigbang-quiz-service/internal/app"
	"bigbang-quiz-service/internal/domain"
	"bigbang-quiz-service/internal/periodic"
)

// QuestionRepository is an in-memory implementation of app.QuestionRepository,
// used by tests and by demo runs without a database.
type QuestionRepository struct {
	mu     sync.RWMutex
	nextID int64
	rows   map[int64]domain.Question
}

func NewQuestionRepository() *QuestionRepository {
	return &QuestionRepository{nextID: 1, rows: make(map[int64]domain.Question)}
}

// Seed loads questions without authoring validation, for demo data.
func (r *QuestionRepository) Seed(questions []domain.Question) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, q := range questions {
		q.ID = r.nextID
		r.nextID++
		r.rows[q.ID] = q
	}
}

func (r *QuestionRepository) QuestionsByLevel(_ context.Context, level domain.Level) ([]domain.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Question
	for _, q := range r.rows {
		if q.Level == level {
			out = append(out, cloneQuestion(q))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *QuestionRepository) ByID(_ context.Context, id int64) (domain.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	q, ok := r.rows[id]
	if !ok {
		return domain.Question{}, domain.ErrQuestionNotFound
	}
	return cloneQuestion(q), nil
}

func (r *QuestionRepository) List(_ context.Context, filter app.ListFilter) ([]domain.Question, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	search := periodic.FoldKey(filter.Search)
	var all []domain.Question
	for _, q := range r.rows {
		if filter.Level != 0 && q.Level != filter.Level {
			continue
		}
		if search != "" && !strings.Contains(periodic.FoldKey(q.Name), search) {
			continue
		}
		all = append(all, cloneQuestion(q))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	total := len(all)
	start := (filter.Page - 1) * filter.Size
	if start >= total {
		return []domain.Question{}, total, nil
	}
	end := start + filter.Size
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

func (r *QuestionRepository) Create(_ context.Context, q *domain.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	q.ID = r.nextID
	r.nextID++
	r.rows[q.ID] = cloneQuestion(*q)
	return nil
}

func (r *QuestionRepository) Update(_ context.Context, q *domain.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[q.ID]; !ok {
		return domain.ErrQuestionNotFound
	}
	r.rows[q.ID] = cloneQuestion(*q)
	return nil
}

func (r *QuestionRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return domain.ErrQuestionNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *QuestionRepository) NameOrSymbolTaken(_ context.Context, nameKey, symbolKey string, excludeID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, q := range r.rows {
		if q.ID == excludeID {
			continue
		}
		if periodic.FoldKey(q.Name) == nameKey || (symbolKey != "" && periodic.FoldKey(q.Symbol) == symbolKey) {
			return true, nil
		}
	}
	return false, nil
}

func cloneQuestion(q domain.Question) domain.Question {
	q.Hints = append([]string(nil), q.Hints...)
	return q
}
