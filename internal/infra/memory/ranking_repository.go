package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"bigbang-quiz-service/internal/domain"
)

// RankingRepository is an in-memory implementation of app.RankingRepository.
type RankingRepository struct {
	mu     sync.RWMutex
	nextID int64
	rows   []domain.RankingEntry
}

func NewRankingRepository() *RankingRepository {
	return &RankingRepository{nextID: 1}
}

func (r *RankingRepository) Insert(_ context.Context, entry *domain.RankingEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry.ID = r.nextID
	r.nextID++
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	r.rows = append(r.rows, *entry)
	return nil
}

func (r *RankingRepository) AllByScoreDesc(_ context.Context) ([]domain.RankingEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := append([]domain.RankingEntry(nil), r.rows...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out, nil
}

func (r *RankingRepository) DeleteByID(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.rows {
		if e.ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return domain.ErrRankingNotFound
}

func (r *RankingRepository) UpdatePlayer(_ context.Context, id int64, player string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID == id {
			r.rows[i].Player = player
			return nil
		}
	}
	return domain.ErrRankingNotFound
}
