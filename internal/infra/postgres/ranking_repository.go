package postgres

import (
	"context"
	"fmt"
	"time"

	"bigbang-quiz-service/internal/domain"

	"github.com/uptrace/bun"
)

// RankingRepository is the bun-backed score table.
type RankingRepository struct {
	db *bun.DB
}

func NewRankingRepository(db *bun.DB) *RankingRepository {
	return &RankingRepository{db: db}
}

func (r *RankingRepository) Insert(ctx context.Context, entry *domain.RankingEntry) error {
	row := rankingRow{
		Player:    entry.Player,
		Score:     entry.Score,
		LevelTag:  entry.LevelTag,
		CreatedAt: time.Now(),
	}
	if _, err := r.db.NewInsert().Model(&row).Exec(ctx); err != nil {
		return fmt.Errorf("insert ranking entry: %w", err)
	}
	entry.ID = row.ID
	entry.CreatedAt = row.CreatedAt
	return nil
}

func (r *RankingRepository) AllByScoreDesc(ctx context.Context) ([]domain.RankingEntry, error) {
	var rows []rankingRow
	err := r.db.NewSelect().Model(&rows).
		Order("r.score DESC", "r.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("load ranking: %w", err)
	}
	out := make([]domain.RankingEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *RankingRepository) DeleteByID(ctx context.Context, id int64) error {
	res, err := r.db.NewDelete().Model((*rankingRow)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete ranking entry: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrRankingNotFound
	}
	return nil
}

func (r *RankingRepository) UpdatePlayer(ctx context.Context, id int64, player string) error {
	res, err := r.db.NewUpdate().Model((*rankingRow)(nil)).
		Set("player = ?", player).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("rename player: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrRankingNotFound
	}
	return nil
}
