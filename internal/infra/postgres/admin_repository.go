package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"bigbang-quiz-service/internal/domain"

	"github.com/uptrace/bun"
)

// AdminRepository is the bun-backed administrator table.
type AdminRepository struct {
	db *bun.DB
}

func NewAdminRepository(db *bun.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) ByID(ctx context.Context, id int64) (domain.Administrator, error) {
	row := adminRow{}
	err := r.db.NewSelect().Model(&row).Where("a.id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Administrator{}, domain.ErrAdminNotFound
	}
	if err != nil {
		return domain.Administrator{}, fmt.Errorf("load administrator: %w", err)
	}
	return row.toDomain(), nil
}

func (r *AdminRepository) ByEmail(ctx context.Context, email string) (domain.Administrator, error) {
	row := adminRow{}
	err := r.db.NewSelect().Model(&row).Where("lower(a.email) = ?", strings.ToLower(email)).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Administrator{}, domain.ErrAdminNotFound
	}
	if err != nil {
		return domain.Administrator{}, fmt.Errorf("load administrator: %w", err)
	}
	return row.toDomain(), nil
}

func (r *AdminRepository) List(ctx context.Context) ([]domain.Administrator, error) {
	var rows []adminRow
	if err := r.db.NewSelect().Model(&rows).Order("a.id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("list administrators: %w", err)
	}
	out := make([]domain.Administrator, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *AdminRepository) Create(ctx context.Context, admin *domain.Administrator) error {
	row := adminRowFrom(*admin)
	row.ID = 0
	if _, err := r.db.NewInsert().Model(&row).Exec(ctx); err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("insert administrator: %w", err)
	}
	admin.ID = row.ID
	return nil
}

func (r *AdminRepository) Update(ctx context.Context, admin *domain.Administrator) error {
	row := adminRowFrom(*admin)
	res, err := r.db.NewUpdate().Model(&row).WherePK().Exec(ctx)
	if err != nil {
		return fmt.Errorf("update administrator: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrAdminNotFound
	}
	return nil
}

func (r *AdminRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.NewDelete().Model((*adminRow)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete administrator: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrAdminNotFound
	}
	return nil
}
