package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"bigbang-quiz-service/internal/app"
	"bigbang-quiz-service/internal/domain"
	"bigbang-quiz-service/internal/periodic"

	"github.com/uptrace/bun"
)

// QuestionRepository is the bun-backed question store. Hints live in a child
// table and are replaced wholesale inside a transaction on every update.
type QuestionRepository struct {
	db *bun.DB
}

func NewQuestionRepository(db *bun.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

func (r *QuestionRepository) QuestionsByLevel(ctx context.Context, level domain.Level) ([]domain.Question, error) {
	var rows []questionRow
	err := r.db.NewSelect().Model(&rows).
		Where("q.level = ?", int(level)).
		Order("q.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	return r.attachHints(ctx, rows)
}

func (r *QuestionRepository) ByID(ctx context.Context, id int64) (domain.Question, error) {
	row := questionRow{}
	err := r.db.NewSelect().Model(&row).Where("q.id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Question{}, domain.ErrQuestionNotFound
	}
	if err != nil {
		return domain.Question{}, fmt.Errorf("load question: %w", err)
	}
	questions, err := r.attachHints(ctx, []questionRow{row})
	if err != nil {
		return domain.Question{}, err
	}
	return questions[0], nil
}

// List runs the count and the page fetch in one transaction so the page math
// stays consistent with the total.
func (r *QuestionRepository) List(ctx context.Context, filter app.ListFilter) ([]domain.Question, int, error) {
	var rows []questionRow
	var total int

	err := r.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		count := tx.NewSelect().Model((*questionRow)(nil))
		page := tx.NewSelect().Model(&rows)
		for _, q := range []*bun.SelectQuery{count, page} {
			if filter.Level != 0 {
				q.Where("q.level = ?", int(filter.Level))
			}
			if filter.Search != "" {
				q.Where("q.name_key LIKE ?", "%"+periodic.FoldKey(filter.Search)+"%")
			}
		}

		var err error
		total, err = count.Count(ctx)
		if err != nil {
			return fmt.Errorf("count questions: %w", err)
		}
		err = page.Order("q.id ASC").
			Limit(filter.Size).
			Offset((filter.Page - 1) * filter.Size).
			Scan(ctx)
		if err != nil {
			return fmt.Errorf("list questions: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	questions, err := r.attachHints(ctx, rows)
	if err != nil {
		return nil, 0, err
	}
	return questions, total, nil
}

func (r *QuestionRepository) Create(ctx context.Context, q *domain.Question) error {
	return r.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		row := rowFrom(q)
		if _, err := tx.NewInsert().Model(&row).Exec(ctx); err != nil {
			return fmt.Errorf("insert question: %w", err)
		}
		q.ID = row.ID
		return insertHints(ctx, tx, row.ID, q.Hints)
	})
}

func (r *QuestionRepository) Update(ctx context.Context, q *domain.Question) error {
	return r.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		row := rowFrom(q)
		res, err := tx.NewUpdate().Model(&row).WherePK().Exec(ctx)
		if err != nil {
			return fmt.Errorf("update question: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return domain.ErrQuestionNotFound
		}
		// Hint replacement is all-or-nothing: drop and recreate.
		if _, err := tx.NewDelete().Model((*hintRow)(nil)).Where("question_id = ?", q.ID).Exec(ctx); err != nil {
			return fmt.Errorf("clear hints: %w", err)
		}
		return insertHints(ctx, tx, q.ID, q.Hints)
	})
}

func (r *QuestionRepository) Delete(ctx context.Context, id int64) error {
	return r.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*hintRow)(nil)).Where("question_id = ?", id).Exec(ctx); err != nil {
			return fmt.Errorf("delete hints: %w", err)
		}
		res, err := tx.NewDelete().Model((*questionRow)(nil)).Where("id = ?", id).Exec(ctx)
		if err != nil {
			return fmt.Errorf("delete question: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return domain.ErrQuestionNotFound
		}
		return nil
	})
}

func (r *QuestionRepository) NameOrSymbolTaken(ctx context.Context, nameKey, symbolKey string, excludeID int64) (bool, error) {
	q := r.db.NewSelect().Model((*questionRow)(nil))
	if symbolKey != "" {
		q.Where("q.name_key = ? OR q.symbol_key = ?", nameKey, symbolKey)
	} else {
		q.Where("q.name_key = ?", nameKey)
	}
	if excludeID != 0 {
		q.Where("q.id != ?", excludeID)
	}
	count, err := q.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("check uniqueness: %w", err)
	}
	return count > 0, nil
}

func (r *QuestionRepository) attachHints(ctx context.Context, rows []questionRow) ([]domain.Question, error) {
	if len(rows) == 0 {
		return []domain.Question{}, nil
	}
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	var hints []hintRow
	err := r.db.NewSelect().Model(&hints).
		Where("h.question_id IN (?)", bun.In(ids)).
		Order("h.question_id ASC", "h.position ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("load hints: %w", err)
	}

	byQuestion := make(map[int64][]string, len(rows))
	for _, h := range hints {
		byQuestion[h.QuestionID] = append(byQuestion[h.QuestionID], h.Text)
	}

	out := make([]domain.Question, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain(byQuestion[row.ID]))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func insertHints(ctx context.Context, tx bun.Tx, questionID int64, hints []string) error {
	rows := make([]hintRow, 0, len(hints))
	for i, text := range hints {
		rows = append(rows, hintRow{QuestionID: questionID, Position: i, Text: text})
	}
	if len(rows) == 0 {
		return nil
	}
	if _, err := tx.NewInsert().Model(&rows).Exec(ctx); err != nil {
		return fmt.Errorf("insert hints: %w", err)
	}
	return nil
}

func rowFrom(q *domain.Question) questionRow {
	return questionRow{
		ID:                q.ID,
		Name:              strings.TrimSpace(q.Name),
		NameKey:           periodic.FoldKey(q.Name),
		Symbol:            strings.TrimSpace(q.Symbol),
		SymbolKey:         periodic.FoldKey(q.Symbol),
		Level:             int(q.Level),
		ImagePath:         q.ImagePath,
		DistributionImage: q.DistributionImage,
	}
}
