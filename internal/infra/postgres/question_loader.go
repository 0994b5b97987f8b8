package postgres

import (
	"context"
	"fmt"

	"bigbang-quiz-service/internal/domain"

	"github.com/jackc/pgx/v4/pgxpool"
)

// QuestionLoader is the lean game-side read path: raw SQL over a pgx pool,
// bypassing the ORM the authoring repositories use.
type QuestionLoader struct {
	pool *pgxpool.Pool
}

func NewQuestionLoader(pool *pgxpool.Pool) *QuestionLoader {
	return &QuestionLoader{pool: pool}
}

func (l *QuestionLoader) QuestionsByLevel(ctx context.Context, level domain.Level) ([]domain.Question, error) {
	rows, err := l.pool.Query(ctx, `
		SELECT id, name, symbol, level, image_path, distribution_image
		FROM questions
		WHERE level = $1
		ORDER BY id`, int(level))
	if err != nil {
		return nil, fmt.Errorf("load level pool: %w", err)
	}
	defer rows.Close()

	var questions []domain.Question
	index := make(map[int64]int)
	for rows.Next() {
		var q domain.Question
		var lvl int
		if err := rows.Scan(&q.ID, &q.Name, &q.Symbol, &lvl, &q.ImagePath, &q.DistributionImage); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		q.Level = domain.Level(lvl)
		index[q.ID] = len(questions)
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}
	if len(questions) == 0 {
		return []domain.Question{}, nil
	}

	hintRows, err := l.pool.Query(ctx, `
		SELECT h.question_id, h.text
		FROM question_hints h
		JOIN questions q ON q.id = h.question_id
		WHERE q.level = $1
		ORDER BY h.question_id, h.position`, int(level))
	if err != nil {
		return nil, fmt.Errorf("load hints: %w", err)
	}
	defer hintRows.Close()

	for hintRows.Next() {
		var questionID int64
		var text string
		if err := hintRows.Scan(&questionID, &text); err != nil {
			return nil, fmt.Errorf("scan hint: %w", err)
		}
		if i, ok := index[questionID]; ok {
			questions[i].Hints = append(questions[i].Hints, text)
		}
	}
	if err := hintRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate hints: %w", err)
	}
	return questions, nil
}
