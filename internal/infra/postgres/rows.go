package postgres

import (
	"time"

	"bigbang-quiz-service/internal/domain"

	"github.com/uptrace/bun"
)

type questionRow struct {
	bun.BaseModel `bun:"table:questions,alias:q"`

	ID                int64  `bun:"id,pk,autoincrement"`
	Name              string `bun:"name,notnull"`
	NameKey           string `bun:"name_key,notnull"`
	Symbol            string `bun:"symbol,notnull,default:''"`
	SymbolKey         string `bun:"symbol_key,notnull,default:''"`
	Level             int    `bun:"level,notnull"`
	ImagePath         string `bun:"image_path,notnull,default:''"`
	DistributionImage string `bun:"distribution_image,notnull,default:''"`
}

type hintRow struct {
	bun.BaseModel `bun:"table:question_hints,alias:h"`

	ID         int64  `bun:"id,pk,autoincrement"`
	QuestionID int64  `bun:"question_id,notnull"`
	Position   int    `bun:"position,notnull"`
	Text       string `bun:"text,notnull"`
}

type rankingRow struct {
	bun.BaseModel `bun:"table:ranking_entries,alias:r"`

	ID        int64     `bun:"id,pk,autoincrement"`
	Player    string    `bun:"player,notnull"`
	Score     int       `bun:"score,notnull"`
	LevelTag  string    `bun:"level_tag,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

type adminRow struct {
	bun.BaseModel `bun:"table:administrators,alias:a"`

	ID              int64  `bun:"id,pk,autoincrement"`
	Name            string `bun:"name,notnull"`
	Email           string `bun:"email,notnull,unique"`
	PasswordHash    string `bun:"password_hash,notnull"`
	SuperAdmin      bool   `bun:"super_admin,notnull,default:false"`
	CanDeleteQuiz   bool   `bun:"can_delete_quiz,notnull,default:false"`
	CanDeleteScores bool   `bun:"can_delete_scores,notnull,default:false"`
	CanManageAdmins bool   `bun:"can_manage_admins,notnull,default:false"`
}

func (r questionRow) toDomain(hints []string) domain.Question {
	return domain.Question{
		ID:                r.ID,
		Name:              r.Name,
		Symbol:            r.Symbol,
		Level:             domain.Level(r.Level),
		ImagePath:         r.ImagePath,
		DistributionImage: r.DistributionImage,
		Hints:             hints,
	}
}

func (r rankingRow) toDomain() domain.RankingEntry {
	return domain.RankingEntry{
		ID:        r.ID,
		Player:    r.Player,
		Score:     r.Score,
		LevelTag:  r.LevelTag,
		CreatedAt: r.CreatedAt,
	}
}

func (r adminRow) toDomain() domain.Administrator {
	return domain.Administrator{
		ID:              r.ID,
		Name:            r.Name,
		Email:           r.Email,
		PasswordHash:    r.PasswordHash,
		SuperAdmin:      r.SuperAdmin,
		CanDeleteQuiz:   r.CanDeleteQuiz,
		CanDeleteScores: r.CanDeleteScores,
		CanManageAdmins: r.CanManageAdmins,
	}
}

func adminRowFrom(a domain.Administrator) adminRow {
	return adminRow{
		ID:              a.ID,
		Name:            a.Name,
		Email:           a.Email,
		PasswordHash:    a.PasswordHash,
		SuperAdmin:      a.SuperAdmin,
		CanDeleteQuiz:   a.CanDeleteQuiz,
		CanDeleteScores: a.CanDeleteScores,
		CanManageAdmins: a.CanManageAdmins,
	}
}
