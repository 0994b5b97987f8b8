package domain

import "time"

// Level identifies one of the three difficulty bands.
type Level int

const (
	LevelCurioso    Level = 1
	LevelExplorador Level = 2
	LevelCientista  Level = 3
)

// Tag returns the wire tag used by ranking entries ("CURIOSO", ...).
func (l Level) Tag() string {
	switch l {
	case LevelCurioso:
		return "CURIOSO"
	case LevelExplorador:
		return "EXPLORADOR"
	case LevelCientista:
		return "CIENTISTA"
	}
	return ""
}

// Valid reports whether l is one of the three known bands.
func (l Level) Valid() bool {
	return l >= LevelCurioso && l <= LevelCientista
}

// ParseLevelTag maps a ranking tag back to its Level, false when unknown.
func ParseLevelTag(tag string) (Level, bool) {
	switch tag {
	case "CURIOSO":
		return LevelCurioso, true
	case "EXPLORADOR":
		return LevelExplorador, true
	case "CIENTISTA":
		return LevelCientista, true
	}
	return 0, false
}

// Question is an authored quiz element. The (Name, Symbol) pair must exist in
// the periodic reference table and carry exactly three hints.
type Question struct {
	ID                int64    `json:"codQuestao"`
	Name              string   `json:"nomeElemento"`
	Symbol            string   `json:"simbolo"`
	Level             Level    `json:"nivel"`
	ImagePath         string   `json:"imagem,omitempty"`
	DistributionImage string   `json:"distribuicaoEletronica,omitempty"`
	Hints             []string `json:"dicas"`
}

// Option is the multiple-choice entry shown for one round. Derived per game,
// never persisted.
type Option struct {
	Name              string `json:"nome"`
	Symbol            string `json:"simbolo"`
	ImagePath         string `json:"imagem"`
	DistributionImage string `json:"distribuicaoEletronica,omitempty"`
}

// Round is one guess-then-place cycle. PositionName equals Name in the
// current design; the grid cells are keyed by element name.
type Round struct {
	Name         string   `json:"nomeElemento"`
	PositionName string   `json:"posicaoElemento"`
	Hints        []string `json:"dicas"`
}

// RankingEntry is one submitted final score. The player name is free text
// with no account binding.
type RankingEntry struct {
	ID        int64     `json:"codRanking"`
	Player    string    `json:"usuario"`
	Score     int       `json:"pontuacao"`
	LevelTag  string    `json:"nivel"`
	CreatedAt time.Time `json:"criadoEm"`
}

// LevelBoard is the grouped leaderboard view: one sorted partition per level
// tag, scores descending.
type LevelBoard map[string][]RankingEntry

// Administrator is a panel account. PasswordHash is never serialized.
type Administrator struct {
	ID              int64  `json:"codAdministrador"`
	Name            string `json:"nome"`
	Email           string `json:"email"`
	PasswordHash    string `json:"-"`
	SuperAdmin      bool   `json:"superAdmin"`
	CanDeleteQuiz   bool   `json:"excluiQuiz"`
	CanDeleteScores bool   `json:"excluiRanking"`
	CanManageAdmins bool   `json:"gerenciaAdministradores"`
}

// Permissions is the mutable permission subset of an Administrator. Nil
// fields mean "no change".
type Permissions struct {
	CanDeleteQuiz   *bool
	CanDeleteScores *bool
	CanManageAdmins *bool
}
