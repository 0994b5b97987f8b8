package app

import (
	"context"
	"time"

	"bigbang-quiz-service/internal/domain"

	"github.com/google/uuid"
)

// RoundLimit caps how many rounds one session plays, independent of the
// OptionCap-sized pool.
const RoundLimit = 8

// RoundPhase is the per-round state machine position.
type RoundPhase string

const (
	PhaseAwaitingHint RoundPhase = "AGUARDANDO_DICA"
	PhaseGuessing     RoundPhase = "ADIVINHANDO"
	PhasePlacing      RoundPhase = "POSICIONANDO"
	PhaseFinished     RoundPhase = "ENCERRADA"
)

// GameSession is the server-side state of one play-through. It is stored as a
// plain value (JSON in Redis) so every mutation goes through a save.
type GameSession struct {
	ID            string          `json:"id"`
	Level         domain.Level    `json:"nivel"`
	Options       []domain.Option `json:"listaOpcoes"`
	Rounds        []domain.Round  `json:"rodadas"`
	RoundLimit    int             `json:"limiteRodadas"`
	Current       int             `json:"rodadaAtual"`
	Phase         RoundPhase      `json:"fase"`
	HintsRevealed int             `json:"dicasReveladas"`
	Score         int             `json:"pontuacao"`
	CreatedAt     time.Time       `json:"criadoEm"`
}

// Clone returns an independent copy so stores can hand out snapshots.
func (s *GameSession) Clone() *GameSession {
	cp := *s
	cp.Options = append([]domain.Option(nil), s.Options...)
	cp.Rounds = append([]domain.Round(nil), s.Rounds...)
	return &cp
}

func (s *GameSession) currentRound() *domain.Round {
	return &s.Rounds[s.Current]
}

// advance moves to the next round, or finishes the session when the round
// limit or the round list is exhausted.
func (s *GameSession) advance() {
	s.Current++
	s.HintsRevealed = 0
	s.Phase = PhaseAwaitingHint
	if s.Current >= s.RoundLimit {
		s.Phase = PhaseFinished
	}
}

// SessionStore persists game sessions between requests.
type SessionStore interface {
	Save(ctx context.Context, session *GameSession) error
	Get(ctx context.Context, id string) (*GameSession, error)
	Delete(ctx context.Context, id string) error
}

// HintResult is the outcome of one hint request.
type HintResult struct {
	Hint      string `json:"dica"`
	Index     int    `json:"indice"`
	Exhausted bool   `json:"esgotadas"`
}

// PlayResult is the outcome of a guess or placement click.
type PlayResult struct {
	Correct   bool `json:"correta"`
	Awarded   int  `json:"pontos"`
	Score     int  `json:"pontuacao"`
	RoundOver bool `json:"rodadaEncerrada"`
	Finished  bool `json:"sessaoEncerrada"`
}

// GameService drives sessions through the round state machine and submits the
// final score to the ranking.
type GameService struct {
	selector *RoundSelector
	sessions SessionStore
	ranking  *RankingService
	newID    func() string
}

func NewGameService(selector *RoundSelector, sessions SessionStore, ranking *RankingService) *GameService {
	return &GameService{
		selector: selector,
		sessions: sessions,
		ranking:  ranking,
		newID:    uuid.NewString,
	}
}

// Start builds a fresh round set for level and opens a session for it.
func (g *GameService) Start(ctx context.Context, level domain.Level) (*GameSession, error) {
	if !level.Valid() {
		return nil, domain.ErrNoQuestionsForLevel
	}
	options, rounds, err := g.selector.BuildRoundSet(ctx, level)
	if err != nil {
		return nil, err
	}

	limit := RoundLimit
	if len(rounds) < limit {
		limit = len(rounds)
	}
	session := &GameSession{
		ID:         g.newID(),
		Level:      level,
		Options:    options,
		Rounds:     rounds,
		RoundLimit: limit,
		Phase:      PhaseAwaitingHint,
		CreatedAt:  time.Now(),
	}
	if err := g.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Session returns a snapshot of one session's current state.
func (g *GameService) Session(ctx context.Context, id string) (*GameSession, error) {
	return g.sessions.Get(ctx, id)
}

// RevealHint hands out the next hint for the current round. Asking past the
// available hints is a surfaced no-op, not an error, and a round with no
// hints at all still plays: the exhausted reply opens the guessing phase so
// the unassisted guess can proceed.
func (g *GameService) RevealHint(ctx context.Context, sessionID string) (HintResult, error) {
	session, err := g.sessions.Get(ctx, sessionID)
	if err != nil {
		return HintResult{}, err
	}
	if session.Phase == PhaseFinished {
		return HintResult{}, domain.ErrSessionFinished
	}
	if session.Phase == PhasePlacing {
		return HintResult{}, domain.ErrWrongPhase
	}

	hints := session.currentRound().Hints
	if session.HintsRevealed >= len(hints) {
		index := session.HintsRevealed - 1
		if index < 0 {
			index = 0
		}
		if session.Phase == PhaseAwaitingHint {
			session.Phase = PhaseGuessing
			if err := g.sessions.Save(ctx, session); err != nil {
				return HintResult{}, err
			}
		}
		return HintResult{Index: index, Exhausted: true}, nil
	}

	index := session.HintsRevealed
	session.HintsRevealed++
	session.Phase = PhaseGuessing
	if err := g.sessions.Save(ctx, session); err != nil {
		return HintResult{}, err
	}
	return HintResult{Hint: hints[index], Index: index}, nil
}

// GuessElement resolves a multiple-choice click. A correct guess pays the
// tiered hint score and moves the round to placement; a wrong guess forfeits
// the round outright.
func (g *GameService) GuessElement(ctx context.Context, sessionID, name string) (PlayResult, error) {
	session, err := g.sessions.Get(ctx, sessionID)
	if err != nil {
		return PlayResult{}, err
	}
	if session.Phase == PhaseFinished {
		return PlayResult{}, domain.ErrSessionFinished
	}
	if session.Phase != PhaseGuessing {
		return PlayResult{}, domain.ErrWrongPhase
	}

	result := PlayResult{}
	if name == session.currentRound().Name {
		result.Correct = true
		result.Awarded = HintScore(session.HintsRevealed - 1)
		session.Score += result.Awarded
		session.Phase = PhasePlacing
	} else {
		// One wrong click forfeits the round; no retry.
		session.advance()
		result.RoundOver = true
	}
	result.Score = session.Score
	result.Finished = session.Phase == PhaseFinished
	if err := g.sessions.Save(ctx, session); err != nil {
		return PlayResult{}, err
	}
	return result, nil
}

// GuessPosition resolves the periodic-table placement click and always ends
// the round.
func (g *GameService) GuessPosition(ctx context.Context, sessionID, cell string) (PlayResult, error) {
	session, err := g.sessions.Get(ctx, sessionID)
	if err != nil {
		return PlayResult{}, err
	}
	if session.Phase == PhaseFinished {
		return PlayResult{}, domain.ErrSessionFinished
	}
	if session.Phase != PhasePlacing {
		return PlayResult{}, domain.ErrWrongPhase
	}

	bonus := PlacementBonus(session.currentRound().PositionName, cell)
	session.Score += bonus
	session.advance()

	result := PlayResult{
		Correct:   bonus > 0,
		Awarded:   bonus,
		Score:     session.Score,
		RoundOver: true,
		Finished:  session.Phase == PhaseFinished,
	}
	if err := g.sessions.Save(ctx, session); err != nil {
		return PlayResult{}, err
	}
	return result, nil
}

// Finish submits the session's score under the given player name and drops
// the session. Only a session that played out its full round limit can
// submit; walking out mid-session banks nothing, the abandoned session just
// ages out of the store.
func (g *GameService) Finish(ctx context.Context, sessionID, player string) (domain.RankingEntry, error) {
	session, err := g.sessions.Get(ctx, sessionID)
	if err != nil {
		return domain.RankingEntry{}, err
	}
	if session.Phase != PhaseFinished {
		return domain.RankingEntry{}, domain.ErrWrongPhase
	}

	entry := domain.RankingEntry{
		Player:   player,
		Score:    session.Score,
		LevelTag: session.Level.Tag(),
	}
	if err := g.ranking.Submit(ctx, &entry); err != nil {
		return domain.RankingEntry{}, err
	}
	_ = g.sessions.Delete(ctx, sessionID)
	return entry, nil
}
