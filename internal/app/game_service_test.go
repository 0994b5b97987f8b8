package app_test

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"bigbang-quiz-service/internal/app"
	"bigbang-quiz-service/internal/domain"
	"bigbang-quiz-service/internal/infra/memory"
)

func newGameFixture(t *testing.T, questions []domain.Question) (*app.GameService, *memory.RankingRepository) {
	t.Helper()
	repo := memory.NewQuestionRepository()
	repo.Seed(questions)
	selector := app.NewRoundSelector(repo, rand.New(rand.NewSource(1)))
	ranking := memory.NewRankingRepository()
	service := app.NewGameService(selector, memory.NewSessionStore(), app.NewRankingService(ranking))
	return service, ranking
}

func levelOnePool(n int) []domain.Question {
	pool := make([]domain.Question, 0, n)
	for i := 0; i < n; i++ {
		pool = append(pool, domain.Question{
			Name:   fmt.Sprintf("Elemento%d", i+1),
			Symbol: fmt.Sprintf("E%d", i+1),
			Level:  domain.LevelCurioso,
			Hints:  []string{"dica um", "dica dois", "dica tres"},
		})
	}
	return pool
}

func TestStartOpensSessionWithRoundCap(t *testing.T) {
	service, _ := newGameFixture(t, levelOnePool(15))
	ctx := context.Background()

	session, err := service.Start(ctx, domain.LevelCurioso)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if len(session.Options) != 12 || len(session.Rounds) != 12 {
		t.Fatalf("expected 12 options/rounds, got %d/%d", len(session.Options), len(session.Rounds))
	}
	if session.RoundLimit != app.RoundLimit {
		t.Fatalf("expected round limit %d, got %d", app.RoundLimit, session.RoundLimit)
	}
	if session.Phase != app.PhaseAwaitingHint {
		t.Fatalf("fresh session should await a hint, got %s", session.Phase)
	}
}

func TestStartWithSmallPoolLimitsRounds(t *testing.T) {
	service, _ := newGameFixture(t, levelOnePool(3))

	session, err := service.Start(context.Background(), domain.LevelCurioso)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if session.RoundLimit != 3 {
		t.Fatalf("expected round limit 3 for a 3-question pool, got %d", session.RoundLimit)
	}
}

func TestFullRoundCorrectGuessAndPlacement(t *testing.T) {
	service, _ := newGameFixture(t, levelOnePool(8))
	ctx := context.Background()

	session, err := service.Start(ctx, domain.LevelCurioso)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	target := session.Rounds[0]

	hint, err := service.RevealHint(ctx, session.ID)
	if err != nil {
		t.Fatalf("hint: %v", err)
	}
	if hint.Hint != "dica um" || hint.Index != 0 {
		t.Fatalf("unexpected first hint %+v", hint)
	}

	guess, err := service.GuessElement(ctx, session.ID, target.Name)
	if err != nil {
		t.Fatalf("guess: %v", err)
	}
	if !guess.Correct || guess.Awarded != 5 || guess.Score != 5 {
		t.Fatalf("first-hint correct guess should pay 5, got %+v", guess)
	}

	place, err := service.GuessPosition(ctx, session.ID, target.PositionName)
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if !place.Correct || place.Awarded != 5 || place.Score != 10 {
		t.Fatalf("correct placement should pay 5 more, got %+v", place)
	}
	if !place.RoundOver {
		t.Fatalf("placement always ends the round")
	}
}

func TestLateHintsLowerTheScore(t *testing.T) {
	service, _ := newGameFixture(t, levelOnePool(8))
	ctx := context.Background()

	session, _ := service.Start(ctx, domain.LevelCurioso)
	target := session.Rounds[0]

	for i := 0; i < 3; i++ {
		if _, err := service.RevealHint(ctx, session.ID); err != nil {
			t.Fatalf("hint %d: %v", i, err)
		}
	}
	// A fourth request is a surfaced no-op.
	extra, err := service.RevealHint(ctx, session.ID)
	if err != nil {
		t.Fatalf("extra hint: %v", err)
	}
	if !extra.Exhausted {
		t.Fatalf("expected exhausted hint result, got %+v", extra)
	}

	guess, err := service.GuessElement(ctx, session.ID, target.Name)
	if err != nil {
		t.Fatalf("guess: %v", err)
	}
	if guess.Awarded != 1 {
		t.Fatalf("third-hint guess should pay 1, got %d", guess.Awarded)
	}
}

func TestWrongGuessForfeitsRound(t *testing.T) {
	service, _ := newGameFixture(t, levelOnePool(8))
	ctx := context.Background()

	session, _ := service.Start(ctx, domain.LevelCurioso)

	if _, err := service.RevealHint(ctx, session.ID); err != nil {
		t.Fatalf("hint: %v", err)
	}
	result, err := service.GuessElement(ctx, session.ID, "Kriptonita")
	if err != nil {
		t.Fatalf("guess: %v", err)
	}
	if result.Correct || result.Awarded != 0 || !result.RoundOver {
		t.Fatalf("wrong guess should end the round with 0 points, got %+v", result)
	}

	// Placement is not reachable after a forfeited round.
	if _, err := service.GuessPosition(ctx, session.ID, "Ferro"); !errors.Is(err, domain.ErrWrongPhase) {
		t.Fatalf("expected ErrWrongPhase, got %v", err)
	}
}

func TestGuessBeforeHintIsRejected(t *testing.T) {
	service, _ := newGameFixture(t, levelOnePool(8))
	ctx := context.Background()

	session, _ := service.Start(ctx, domain.LevelCurioso)
	if _, err := service.GuessElement(ctx, session.ID, session.Rounds[0].Name); !errors.Is(err, domain.ErrWrongPhase) {
		t.Fatalf("expected ErrWrongPhase, got %v", err)
	}
}

func TestSessionFinishesAtRoundLimit(t *testing.T) {
	service, _ := newGameFixture(t, levelOnePool(8))
	ctx := context.Background()

	session, _ := service.Start(ctx, domain.LevelCurioso)

	var last app.PlayResult
	for i := 0; i < session.RoundLimit; i++ {
		if _, err := service.RevealHint(ctx, session.ID); err != nil {
			t.Fatalf("round %d hint: %v", i, err)
		}
		var err error
		last, err = service.GuessElement(ctx, session.ID, "errado")
		if err != nil {
			t.Fatalf("round %d guess: %v", i, err)
		}
	}
	if !last.Finished {
		t.Fatalf("expected session to finish after %d rounds", session.RoundLimit)
	}

	if _, err := service.RevealHint(ctx, session.ID); !errors.Is(err, domain.ErrSessionFinished) {
		t.Fatalf("expected ErrSessionFinished, got %v", err)
	}
}

func TestHintlessRoundPlaysThrough(t *testing.T) {
	pool := []domain.Question{{
		Name:   "Elemento1",
		Symbol: "E1",
		Level:  domain.LevelCurioso,
	}}
	service, _ := newGameFixture(t, pool)
	ctx := context.Background()

	session, err := service.Start(ctx, domain.LevelCurioso)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	target := session.Rounds[0]

	hint, err := service.RevealHint(ctx, session.ID)
	if err != nil {
		t.Fatalf("hint: %v", err)
	}
	if !hint.Exhausted || hint.Hint != "" || hint.Index != 0 {
		t.Fatalf("expected an exhausted result for a hintless round, got %+v", hint)
	}

	guess, err := service.GuessElement(ctx, session.ID, target.Name)
	if err != nil {
		t.Fatalf("guess: %v", err)
	}
	if !guess.Correct || guess.Awarded != 5 {
		t.Fatalf("unassisted correct guess should pay the top tier, got %+v", guess)
	}

	place, err := service.GuessPosition(ctx, session.ID, target.PositionName)
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if place.Score != 10 || !place.Finished {
		t.Fatalf("expected the one-round session to close at 10, got %+v", place)
	}
}

func TestFinishRejectsMidSessionExit(t *testing.T) {
	service, ranking := newGameFixture(t, levelOnePool(8))
	ctx := context.Background()

	session, _ := service.Start(ctx, domain.LevelCurioso)
	target := session.Rounds[0]

	_, _ = service.RevealHint(ctx, session.ID)
	_, _ = service.GuessElement(ctx, session.ID, target.Name)
	_, _ = service.GuessPosition(ctx, session.ID, target.PositionName)

	if _, err := service.Finish(ctx, session.ID, "Ana"); !errors.Is(err, domain.ErrWrongPhase) {
		t.Fatalf("expected ErrWrongPhase finishing mid-session, got %v", err)
	}

	// Nothing banked, and the session survives to keep playing.
	stored, err := ranking.AllByScoreDesc(ctx)
	if err != nil {
		t.Fatalf("read ranking: %v", err)
	}
	if len(stored) != 0 {
		t.Fatalf("mid-session exit must not submit a score, got %+v", stored)
	}
	if _, err := service.RevealHint(ctx, session.ID); err != nil {
		t.Fatalf("session should still be playable, got %v", err)
	}
}

func TestFinishSubmitsScoreAndDropsSession(t *testing.T) {
	service, ranking := newGameFixture(t, levelOnePool(1))
	ctx := context.Background()

	session, _ := service.Start(ctx, domain.LevelCurioso)
	target := session.Rounds[0]

	_, _ = service.RevealHint(ctx, session.ID)
	_, _ = service.GuessElement(ctx, session.ID, target.Name)
	_, _ = service.GuessPosition(ctx, session.ID, target.PositionName)

	entry, err := service.Finish(ctx, session.ID, "Ana")
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	if entry.Player != "Ana" || entry.Score != 10 || entry.LevelTag != "CURIOSO" {
		t.Fatalf("unexpected entry %+v", entry)
	}

	stored, err := ranking.AllByScoreDesc(ctx)
	if err != nil {
		t.Fatalf("read ranking: %v", err)
	}
	if len(stored) != 1 || stored[0].Player != "Ana" {
		t.Fatalf("expected one stored entry for Ana, got %+v", stored)
	}

	if _, err := service.RevealHint(ctx, session.ID); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected session to be gone, got %v", err)
	}
}
