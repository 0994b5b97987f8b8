package memory

import (
	"context"
	"testing"
	"time"

	"bigbang-quiz-service/internal/domain"
)

type countingLoader struct {
	pool  []domain.Question
	calls int
}

func (l *countingLoader) QuestionsByLevel(_ context.Context, _ domain.Level) ([]domain.Question, error) {
	l.calls++
	return l.pool, nil
}

func TestQuestionCacheAvoidsRepeatLoads(t *testing.T) {
	loader := &countingLoader{pool: []domain.Question{{ID: 1, Name: "Ferro", Level: domain.LevelCurioso}}}
	cache := NewQuestionCache(loader, time.Minute)
	ctx := context.Background()

	if _, err := cache.QuestionsByLevel(ctx, domain.LevelCurioso); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := cache.QuestionsByLevel(ctx, domain.LevelCurioso); err != nil {
		t.Fatalf("cached load: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected one loader call, got %d", loader.calls)
	}
}

func TestQuestionCacheInvalidateForcesReload(t *testing.T) {
	loader := &countingLoader{pool: []domain.Question{{ID: 1, Name: "Ferro", Level: domain.LevelCurioso}}}
	cache := NewQuestionCache(loader, time.Minute)
	ctx := context.Background()

	_, _ = cache.QuestionsByLevel(ctx, domain.LevelCurioso)
	cache.Invalidate(ctx, domain.LevelCurioso)
	_, _ = cache.QuestionsByLevel(ctx, domain.LevelCurioso)

	if loader.calls != 2 {
		t.Fatalf("expected reload after invalidate, got %d calls", loader.calls)
	}
}
