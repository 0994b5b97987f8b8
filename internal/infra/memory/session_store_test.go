package memory

import (
	"context"
	"errors"
	"testing"

	"bigbang-quiz-service/internal/app"
	"bigbang-quiz-service/internal/domain"
)

func TestSessionStoreHandsOutCopies(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	session := &app.GameSession{ID: "s-1", Score: 3}
	if err := store.Save(ctx, session); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Get(ctx, "s-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	got.Score = 99

	again, _ := store.Get(ctx, "s-1")
	if again.Score != 3 {
		t.Fatalf("mutating a snapshot must not touch the stored session, got %d", again.Score)
	}
}

func TestSessionStoreMissingAndDelete(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	if _, err := store.Get(ctx, "nope"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}

	_ = store.Save(ctx, &app.GameSession{ID: "s-2"})
	_ = store.Delete(ctx, "s-2")
	if _, err := store.Get(ctx, "s-2"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected deleted session to be gone, got %v", err)
	}
}
