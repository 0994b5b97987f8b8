package app_test

import (
	"context"
	"errors"
	"testing"

	"bigbang-quiz-service/internal/app"
	"bigbang-quiz-service/internal/auth"
	"bigbang-quiz-service/internal/domain"
	"bigbang-quiz-service/internal/infra/memory"
)

func seedRanking(t *testing.T, service *app.RankingService, entries ...domain.RankingEntry) {
	t.Helper()
	for i := range entries {
		if err := service.Submit(context.Background(), &entries[i]); err != nil {
			t.Fatalf("submit %+v: %v", entries[i], err)
		}
	}
}

func TestSubmitAndReadBackGrouped(t *testing.T) {
	service := app.NewRankingService(memory.NewRankingRepository())
	seedRanking(t, service,
		domain.RankingEntry{Player: "Bia", Score: 12, LevelTag: "CURIOSO"},
		domain.RankingEntry{Player: "Ana", Score: 37, LevelTag: "CURIOSO"},
		domain.RankingEntry{Player: "Rui", Score: 20, LevelTag: "CIENTISTA"},
	)

	board, err := service.TopBoard(context.Background(), app.BoardSize)
	if err != nil {
		t.Fatalf("board: %v", err)
	}
	curioso := board["CURIOSO"]
	if len(curioso) != 2 || curioso[0].Player != "Ana" || curioso[1].Player != "Bia" {
		t.Fatalf("expected Ana leading CURIOSO, got %+v", curioso)
	}
	if len(board["CIENTISTA"]) != 1 {
		t.Fatalf("expected one CIENTISTA entry, got %+v", board["CIENTISTA"])
	}
	for _, partition := range board {
		for i := 1; i < len(partition); i++ {
			if partition[i].Score > partition[i-1].Score {
				t.Fatalf("partition not sorted descending: %+v", partition)
			}
		}
	}
}

func TestTopBoardTruncatesEachPartition(t *testing.T) {
	service := app.NewRankingService(memory.NewRankingRepository())
	for i := 0; i < 14; i++ {
		seedRanking(t, service, domain.RankingEntry{Player: "Jog", Score: i, LevelTag: "EXPLORADOR"})
	}

	board, err := service.TopBoard(context.Background(), app.BoardSize)
	if err != nil {
		t.Fatalf("board: %v", err)
	}
	if len(board["EXPLORADOR"]) != app.BoardSize {
		t.Fatalf("expected partition capped at %d, got %d", app.BoardSize, len(board["EXPLORADOR"]))
	}
	if board["EXPLORADOR"][0].Score != 13 {
		t.Fatalf("expected highest score first, got %+v", board["EXPLORADOR"][0])
	}
}

func TestSubmitValidation(t *testing.T) {
	service := app.NewRankingService(memory.NewRankingRepository())

	err := service.Submit(context.Background(), &domain.RankingEntry{Player: "Ana", Score: 1, LevelTag: "MESTRE"})
	if !errors.Is(err, domain.ErrUnknownLevelTag) {
		t.Fatalf("expected ErrUnknownLevelTag, got %v", err)
	}
	err = service.Submit(context.Background(), &domain.RankingEntry{Player: "  ", Score: 1, LevelTag: "CURIOSO"})
	if !errors.Is(err, domain.ErrMissingPlayer) {
		t.Fatalf("expected ErrMissingPlayer, got %v", err)
	}
}

func TestDeleteRequiresPermission(t *testing.T) {
	service := app.NewRankingService(memory.NewRankingRepository())
	seedRanking(t, service, domain.RankingEntry{Player: "Ana", Score: 5, LevelTag: "CURIOSO"})

	err := service.Delete(context.Background(), auth.Context{AdminID: 1}, 1)
	if !errors.Is(err, domain.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}

	err = service.Delete(context.Background(), auth.Context{AdminID: 1, CanDeleteScores: true}, 1)
	if err != nil {
		t.Fatalf("permitted delete failed: %v", err)
	}

	err = service.Delete(context.Background(), auth.Context{AdminID: 1, SuperAdmin: true}, 1)
	if !errors.Is(err, domain.ErrRankingNotFound) {
		t.Fatalf("expected ErrRankingNotFound after delete, got %v", err)
	}
}

func TestSubscribeReceivesBoardUpdates(t *testing.T) {
	service := app.NewRankingService(memory.NewRankingRepository())
	ctx := context.Background()

	ch, cancel, err := service.Subscribe(ctx)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer cancel()

	<-ch // initial snapshot

	seedRanking(t, service, domain.RankingEntry{Player: "Ana", Score: 9, LevelTag: "CURIOSO"})

	update := <-ch
	if len(update["CURIOSO"]) != 1 || update["CURIOSO"][0].Player != "Ana" {
		t.Fatalf("expected Ana in the pushed board, got %+v", update)
	}
}

func TestRenamePlayer(t *testing.T) {
	service := app.NewRankingService(memory.NewRankingRepository())
	seedRanking(t, service, domain.RankingEntry{Player: "Anna", Score: 5, LevelTag: "CURIOSO"})

	if err := service.RenamePlayer(context.Background(), auth.Context{AdminID: 1}, 1, "Ana"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	entries, _ := service.Top(context.Background())
	if entries[0].Player != "Ana" {
		t.Fatalf("expected renamed player, got %+v", entries[0])
	}
}
