package app

import (
	"context"
	"strings"
	"sync"

	"bigbang-quiz-service/internal/auth"
	"bigbang-quiz-service/internal/domain"
)

// BoardSize is how many entries each level partition shows.
const BoardSize = 10

// RankingRepository is the append-mostly score table.
type RankingRepository interface {
	Insert(ctx context.Context, entry *domain.RankingEntry) error
	AllByScoreDesc(ctx context.Context) ([]domain.RankingEntry, error)
	DeleteByID(ctx context.Context, id int64) error
	UpdatePlayer(ctx context.Context, id int64, player string) error
}

// RankingService validates submissions, serves the grouped leaderboard and
// fans board updates out to websocket subscribers.
type RankingService struct {
	repo RankingRepository

	mu          sync.Mutex
	subscribers map[chan domain.LevelBoard]struct{}
}

func NewRankingService(repo RankingRepository) *RankingService {
	return &RankingService{
		repo:        repo,
		subscribers: make(map[chan domain.LevelBoard]struct{}),
	}
}

// Submit stores one final score. The player name is free text but required;
// the level tag must be one of the three bands.
func (r *RankingService) Submit(ctx context.Context, entry *domain.RankingEntry) error {
	entry.Player = strings.TrimSpace(entry.Player)
	if entry.Player == "" {
		return domain.ErrMissingPlayer
	}
	if _, ok := domain.ParseLevelTag(entry.LevelTag); !ok {
		return domain.ErrUnknownLevelTag
	}
	if err := r.repo.Insert(ctx, entry); err != nil {
		return err
	}
	r.broadcast(ctx)
	return nil
}

// Top returns every stored entry ordered by descending score. No cap; the
// presentation truncates.
func (r *RankingService) Top(ctx context.Context) ([]domain.RankingEntry, error) {
	return r.repo.AllByScoreDesc(ctx)
}

// GroupByLevel partitions entries by level tag. Input order is preserved
// inside each partition, so passing an already score-sorted list yields
// score-sorted partitions with stable tie order.
func GroupByLevel(entries []domain.RankingEntry) domain.LevelBoard {
	board := make(domain.LevelBoard)
	for _, e := range entries {
		board[e.LevelTag] = append(board[e.LevelTag], e)
	}
	return board
}

// TopBoard is the display contract: grouped by level, sorted descending,
// truncated to perLevel entries per partition.
func (r *RankingService) TopBoard(ctx context.Context, perLevel int) (domain.LevelBoard, error) {
	entries, err := r.repo.AllByScoreDesc(ctx)
	if err != nil {
		return nil, err
	}
	board := GroupByLevel(entries)
	for tag, partition := range board {
		if len(partition) > perLevel {
			board[tag] = partition[:perLevel]
		}
	}
	return board, nil
}

// Delete removes one entry; only administrators allowed to delete ranking
// entries may call it.
func (r *RankingService) Delete(ctx context.Context, actor auth.Context, id int64) error {
	if !actor.SuperAdmin && !actor.CanDeleteScores {
		return domain.ErrPermissionDenied
	}
	if err := r.repo.DeleteByID(ctx, id); err != nil {
		return err
	}
	r.broadcast(ctx)
	return nil
}

// RenamePlayer is the manual name edit; any authenticated administrator may
// fix a player's display name.
func (r *RankingService) RenamePlayer(ctx context.Context, actor auth.Context, id int64, player string) error {
	player = strings.TrimSpace(player)
	if player == "" {
		return domain.ErrMissingPlayer
	}
	if err := r.repo.UpdatePlayer(ctx, id, player); err != nil {
		return err
	}
	r.broadcast(ctx)
	return nil
}

// Subscribe returns a channel fed with board snapshots after every mutation.
// The caller must invoke the returned cancel function to avoid leaks.
func (r *RankingService) Subscribe(ctx context.Context) (<-chan domain.LevelBoard, func(), error) {
	initial, err := r.TopBoard(ctx, BoardSize)
	if err != nil {
		return nil, nil, err
	}

	ch := make(chan domain.LevelBoard, 8)
	r.mu.Lock()
	r.subscribers[ch] = struct{}{}
	r.mu.Unlock()

	ch <- initial

	cancel := func() {
		r.mu.Lock()
		if _, ok := r.subscribers[ch]; ok {
			delete(r.subscribers, ch)
			close(ch)
		}
		r.mu.Unlock()
	}
	return ch, cancel, nil
}

// broadcast pushes the current board to all subscribers, replacing a stale
// pending snapshot rather than blocking on slow readers.
func (r *RankingService) broadcast(ctx context.Context) {
	r.mu.Lock()
	empty := len(r.subscribers) == 0
	r.mu.Unlock()
	if empty {
		return
	}

	board, err := r.TopBoard(ctx, BoardSize)
	if err != nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for ch := range r.subscribers {
		select {
		case ch <- board:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- board
		}
	}
}
