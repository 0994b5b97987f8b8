package app

import (
	"context"
	"math/rand"
	"sync"

	"bigbang-quiz-service/internal/domain"
	"bigbang-quiz-service/internal/periodic"
)

// OptionCap is the most questions one round set draws from a level pool.
const OptionCap = 12

// QuestionLoader fetches the question pool for a level (from cache or the
// backing store).
type QuestionLoader interface {
	QuestionsByLevel(ctx context.Context, level domain.Level) ([]domain.Question, error)
}

// RoundSelector builds the shuffled option and round lists for one game from
// a snapshot of the level's questions. The random source is injected so tests
// can pin the permutation.
type RoundSelector struct {
	loader QuestionLoader

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewRoundSelector(loader QuestionLoader, rnd *rand.Rand) *RoundSelector {
	return &RoundSelector{loader: loader, rnd: rnd}
}

// BuildRoundSet loads all questions at level, drops rows without an answer
// name, shuffles what remains and truncates to OptionCap. Both returned lists
// share the same order. Zero stored rows and zero usable rows fail with
// distinct errors.
func (s *RoundSelector) BuildRoundSet(ctx context.Context, level domain.Level) ([]domain.Option, []domain.Round, error) {
	pool, err := s.loader.QuestionsByLevel(ctx, level)
	if err != nil {
		return nil, nil, err
	}
	if len(pool) == 0 {
		return nil, nil, domain.ErrNoQuestionsForLevel
	}

	usable := pool[:0:0]
	for _, q := range pool {
		if q.Name != "" {
			usable = append(usable, q)
		}
	}
	if len(usable) == 0 {
		return nil, nil, domain.ErrNoValidAnswer
	}

	s.shuffle(usable)
	if len(usable) > OptionCap {
		usable = usable[:OptionCap]
	}

	options := make([]domain.Option, 0, len(usable))
	rounds := make([]domain.Round, 0, len(usable))
	for _, q := range usable {
		options = append(options, optionFor(q))
		rounds = append(rounds, domain.Round{
			Name:         q.Name,
			PositionName: q.Name,
			Hints:        hintsFor(q),
		})
	}
	return options, rounds, nil
}

// shuffle is an in-place Fisher-Yates permutation over the usable pool.
func (s *RoundSelector) shuffle(qs []domain.Question) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(qs) - 1; i > 0; i-- {
		j := s.rnd.Intn(i + 1)
		qs[i], qs[j] = qs[j], qs[i]
	}
}

func optionFor(q domain.Question) domain.Option {
	symbol := q.Symbol
	if symbol == "" {
		symbol = "?"
	}
	image := q.ImagePath
	if image == "" {
		image = placeholderImage(q.Name)
	}
	return domain.Option{
		Name:              q.Name,
		Symbol:            symbol,
		ImagePath:         image,
		DistributionImage: q.DistributionImage,
	}
}

func hintsFor(q domain.Question) []string {
	if len(q.Hints) == 0 {
		// Questions without mapped hints still play; the round just has
		// nothing to reveal.
		return []string{}
	}
	hints := make([]string, len(q.Hints))
	copy(hints, q.Hints)
	return hints
}

func placeholderImage(name string) string {
	return "/img/elementos/" + periodic.FoldKey(name) + ".png"
}
