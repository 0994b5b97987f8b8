package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"bigbang-quiz-service/internal/domain"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// QuestionLoader fetches the question pool for a level from the backing store.
type QuestionLoader interface {
	QuestionsByLevel(ctx context.Context, level domain.Level) ([]domain.Question, error)
}

// QuestionCache caches each level's question pool in Redis as one JSON value
// and falls back to the loader on a miss. Stored as:
// SET quiz:level:{n}:pool {json} EX ttl
type QuestionCache struct {
	client *redis.Client
	loader QuestionLoader
	ttl    time.Duration
	sf     singleflight.Group
	rndMu  sync.Mutex
	rnd    *rand.Rand
}

func NewQuestionCache(client *redis.Client, loader QuestionLoader, ttl time.Duration) *QuestionCache {
	return &QuestionCache{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *QuestionCache) QuestionsByLevel(ctx context.Context, level domain.Level) ([]domain.Question, error) {
	key := c.key(level)

	if pool, ok := c.cached(ctx, key); ok {
		return pool, nil
	}

	result, err, _ := c.sf.Do(strconv.Itoa(int(level)), func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if pool, ok := c.cached(ctx, key); ok {
			return pool, nil
		}

		pool, err := c.loader.QuestionsByLevel(ctx, level)
		if err != nil {
			return nil, err
		}

		raw, err := json.Marshal(pool)
		if err != nil {
			return nil, fmt.Errorf("marshal pool: %w", err)
		}
		_ = c.client.Set(ctx, key, raw, c.ttlWithJitter()).Err()
		return pool, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

// Invalidate drops one level's cached pool after an authoring write.
func (c *QuestionCache) Invalidate(ctx context.Context, level domain.Level) {
	_ = c.client.Del(ctx, c.key(level)).Err()
}

func (c *QuestionCache) cached(ctx context.Context, key string) ([]domain.Question, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil || len(raw) == 0 {
		return nil, false
	}
	var pool []domain.Question
	if err := json.Unmarshal(raw, &pool); err != nil {
		return nil, false
	}
	return pool, true
}

func (c *QuestionCache) key(level domain.Level) string {
	return "quiz:level:" + strconv.Itoa(int(level)) + ":pool"
}

func (c *QuestionCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	c.rndMu.Lock()
	defer c.rndMu.Unlock()
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
