package workout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const (
	statsCacheKeyPrefix = "fittrack-stats||"
	statsCacheTTL       = 5 * time.Minute
)

// StatsCache keeps computed statistics in redis for a short while.
// Best effort: a cache failure never fails the request, reads just fall
// through to the analyzer.
type StatsCache struct {
	redisClient *redis.Client
}

func NewStatsCache(redisClient *redis.Client) *StatsCache {
	return &StatsCache{
		redisClient: redisClient,
	}
}

func statsCacheKey(userID int) string {
	return fmt.Sprintf("%s%d", statsCacheKeyPrefix, userID)
}

func (c *StatsCache) Get(ctx context.Context, userID int) (*Stats, bool) {
	statsJson, err := c.redisClient.Get(ctx, statsCacheKey(userID)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Errorf("stats cache get [user %d]: %s", userID, err)
		}
		return nil, false
	}

	var stats Stats
	if err := json.Unmarshal([]byte(statsJson), &stats); err != nil {
		log.Errorf("stats cache unmarshal [user %d]: %s", userID, err)
		return nil, false
	}

	return &stats, true
}

func (c *StatsCache) Set(ctx context.Context, userID int, stats *Stats) {
	statsJson, err := json.Marshal(stats)
	if err != nil {
		log.Errorf("stats cache marshal [user %d]: %s", userID, err)
		return
	}

	if err := c.redisClient.Set(ctx, statsCacheKey(userID), statsJson, statsCacheTTL).Err(); err != nil {
		log.Errorf("stats cache set [user %d]: %s", userID, err)
	}
}

// Invalidate drops the cached stats, called after every workout addition.
func (c *StatsCache) Invalidate(ctx context.Context, userID int) {
	if err := c.redisClient.Del(ctx, statsCacheKey(userID)).Err(); err != nil {
		log.Errorf("stats cache invalidate [user %d]: %s", userID, err)
	}
}
