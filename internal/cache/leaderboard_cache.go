package cache

import (
	"context"

	"github.com/redis/go-redis/v9"

	"wordguess/internal/model"
)

// LeaderboardCache handles Redis ZSET operations for the ranking board.
// Scores accumulate across rounds, keyed by player name.
type LeaderboardCache interface {
	AddPoints(ctx context.Context, player string, points int) error
	GetTop(ctx context.Context, limit int) ([]model.Player, error)
	Reset(ctx context.Context) error
}

const leaderboardKey = "wordguess:leaderboard"

type leaderboardCache struct {
	client *redis.Client
}

// NewLeaderboardCache creates a new leaderboard cache
func NewLeaderboardCache(client *redis.Client) LeaderboardCache {
	return &leaderboardCache{client: client}
}

func (c *leaderboardCache) AddPoints(ctx context.Context, player string, points int) error {
	return c.client.ZIncrBy(ctx, leaderboardKey, float64(points), player).Err()
}

func (c *leaderboardCache) GetTop(ctx context.Context, limit int) ([]model.Player, error) {
	results, err := c.client.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	players := make([]model.Player, len(results))
	for i, z := range results {
		players[i] = model.Player{
			Name:   z.Member.(string),
			Points: int(z.Score),
			Rank:   i + 1,
		}
	}
	return players, nil
}

func (c *leaderboardCache) Reset(ctx context.Context) error {
	return c.client.Del(ctx, leaderboardKey).Err()
}
