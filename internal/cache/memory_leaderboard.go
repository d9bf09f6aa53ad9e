package cache

import (
	"context"
	"sort"
	"sync"

	"wordguess/internal/model"
)

// MemoryLeaderboard is the fallback ranking board used when Redis is not
// configured. Scores live only for the process lifetime.
type MemoryLeaderboard struct {
	mu     sync.Mutex
	points map[string]int
}

// NewMemoryLeaderboard creates an in-memory leaderboard.
func NewMemoryLeaderboard() *MemoryLeaderboard {
	return &MemoryLeaderboard{points: make(map[string]int)}
}

func (c *MemoryLeaderboard) AddPoints(ctx context.Context, player string, points int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.points[player] += points
	return nil
}

func (c *MemoryLeaderboard) GetTop(ctx context.Context, limit int) ([]model.Player, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	players := make([]model.Player, 0, len(c.points))
	for name, pts := range c.points {
		players = append(players, model.Player{Name: name, Points: pts})
	}
	sort.Slice(players, func(i, j int) bool {
		if players[i].Points != players[j].Points {
			return players[i].Points > players[j].Points
		}
		return players[i].Name < players[j].Name
	})
	if len(players) > limit {
		players = players[:limit]
	}
	for i := range players {
		players[i].Rank = i + 1
	}
	return players, nil
}

func (c *MemoryLeaderboard) Reset(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.points = make(map[string]int)
	return nil
}
