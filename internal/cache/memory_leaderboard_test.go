package cache

import (
	"context"
	"testing"
)

func TestMemoryLeaderboard_Ranking(t *testing.T) {
	lb := NewMemoryLeaderboard()
	ctx := context.Background()

	lb.AddPoints(ctx, "Ana", 10)
	lb.AddPoints(ctx, "Beto", 20)
	lb.AddPoints(ctx, "Ana", 20)
	lb.AddPoints(ctx, "Carla", 20)

	top, err := lb.GetTop(ctx, 10)
	if err != nil {
		t.Fatalf("GetTop: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("expected 3 players, got %d", len(top))
	}
	if top[0].Name != "Ana" || top[0].Points != 30 || top[0].Rank != 1 {
		t.Fatalf("unexpected leader: %+v", top[0])
	}
	// Ties break alphabetically.
	if top[1].Name != "Beto" || top[2].Name != "Carla" {
		t.Fatalf("tie break broken: %+v", top[1:])
	}
}

func TestMemoryLeaderboard_LimitAndReset(t *testing.T) {
	lb := NewMemoryLeaderboard()
	ctx := context.Background()

	lb.AddPoints(ctx, "Ana", 30)
	lb.AddPoints(ctx, "Beto", 20)
	lb.AddPoints(ctx, "Carla", 10)

	top, _ := lb.GetTop(ctx, 2)
	if len(top) != 2 || top[1].Name != "Beto" {
		t.Fatalf("limit not applied: %+v", top)
	}

	if err := lb.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	top, _ = lb.GetTop(ctx, 10)
	if len(top) != 0 {
		t.Fatalf("reset left %d players", len(top))
	}
}
