package monster

import (
	"math/rand"
	"testing"

	"github.com/talgya/worldhistory/internal/world"
)

func TestSetLeaderRaisesAggressionEnoughToRaid(t *testing.T) {
	p := NewPopulation(1, 1, 50, world.HexCoord{Q: 0, R: 0})
	if p.WillRaid() {
		t.Fatal("leaderless population should not raid")
	}
	p.SetLeader(1)
	if !p.WillRaid() {
		t.Fatal("expected organized population with raised aggression to raid")
	}
}

func TestRemoveLeaderScattersPopulation(t *testing.T) {
	p := NewPopulation(1, 1, 50, world.HexCoord{Q: 0, R: 0})
	p.SetLeader(1)
	p.RemoveLeader()
	if p.IsOrganized() {
		t.Fatal("expected leader cleared")
	}
	if p.WillRaid() {
		t.Fatal("expected scattered population not to raid")
	}
}

func TestAdjustCountNeverNegative(t *testing.T) {
	p := NewPopulation(1, 1, 50, world.HexCoord{Q: 0, R: 0})
	p.AdjustCount(10)
	if p.Count != 60 {
		t.Fatalf("expected count 60, got %d", p.Count)
	}
	p.AdjustCount(-1000)
	if !p.IsExtinct() {
		t.Fatal("expected population wiped to zero, not negative")
	}
}

func TestGenerateBehaviorWithinBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	b := GenerateBehavior(SizeColossal, Genius, rng)
	if b.Aggression < 0 || b.Aggression > 1 {
		t.Fatalf("aggression out of bounds: %v", b.Aggression)
	}
	if !b.IsAggressive() {
		t.Fatal("expected colossal creature to be aggressive")
	}
}

func TestGenerateLegendaryNameNonEmpty(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 5; i++ {
		name, epithet := GenerateLegendaryName(rng)
		if name == "" || epithet == "" {
			t.Fatal("expected non-empty legendary name and epithet")
		}
	}
}
