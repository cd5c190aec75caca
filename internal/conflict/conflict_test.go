package conflict

import (
	"math/rand"
	"testing"

	"github.com/talgya/worldhistory/internal/diplomacy"
	"github.com/talgya/worldhistory/internal/ids"
)

func TestConsiderEngagementBlockedByNonAggression(t *testing.T) {
	dipl := diplomacy.NewState()
	a, b := ids.TribeID(1), ids.TribeID(2)
	dipl.AddTreaty(diplomacy.Treaty{Type: diplomacy.NonAggression, A: a, B: b})
	rng := rand.New(rand.NewSource(1))
	attacker := Army{Tribe: a, Strength: 1000, Warriors: 500}
	defender := Army{Tribe: b, Strength: 10, Warriors: 50}
	for i := 0; i < 50; i++ {
		if _, ok := ConsiderEngagement(dipl, attacker, defender, rng); ok {
			t.Fatal("expected non-aggression pact to block engagement")
		}
	}
}

func TestConsiderEngagementEscalatesWithDecisiveStrength(t *testing.T) {
	dipl := diplomacy.NewState()
	a, b := ids.TribeID(1), ids.TribeID(2)
	rng := rand.New(rand.NewSource(3))
	attacker := Army{Tribe: a, Strength: 1000, Warriors: 500}
	defender := Army{Tribe: b, Strength: 10, Warriors: 50}

	sawBattle := false
	for i := 0; i < 200; i++ {
		if kind, ok := ConsiderEngagement(dipl, attacker, defender, rng); ok && kind == Battle {
			sawBattle = true
			break
		}
	}
	if !sawBattle {
		t.Fatal("expected a decisive strength edge to eventually trigger a battle")
	}
}

func TestResolveStrongerArmyUsuallyWins(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	strong := Army{Tribe: 1, Strength: 1000, Warriors: 500}
	weak := Army{Tribe: 2, Strength: 10, Warriors: 50}

	wins := 0
	for i := 0; i < 50; i++ {
		out := Resolve(Battle, strong, weak, rng)
		if out.AttackerWon {
			wins++
		}
	}
	if wins < 45 {
		t.Fatalf("expected the much stronger attacker to win nearly every battle, won %d/50", wins)
	}
}

func TestResolveRaidGrantsLootOnlyToWinner(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	strong := Army{Tribe: 1, Strength: 1000, Warriors: 500}
	weak := Army{Tribe: 2, Strength: 10, Warriors: 50}
	out := Resolve(Raid, strong, weak, rng)
	if out.AttackerWon && out.LootFraction <= 0 {
		t.Fatal("expected winning raider to seize loot")
	}
	if out.TerritoryLost {
		t.Fatal("a raid should never capture territory")
	}
}

func TestApplyOutcomeBattlePenaltyDoublesRaid(t *testing.T) {
	dipl := diplomacy.NewState()
	a, b := ids.TribeID(1), ids.TribeID(2)
	ApplyOutcome(dipl, Outcome{Kind: Battle, Winner: a, Loser: b})
	if r := dipl.Get(a, b); r != BattleRelationPenalty {
		t.Fatalf("expected relation at %v, got %v", BattleRelationPenalty, r)
	}
}
