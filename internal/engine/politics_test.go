package engine

import (
	"math/rand"
	"testing"
)

func TestStepNotablesPromotesPoolUntilTargetReached(t *testing.T) {
	w, tribe := newTestWorld(t)

	stepNotables(w, rand.New(rand.NewSource(1)))

	if len(tribe.Notables) < tribe.TargetNotableCount() {
		t.Fatalf("expected notables to reach the target count %d, got %d", tribe.TargetNotableCount(), len(tribe.Notables))
	}
}

func TestStepNotablesStopsWhenPoolExhausted(t *testing.T) {
	w, tribe := newTestWorld(t)
	tribe.Pool.Remove("laborer", tribe.Pool.Total())

	stepNotables(w, rand.New(rand.NewSource(1)))

	if len(tribe.Notables) != 0 {
		t.Fatalf("expected no promotions once the pool is empty, got %d notables", len(tribe.Notables))
	}
}

func TestLargestCohortPicksHighestCount(t *testing.T) {
	w, tribe := newTestWorld(t)
	tribe.Pool.Add(tribe.CapitalSettlement, "farmer", 5)
	tribe.Pool.Add(tribe.CapitalSettlement, "miner", 500)

	occ, ok := largestCohort(tribe)
	if !ok || occ != "miner" {
		t.Fatalf("expected the largest cohort (miner) to be picked, got %q", occ)
	}
	_ = w
}

func TestStepSuccessionInstallsALeaderEventually(t *testing.T) {
	w, tribe := newTestWorld(t)
	for i := 0; i < 4; i++ {
		stepNotables(w, rand.New(rand.NewSource(int64(i))))
	}

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 5 && tribe.Succession.LeaderID == nil; i++ {
		stepSuccession(w, rng)
	}

	if tribe.Succession.LeaderID == nil {
		t.Fatalf("expected a leader to be resolved within a few succession ticks")
	}
}

func TestStepReputationDecayDoesNotPanicOnEmptyTable(t *testing.T) {
	w, _ := newTestWorld(t)
	stepReputationDecay(w)
}

func TestStepChronicleCompactionDoesNotPanicOnEmptyChronicle(t *testing.T) {
	w, _ := newTestWorld(t)
	stepChronicleCompaction(w)
}
