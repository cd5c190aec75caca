package needs

import "testing"

func TestSeasonalGrowthRoundsUpSmallSettlements(t *testing.T) {
	// Preserved open question: population*growth_rate/4 rounds up to a
	// floor of 1 whenever the fractional result is below 1 but above 0,
	// so small settlements always grow a little every season. Do not "fix"
	// this away — see DESIGN.md Open Question 1.
	got := SeasonalGrowth(3, 0.2)
	if got != 1 {
		t.Fatalf("expected floor-of-1 growth for tiny population, got %d", got)
	}

	got = SeasonalGrowth(0, 0.2)
	if got != 0 {
		t.Fatalf("expected zero population to yield zero growth, got %d", got)
	}
}

func TestSeasonalGrowthScalesWithPopulation(t *testing.T) {
	got := SeasonalGrowth(1000, 0.2)
	want := uint64(1000 * 0.2 / 4)
	if got != want {
		t.Fatalf("expected %d, got %d", want, got)
	}
}

func TestPriorityPicksLowestNeed(t *testing.T) {
	s := NewSatisfied()
	s.Level[Security] = 0.1
	if s.Priority() != Security {
		t.Fatalf("expected Security to be the priority need, got %v", s.Priority())
	}
}
