package reputation

import "testing"

func TestAdjustClampsToDispositionBounds(t *testing.T) {
	r := NewRecord(AlwaysHostile)
	for i := 0; i < 10; i++ {
		r.Adjust(PeacefulCoexistence)
	}
	if r.Score > AlwaysHostile.MaxPositive() {
		t.Fatalf("expected score capped at %v, got %v", AlwaysHostile.MaxPositive(), r.Score)
	}
}

func TestMomentumBlocksDecayThenResumes(t *testing.T) {
	r := NewRecord(Neutral)
	r.Adjust(KilledRegular) // score -15, momentum 20
	for i := 0; i < decayMomentum; i++ {
		r.Decay()
	}
	if r.Score != -15 {
		t.Fatalf("expected score unchanged while momentum active, got %v", r.Score)
	}
	r.Decay()
	if r.Score != -14 {
		t.Fatalf("expected decay to resume after momentum elapses, got %v", r.Score)
	}
}

func TestDecayMovesTowardBaselineBothDirections(t *testing.T) {
	r := NewRecord(Territorial)
	r.Score = r.Disposition.MaxPositive()
	r.momentum = 0
	r.Decay()
	if r.Score != r.Disposition.MaxPositive()-1 {
		t.Fatal("expected decay downward toward baseline from above")
	}
}

func TestGetCreatesAtBaseline(t *testing.T) {
	table := NewTable()
	r := table.Get(1, "wyrm", Mythical)
	if r.Score != Mythical.Baseline() {
		t.Fatalf("expected new record at baseline %v, got %v", Mythical.Baseline(), r.Score)
	}
}

func TestFearfulIsHighPositiveStanding(t *testing.T) {
	r := &Record{Score: 30}
	if !r.IsFearful() {
		t.Fatalf("expected score 30 to be fearful")
	}
	if r.IsHostile() || r.IsVengeful() {
		t.Fatalf("a fearful record must not also read as hostile/vengeful")
	}
	if !r.ShouldSkipTribe() {
		t.Fatalf("expected a fearful species to skip the tribe")
	}
}

func TestVengefulIsLowNegativeStanding(t *testing.T) {
	r := &Record{Score: -60}
	if !r.IsVengeful() || !r.IsHostile() {
		t.Fatalf("expected score -60 to be both vengeful and hostile")
	}
	if r.IsFearful() {
		t.Fatalf("a vengeful record must not read as fearful")
	}
	if r.AggressionModifier() != 0.3 {
		t.Fatalf("expected vengeful aggression modifier 0.3, got %v", r.AggressionModifier())
	}
}

func TestAggressionModifierMatchesDiscreteTable(t *testing.T) {
	cases := []struct {
		score    int8
		expected float64
	}{
		{-60, 0.3},
		{-30, 0.1},
		{0, -0.2},
		{30, -0.5},
		{-10, 0.0},
	}
	for _, c := range cases {
		r := &Record{Score: c.score}
		if got := r.AggressionModifier(); got != c.expected {
			t.Fatalf("score %d: expected aggression modifier %v, got %v", c.score, c.expected, got)
		}
	}
}

func TestStatusLabelOrderMatchesHostileBeforeFearful(t *testing.T) {
	r := &Record{Score: 0}
	if r.StatusLabel() != "tolerant" {
		t.Fatalf("expected score 0 to be tolerant, got %q", r.StatusLabel())
	}
	r.Score = -15
	if r.StatusLabel() != "wary" {
		t.Fatalf("expected score -15 to be wary, got %q", r.StatusLabel())
	}
}
