package war

import (
	"testing"

	"github.com/talgya/worldhistory/internal/ids"
	"github.com/talgya/worldhistory/internal/worldtime"
)

func TestDeclareRejectsOverlappingSides(t *testing.T) {
	s := NewStore()
	_, err := s.Declare(1, []ids.TribeID{1, 2}, []ids.TribeID{2, 3}, "border dispute", worldtime.Date{Year: 1})
	if err == nil {
		t.Fatal("expected an error when a tribe appears on both sides")
	}
}

func TestEndSetsVictorOnceOnly(t *testing.T) {
	s := NewStore()
	w, err := s.Declare(1, []ids.TribeID{1}, []ids.TribeID{2}, "border dispute", worldtime.Date{Year: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	victor := ids.TribeID(1)
	w.End(worldtime.Date{Year: 2}, &victor)
	if w.Victor == nil || *w.Victor != victor {
		t.Fatalf("expected victor %v, got %v", victor, w.Victor)
	}

	other := ids.TribeID(2)
	w.End(worldtime.Date{Year: 3}, &other)
	if *w.Victor != victor {
		t.Fatalf("expected victor to remain %v after a second End call, got %v", victor, *w.Victor)
	}
	if w.IsActive() {
		t.Fatal("expected a war with Ended set to no longer be active")
	}
}

func TestArmyStoreForTribeExcludesDisbanded(t *testing.T) {
	s := NewArmyStore()
	a := s.Raise(1, 5, 100, nil)
	s.Raise(2, 5, 50, nil)
	a.Disband()

	armies := s.ForTribe(5)
	if len(armies) != 1 {
		t.Fatalf("expected 1 non-disbanded army for tribe 5, got %d", len(armies))
	}
}

func TestSiegeResolveIsIdempotent(t *testing.T) {
	s := NewSiegeStore()
	sg := s.Begin(1, 1, 5, 10, worldtime.Date{Year: 1})
	sg.Resolve(worldtime.Date{Year: 2}, SiegeSuccessful)
	sg.Resolve(worldtime.Date{Year: 3}, SiegeBroken)
	if sg.Outcome != SiegeSuccessful {
		t.Fatalf("expected the first Resolve call to stick, got %v", sg.Outcome)
	}
	if len(s.OngoingAt(10)) != 0 {
		t.Fatal("expected a resolved siege to no longer be ongoing")
	}
}
