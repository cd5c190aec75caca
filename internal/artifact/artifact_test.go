package artifact

import (
	"testing"

	"github.com/talgya/worldhistory/internal/ids"
	"github.com/talgya/worldhistory/internal/worldtime"
)

func TestTransferToAppendsOwnerHistory(t *testing.T) {
	s := NewStore()
	smith := ids.Figure(1)
	a := s.Create(1, "Ashbringer", smith, worldtime.Date{Year: 1}, true)

	heir := ids.Figure(2)
	a.TransferTo(heir)
	if len(a.OwnerHistory) != 2 {
		t.Fatalf("expected 2 entries in owner history, got %d", len(a.OwnerHistory))
	}
	if a.CurrentOwner() != heir {
		t.Fatalf("expected current owner %v, got %v", heir, a.CurrentOwner())
	}

	a.TransferTo(heir)
	if len(a.OwnerHistory) != 2 {
		t.Fatal("expected transferring to the current owner again to be a no-op")
	}
}

func TestOwnerHistoryNeverShrinksAcrossTransfers(t *testing.T) {
	s := NewStore()
	a := s.Create(1, "Ashbringer", ids.Figure(1), worldtime.Date{Year: 1}, false)
	prevLen := len(a.OwnerHistory)
	for i := 2; i < 6; i++ {
		a.TransferTo(ids.Figure(ids.FigureID(i)))
		if len(a.OwnerHistory) <= prevLen {
			t.Fatal("expected owner history to grow with each distinct transfer")
		}
		prevLen = len(a.OwnerHistory)
	}
}

func TestMonumentStoreAtSettlementExcludesDestroyed(t *testing.T) {
	s := NewMonumentStore()
	m := s.Build(1, "Obelisk of the First King", 10, worldtime.Date{Year: 1}, nil)
	s.Build(2, "Shrine of Ashes", 10, worldtime.Date{Year: 2}, nil)
	m.Destroyed = true

	standing := s.AtSettlement(10)
	if len(standing) != 1 {
		t.Fatalf("expected 1 standing monument, got %d", len(standing))
	}
}
