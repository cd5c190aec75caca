package engine

import (
	"math/rand"
	"testing"

	"github.com/talgya/worldhistory/internal/poolpop"
	"github.com/talgya/worldhistory/internal/stockpile"
	"github.com/talgya/worldhistory/internal/world"
	"github.com/talgya/worldhistory/internal/worldhistory"
)

// newTestWorld builds a small world with one founded tribe, ready for a
// pass function to operate on, mirroring the teacher's test fixture style
// of hand-assembling just enough state rather than running full worldgen.
func newTestWorld(t *testing.T) (*worldhistory.WorldHistory, *worldhistory.Tribe) {
	t.Helper()
	w := worldhistory.New(worldhistory.Config{Seed: 1, WorldWidth: 8, WorldHeight: 8}, 1)
	tribe := w.FoundTribe("Rowan Clan", worldhistory.Culture{Name: "Rowan"}, worldhistory.GovChiefdom, world.HexCoord{Q: 0, R: 0})
	tribe.Pool = poolpop.NewPool()
	tribe.Pool.Add(tribe.CapitalSettlement, "laborer", 40)
	tribe.Stockpile = stockpile.New()
	return w, tribe
}

func TestStepSeasonRunsFullPassOrderWithoutPanicking(t *testing.T) {
	w, tribe := newTestWorld(t)
	tribe.Stockpile.Add(stockpile.GoodFood, 100)
	tribe.Stockpile.Add(stockpile.GoodWood, 50)
	tribe.Stockpile.Add(stockpile.GoodStone, 50)
	tribe.Warriors = 5

	eng := NewEngine(w)
	eng.RNG = rand.New(rand.NewSource(42))

	startTick := w.CurrentTick
	eng.StepSeason()

	if w.CurrentTick != startTick+1 {
		t.Fatalf("expected tick to advance by one, got %d -> %d", startTick, w.CurrentTick)
	}
}

func TestRunAdvancesTickBySeasonCount(t *testing.T) {
	w, _ := newTestWorld(t)
	eng := NewEngine(w)
	eng.RNG = rand.New(rand.NewSource(7))
	eng.Speed = 0 // run as fast as possible, no sleeping between ticks

	eng.Run(3)

	if w.CurrentTick != 3 {
		t.Fatalf("expected 3 ticks after Run(3), got %d", w.CurrentTick)
	}
}

func TestRunIgnoresStopIssuedBeforeIt(t *testing.T) {
	w, _ := newTestWorld(t)
	eng := NewEngine(w)
	eng.RNG = rand.New(rand.NewSource(7))
	eng.Speed = 0
	eng.Running = false // simulate Stop() having been called before Run

	eng.Run(5)

	if w.CurrentTick != 5 {
		t.Fatalf("expected Run to set Running itself and complete all 5 seasons, got tick %d", w.CurrentTick)
	}
}
