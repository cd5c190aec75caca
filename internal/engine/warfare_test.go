package engine

import (
	"math/rand"
	"testing"

	"github.com/talgya/worldhistory/internal/ids"
	"github.com/talgya/worldhistory/internal/monster"
	"github.com/talgya/worldhistory/internal/reputation"
	"github.com/talgya/worldhistory/internal/stockpile"
	"github.com/talgya/worldhistory/internal/war"
	"github.com/talgya/worldhistory/internal/world"
)

func TestSubtractClampedNeverGoesNegative(t *testing.T) {
	if got := subtractClamped(5, 10); got != 0 {
		t.Fatalf("expected a loss greater than the total to clamp to 0, got %d", got)
	}
	if got := subtractClamped(10, 4); got != 6 {
		t.Fatalf("expected 10-4=6, got %d", got)
	}
}

func TestCaptureOneHexTransfersOwnership(t *testing.T) {
	w, tribe := newTestWorld(t)
	other := w.FoundTribe("Ash Clan", tribe.Culture, tribe.Government, world.HexCoord{Q: 1, R: 0})
	w.Territory.Claim(tribe.Capital, tribe.ID, w.CurrentTick)

	captureOneHex(w, tribe.ID, other.ID)

	owner, ok := w.Territory.OwnerOf(tribe.Capital)
	if !ok || owner != other.ID {
		t.Fatalf("expected the capital hex to change ownership to the winner")
	}
}

func TestNearestTribeReturnsNilBeyondRange(t *testing.T) {
	w, _ := newTestWorld(t)
	far := world.HexCoord{Q: 50, R: 50}

	if got := nearestTribe(w, far); got != nil {
		t.Fatalf("expected no tribe within range of a far-off hex, got %v", got)
	}
}

func TestNearestTribeFindsClosestCapital(t *testing.T) {
	w, tribe := newTestWorld(t)

	got := nearestTribe(w, tribe.Capital)
	if got == nil || got.ID != tribe.ID {
		t.Fatalf("expected the only tribe's own capital to resolve to itself")
	}
}

func TestDispositionForAggressiveSpeciesIsAlwaysHostile(t *testing.T) {
	sp := &monster.Species{Behavior: monster.Behavior{Aggression: 0.9}}
	if dispositionFor(sp) != reputation.AlwaysHostile {
		t.Fatalf("expected an aggressive species to default to AlwaysHostile disposition")
	}
}

func TestDeclareWarRaisesOneArmyPerSide(t *testing.T) {
	w, tribe := newTestWorld(t)
	other := w.FoundTribe("Ash Clan", tribe.Culture, tribe.Government, world.HexCoord{Q: 1, R: 0})
	tribe.Warriors, other.Warriors = 10, 10

	declareWar(w, tribe, other)

	wars := w.Wars.InvolvingTribe(tribe.ID)
	if len(wars) != 1 || !wars[0].IsActive() {
		t.Fatalf("expected one active war involving the aggressor, got %+v", wars)
	}
	if len(w.Armies.ForTribe(tribe.ID)) != 1 || len(w.Armies.ForTribe(other.ID)) != 1 {
		t.Fatal("expected exactly one army raised per side")
	}
}

func TestStepWarResolutionCrownsVictorWhenDefenderRouted(t *testing.T) {
	w, tribe := newTestWorld(t)
	other := w.FoundTribe("Ash Clan", tribe.Culture, tribe.Government, world.HexCoord{Q: 1, R: 0})
	tribe.Warriors, other.Warriors = 10, 10

	declareWar(w, tribe, other)
	other.Warriors = 0

	stepWarResolution(w)

	wars := w.Wars.InvolvingTribe(tribe.ID)
	if len(wars) != 1 || wars[0].IsActive() {
		t.Fatal("expected the war to have ended")
	}
	if wars[0].Victor == nil || *wars[0].Victor != tribe.ID {
		t.Fatalf("expected the tribe with surviving warriors to be victor, got %+v", wars[0].Victor)
	}
	for _, a := range w.Armies.ForTribe(tribe.ID) {
		t.Fatalf("expected the victor's army to be disbanded (no longer returned by ForTribe), got %+v", a)
	}
}

func TestStepSiegesBeginsThenResolvesSuccessfully(t *testing.T) {
	w, tribe := newTestWorld(t)
	other := w.FoundTribe("Ash Clan", tribe.Culture, tribe.Government, world.HexCoord{Q: 1, R: 0})
	w.Territory.Claim(other.Capital, other.ID, w.CurrentTick)
	tribe.Warriors, other.Warriors = 50, 1

	declareWar(w, tribe, other)

	rng := rand.New(rand.NewSource(1))
	stepSieges(w, rng)

	sieges := w.Sieges.OngoingAt(other.CapitalSettlement)
	if len(sieges) != 1 {
		t.Fatalf("expected one siege opened against the defender's capital, got %d", len(sieges))
	}

	for i := 0; i < 200 && sieges[0].Ended == nil; i++ {
		stepSieges(w, rng)
	}
	if sieges[0].Ended == nil {
		t.Fatal("expected the siege to have resolved after repeated rolls")
	}
	if sieges[0].Outcome != war.SiegeSuccessful {
		t.Fatalf("expected the overwhelming attacker to take the capital, got outcome %v", sieges[0].Outcome)
	}
	owner, ok := w.Territory.OwnerOf(other.Capital)
	if !ok || owner != tribe.ID {
		t.Fatalf("expected the captured capital hex to change ownership to the attacker")
	}
}

func TestRaidTribeStealsGoodsOnSuccess(t *testing.T) {
	w, tribe := newTestWorld(t)
	tribe.Stockpile.Add(stockpile.GoodFood, 100)
	tribe.Warriors = 1

	speciesID := ids.CreatureSpeciesID(1)
	w.Species[speciesID] = &monster.Species{Name: "Dire Wolves", Behavior: monster.Behavior{Aggression: 0.9}}
	pop := monster.NewPopulation(ids.PopulationID(1), speciesID, 50, tribe.Capital)
	pop.Aggression = 5.0 // overwhelms the tribe's single warrior

	before := tribe.Stockpile.Quantity[stockpile.GoodFood]
	raidTribe(w, pop, tribe, rand.New(rand.NewSource(1)))

	if tribe.Stockpile.Quantity[stockpile.GoodFood] >= before {
		t.Fatalf("expected an overwhelming raid to steal some food, before=%f after=%f", before, tribe.Stockpile.Quantity[stockpile.GoodFood])
	}
}
