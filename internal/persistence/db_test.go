package persistence

import (
	"path/filepath"
	"testing"

	"github.com/talgya/worldhistory/internal/chronicle"
	"github.com/talgya/worldhistory/internal/colonist"
	"github.com/talgya/worldhistory/internal/diplomacy"
	"github.com/talgya/worldhistory/internal/ids"
	"github.com/talgya/worldhistory/internal/poolpop"
	"github.com/talgya/worldhistory/internal/reputation"
	"github.com/talgya/worldhistory/internal/stockpile"
	"github.com/talgya/worldhistory/internal/territory"
	"github.com/talgya/worldhistory/internal/world"
	"github.com/talgya/worldhistory/internal/worldhistory"
	"github.com/talgya/worldhistory/internal/worldtime"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "world.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSaveAndLoadTribesRoundTrips(t *testing.T) {
	db := openTestDB(t)

	w := worldhistory.New(worldhistory.Config{Seed: 1, WorldWidth: 8, WorldHeight: 8}, 1)
	tribe := w.FoundTribe("Rowan Clan", worldhistory.Culture{Name: "Rowan", WarInclination: 0.4}, worldhistory.GovChiefdom, world.HexCoord{Q: 2, R: -1})
	tribe.Pool = poolpop.NewPool()
	tribe.Pool.Add(tribe.CapitalSettlement, "laborer", 30)
	tribe.Stockpile = stockpile.New()
	tribe.Stockpile.Add(stockpile.GoodFood, 120)
	tribe.Warriors = 12
	tribe.Age = 2

	if err := db.SaveTribes(w.Tribes); err != nil {
		t.Fatalf("SaveTribes: %v", err)
	}

	loaded, err := db.LoadTribes()
	if err != nil {
		t.Fatalf("LoadTribes: %v", err)
	}

	got, ok := loaded[tribe.ID]
	if !ok {
		t.Fatalf("expected tribe %d to round-trip", tribe.ID)
	}
	if got.Name != tribe.Name || got.Culture.Name != "Rowan" {
		t.Fatalf("expected name/culture to survive the round trip, got %+v", got)
	}
	if got.Capital != tribe.Capital {
		t.Fatalf("expected capital coord %v, got %v", tribe.Capital, got.Capital)
	}
	if got.Pool.Total() != 30 {
		t.Fatalf("expected pool total 30, got %d", got.Pool.Total())
	}
	if got.Stockpile.Quantity[stockpile.GoodFood] != 120 {
		t.Fatalf("expected 120 food, got %f", got.Stockpile.Quantity[stockpile.GoodFood])
	}
	if got.Warriors != 12 || got.Age != 2 {
		t.Fatalf("expected warriors=12 age=2, got warriors=%d age=%d", got.Warriors, got.Age)
	}
}

func TestSaveAndLoadColonistsRoundTrips(t *testing.T) {
	db := openTestDB(t)

	w := worldhistory.New(worldhistory.Config{Seed: 1}, 1)
	tribe := w.FoundTribe("Ash Clan", worldhistory.Culture{Name: "Ash"}, worldhistory.GovTribalCouncil, world.HexCoord{})

	c := &colonist.Colonist{
		ID:           w.IDs.NextColonist(),
		FigureID:     w.IDs.NextFigure(),
		Name:         "Maren",
		Sex:          colonist.Female,
		Age:          34,
		Alive:        true,
		SettlementID: tribe.CapitalSettlement,
		Wealth:       50,
	}
	c.Skills.Level[colonist.SkillFarming] = 8
	w.AddColonist(c, tribe)

	tribeOf := map[ids.ColonistID]ids.TribeID{c.ID: tribe.ID}
	if err := db.SaveColonists(w.Colonists, tribeOf); err != nil {
		t.Fatalf("SaveColonists: %v", err)
	}

	loaded, gotTribeOf, err := db.LoadColonists()
	if err != nil {
		t.Fatalf("LoadColonists: %v", err)
	}

	got, ok := loaded[c.ID]
	if !ok {
		t.Fatalf("expected colonist %d to round-trip", c.ID)
	}
	if got.Name != "Maren" || got.Age != 34 || !got.Alive {
		t.Fatalf("expected name/age/alive to survive the round trip, got %+v", got)
	}
	if got.Skills.Level[colonist.SkillFarming] != 8 {
		t.Fatalf("expected farming skill 8, got %d", got.Skills.Level[colonist.SkillFarming])
	}
	if gotTribeOf[c.ID] != tribe.ID {
		t.Fatalf("expected colonist's tribe association to survive, got %d want %d", gotTribeOf[c.ID], tribe.ID)
	}
}

func TestSaveAndLoadChronicleIsAppendOnly(t *testing.T) {
	db := openTestDB(t)

	e1 := chronicle.NewEvent(1, worldtime.Date{Year: 1, Season: worldtime.Spring}, chronicle.HeroBorn, "a child is born", false)
	if err := db.SaveChronicle([]chronicle.Event{e1}); err != nil {
		t.Fatalf("SaveChronicle: %v", err)
	}

	e2 := chronicle.NewEvent(2, worldtime.Date{Year: 1, Season: worldtime.Summer}, chronicle.Raid, "a raid is repelled", false)
	if err := db.SaveChronicle([]chronicle.Event{e2}); err != nil {
		t.Fatalf("second SaveChronicle: %v", err)
	}

	c, err := db.LoadChronicle()
	if err != nil {
		t.Fatalf("LoadChronicle: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("expected both events to accumulate, got %d", c.Len())
	}
	if !c.All()[1].IsMajor {
		t.Fatalf("expected the military event to be auto-promoted to major")
	}
}

func TestSaveAndLoadDiplomacyRoundTrips(t *testing.T) {
	db := openTestDB(t)

	state := diplomacy.NewState()
	state.Set(1, 2, 55)
	state.AddTreaty(diplomacy.Treaty{Type: diplomacy.TradeAgreement, A: 1, B: 2, FormedTick: 4})

	if err := db.SaveDiplomacy(state); err != nil {
		t.Fatalf("SaveDiplomacy: %v", err)
	}

	loaded, err := db.LoadDiplomacy()
	if err != nil {
		t.Fatalf("LoadDiplomacy: %v", err)
	}
	if loaded.Get(1, 2) != 55 {
		t.Fatalf("expected relation 55, got %d", loaded.Get(1, 2))
	}
	if !loaded.HasTreaty(1, 2, diplomacy.TradeAgreement) {
		t.Fatalf("expected the trade agreement to survive the round trip")
	}
}

func TestSaveAndLoadReputationRoundTrips(t *testing.T) {
	db := openTestDB(t)

	table := reputation.NewTable()
	rec := table.Get(1, "Dire Wolves", reputation.Territorial)
	rec.Adjust(reputation.KilledRegular)

	if err := db.SaveReputation(table); err != nil {
		t.Fatalf("SaveReputation: %v", err)
	}

	loaded, err := db.LoadReputation()
	if err != nil {
		t.Fatalf("LoadReputation: %v", err)
	}
	got := loaded.Get(1, "Dire Wolves", reputation.Territorial)
	if got.Score != rec.Score {
		t.Fatalf("expected score %d, got %d", rec.Score, got.Score)
	}
}

func TestSaveAndLoadTerritoryRoundTrips(t *testing.T) {
	db := openTestDB(t)

	m := territory.NewMap()
	m.Claim(world.HexCoord{Q: 0, R: 0}, 1, 5)
	m.Claim(world.HexCoord{Q: 1, R: 0}, 1, 6)

	if err := db.SaveTerritory(m); err != nil {
		t.Fatalf("SaveTerritory: %v", err)
	}

	loaded, err := db.LoadTerritory()
	if err != nil {
		t.Fatalf("LoadTerritory: %v", err)
	}
	owner, ok := loaded.OwnerOf(world.HexCoord{Q: 1, R: 0})
	if !ok || owner != 1 {
		t.Fatalf("expected hex (1,0) to be claimed by tribe 1, got owner=%d ok=%v", owner, ok)
	}
}

func TestHasWorldStateReflectsSavedTribes(t *testing.T) {
	db := openTestDB(t)

	if db.HasWorldState() {
		t.Fatalf("expected a fresh database to report no saved world state")
	}

	w := worldhistory.New(worldhistory.Config{Seed: 1}, 1)
	w.FoundTribe("Rowan Clan", worldhistory.Culture{Name: "Rowan"}, worldhistory.GovChiefdom, world.HexCoord{})
	if err := db.SaveTribes(w.Tribes); err != nil {
		t.Fatalf("SaveTribes: %v", err)
	}

	if !db.HasWorldState() {
		t.Fatalf("expected a database with a saved tribe to report world state present")
	}
}

func TestSaveWorldStateThenLoadWorldStateRebuildsGenerators(t *testing.T) {
	db := openTestDB(t)

	w := worldhistory.New(worldhistory.Config{Seed: 7, WorldWidth: 8, WorldHeight: 8}, 7)
	tribe := w.FoundTribe("Rowan Clan", worldhistory.Culture{Name: "Rowan"}, worldhistory.GovChiefdom, world.HexCoord{})
	tribe.Pool = poolpop.NewPool()
	tribe.Stockpile = stockpile.New()

	c := &colonist.Colonist{ID: w.IDs.NextColonist(), FigureID: w.IDs.NextFigure(), Name: "Bran", Alive: true}
	w.AddColonist(c, tribe)
	w.Advance()

	if err := db.SaveWorldState(w); err != nil {
		t.Fatalf("SaveWorldState: %v", err)
	}

	loaded, err := LoadWorldState(db, w.Config, w.WorldMap)
	if err != nil {
		t.Fatalf("LoadWorldState: %v", err)
	}

	if len(loaded.Tribes) != 1 || len(loaded.Colonists) != 1 {
		t.Fatalf("expected 1 tribe and 1 colonist to survive the round trip, got %d/%d", len(loaded.Tribes), len(loaded.Colonists))
	}
	if loaded.CurrentTick != w.CurrentTick {
		t.Fatalf("expected current tick %d, got %d", w.CurrentTick, loaded.CurrentTick)
	}

	// a freshly minted colonist must not collide with one already on record
	next := loaded.IDs.NextColonist()
	if next <= c.ID {
		t.Fatalf("expected the rebuilt generator to mint past the loaded colonist's ID %d, got %d", c.ID, next)
	}
}
