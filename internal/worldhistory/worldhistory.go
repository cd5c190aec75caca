package worldhistory

import (
	"github.com/talgya/worldhistory/internal/artifact"
	"github.com/talgya/worldhistory/internal/chronicle"
	"github.com/talgya/worldhistory/internal/colonist"
	"github.com/talgya/worldhistory/internal/diplomacy"
	"github.com/talgya/worldhistory/internal/ids"
	"github.com/talgya/worldhistory/internal/monster"
	"github.com/talgya/worldhistory/internal/religion"
	"github.com/talgya/worldhistory/internal/reputation"
	"github.com/talgya/worldhistory/internal/territory"
	"github.com/talgya/worldhistory/internal/trade"
	"github.com/talgya/worldhistory/internal/war"
	"github.com/talgya/worldhistory/internal/world"
	"github.com/talgya/worldhistory/internal/worldtime"
)

// Config holds the immutable parameters a world was generated with.
type Config struct {
	Seed       uint64
	WorldWidth int
	WorldHeight int
}

// Era is a named span of the timeline, matching spec's
// timeline: list of named Eras.
type Era struct {
	ID    ids.EraID
	Name  string
	Start worldtime.Date
	End   *worldtime.Date
}

// WorldHistory is the single top-level store every subsystem pass reads
// and mutates. Grounded on engine.Simulation's all-in-one-struct shape,
// generalized to the full entity-store set spec.md's data model names.
type WorldHistory struct {
	Config      Config
	CurrentDate worldtime.Date
	CurrentTick uint64

	Timeline  []*Era
	Chronicle *chronicle.Chronicle

	WorldMap  *world.Map
	Territory *territory.Map

	Tribes     map[ids.TribeID]*Tribe
	Colonists  map[ids.ColonistID]*colonist.Colonist
	Markets    map[ids.TribeID]*trade.Market

	Diplomacy  *diplomacy.State
	Reputation *reputation.Table

	Species     map[ids.CreatureSpeciesID]*monster.Species
	Populations map[ids.PopulationID]*monster.Population
	Legendaries map[ids.LegendaryCreatureID]*monster.Legendary

	Wars      *war.Store
	Armies    *war.ArmyStore
	Sieges    *war.SiegeStore
	Artifacts *artifact.Store
	Monuments *artifact.MonumentStore
	Religions *religion.Store

	IDs *ids.Generators
}

// New constructs an empty world ready for genesis operations (tribe
// founding, initial population seeding) to populate.
func New(cfg Config, seed uint64) *WorldHistory {
	return &WorldHistory{
		Config:      cfg,
		CurrentDate: worldtime.Date{Year: 1, Season: worldtime.Spring},
		Chronicle:   chronicle.New(),
		WorldMap:    world.NewMap(cfg.WorldWidth),
		Territory:   territory.NewMap(),
		Tribes:      make(map[ids.TribeID]*Tribe),
		Colonists:   make(map[ids.ColonistID]*colonist.Colonist),
		Markets:     make(map[ids.TribeID]*trade.Market),
		Diplomacy:   diplomacy.NewState(),
		Reputation:  reputation.NewTable(),
		Species:     make(map[ids.CreatureSpeciesID]*monster.Species),
		Populations: make(map[ids.PopulationID]*monster.Population),
		Legendaries: make(map[ids.LegendaryCreatureID]*monster.Legendary),
		Wars:        war.NewStore(),
		Armies:      war.NewArmyStore(),
		Sieges:      war.NewSiegeStore(),
		Artifacts:   artifact.NewStore(),
		Monuments:   artifact.NewMonumentStore(),
		Religions:   religion.NewStore(),
		IDs:         ids.NewGenerators(),
	}
}

// FoundTribe registers a new tribe and its market, returning the tribe, and
// records the founding as a major chronicle event at the tribe's capital.
func (w *WorldHistory) FoundTribe(name string, culture Culture, gov Government, capital world.HexCoord) *Tribe {
	t := &Tribe{
		ID:                w.IDs.NextTribe(),
		Name:              name,
		Culture:           culture,
		Government:        gov,
		Capital:           capital,
		CapitalSettlement: w.IDs.NextSettlement(),
		Founded:           w.CurrentTick,
	}
	w.Tribes[t.ID] = t
	w.Markets[t.ID] = trade.NewMarket()

	founding := chronicle.NewEvent(
		w.IDs.NextEvent(), w.CurrentDate, chronicle.FactionFounded,
		"the tribe of "+name+" was founded", false,
	).AtLocation(t.CapitalSettlement).WithFaction(t.ID)
	w.Chronicle.Append(founding)

	settling := chronicle.NewEvent(
		w.IDs.NextEvent(), w.CurrentDate, chronicle.SettlementFounded,
		name+"'s capital settlement was raised", false,
	).AtLocation(t.CapitalSettlement).WithFaction(t.ID).CausedBy(founding.ID)
	w.Chronicle.Append(settling)
	w.Chronicle.LinkCauseEffect(founding.ID, settling.ID)

	return t
}

// LivingTribes returns every tribe that has not been dissolved.
func (w *WorldHistory) LivingTribes() []*Tribe {
	var out []*Tribe
	for _, t := range w.Tribes {
		if t.IsAlive() {
			out = append(out, t)
		}
	}
	return out
}

// NeighboringTribes returns the tribes whose territory borders t's
// territory, used by diplomacy/conflict passes to find engagement
// candidates without an all-pairs scan.
func (w *WorldHistory) NeighboringTribes(t *Tribe) []ids.TribeID {
	seen := make(map[ids.TribeID]bool)
	var out []ids.TribeID
	for _, coord := range w.Territory.TerritoryOf(t.ID) {
		for _, owner := range w.Territory.AdjacentClaims(coord) {
			if owner != t.ID && !seen[owner] {
				seen[owner] = true
				out = append(out, owner)
			}
		}
	}
	return out
}

// DissolveTribe closes a tribe and purges it from diplomacy and
// territory bookkeeping; the tribe entity remains for historical queries.
// Its species-reputation records are not purged and stay in the
// reputation table.
func (w *WorldHistory) DissolveTribe(id ids.TribeID) {
	t, ok := w.Tribes[id]
	if !ok {
		return
	}
	t.Dissolve(w.CurrentTick)
	w.Diplomacy.RemoveTribe(id)
	w.Territory.ReleaseTribe(id)
}

// TribeBySettlement finds the tribe whose capital settlement matches s,
// the inverse of Tribe.CapitalSettlement, used when resolving a
// chronicle event's Location back to a tribe.
func (w *WorldHistory) TribeBySettlement(s ids.SettlementID) (*Tribe, bool) {
	for _, t := range w.Tribes {
		if t.CapitalSettlement == s {
			return t, true
		}
	}
	return nil, false
}

// ColonistByFigure resolves a colonist by its FigureID, the form stored in
// society.State.LeaderID, since Colonists is keyed by ColonistID.
func (w *WorldHistory) ColonistByFigure(f ids.FigureID) (*colonist.Colonist, bool) {
	for _, c := range w.Colonists {
		if c.FigureID == f {
			return c, true
		}
	}
	return nil, false
}

// Leader resolves the tribe's current leader colonist, if any and still
// living.
func (t *Tribe) Leader(w *WorldHistory) (*colonist.Colonist, bool) {
	if t.Succession.LeaderID == nil {
		return nil, false
	}
	c, ok := w.ColonistByFigure(*t.Succession.LeaderID)
	if !ok || !c.Alive {
		return nil, false
	}
	return c, true
}

// AddColonist registers a new notable colonist under its tribe.
func (w *WorldHistory) AddColonist(c *colonist.Colonist, tribe *Tribe) {
	w.Colonists[c.ID] = c
	tribe.Notables = append(tribe.Notables, c.ID)
}

// Advance moves the world clock forward one season/tick, matching spec's
// "one tick == one season" rule.
func (w *WorldHistory) Advance() {
	w.CurrentTick++
	w.CurrentDate = w.CurrentDate.Next()
}
