// Package ids defines the opaque identifier types shared across every
// subsystem. Entities never hold direct references to each other; they hold
// one of these typed IDs and look the referent up through WorldHistory.
package ids

import "fmt"

type FactionID uint64
type FigureID uint64
type SettlementID uint64
type EventID uint64
type ArtifactID uint64
type MonumentID uint64
type DynastyID uint64
type WarID uint64
type ArmyID uint64
type SiegeID uint64
type TradeRouteID uint64
type RaceID uint64
type CultureID uint64
type CreatureSpeciesID uint64
type LegendaryCreatureID uint64
type PopulationID uint64
type DeityID uint64
type ReligionID uint64
type CultID uint64
type EraID uint64
type TribeID uint64
type ColonistID uint64
type CharacterID uint64
type StructureID uint64
type WorkplaceID uint64
type JobID uint64
type MonsterID uint64
type FaunaID uint64

// Kind tags the concrete type carried by an EntityID.
type Kind uint8

const (
	KindFaction Kind = iota
	KindFigure
	KindSettlement
	KindEvent
	KindArtifact
	KindMonument
	KindDynasty
	KindWar
	KindArmy
	KindSiege
	KindTradeRoute
	KindRace
	KindCulture
	KindCreatureSpecies
	KindLegendaryCreature
	KindPopulation
	KindDeity
	KindReligion
	KindCult
	KindEra
	KindTribe
	KindColonist
	KindCharacter
	KindStructure
	KindWorkplace
	KindJob
	KindMonster
	KindFauna
)

func (k Kind) String() string {
	names := [...]string{
		"Faction", "Figure", "Settlement", "Event", "Artifact", "Monument",
		"Dynasty", "War", "Army", "Siege", "TradeRoute", "Race", "Culture",
		"CreatureSpecies", "LegendaryCreature", "Population", "Deity",
		"Religion", "Cult", "Era", "Tribe", "Colonist", "Character",
		"Structure", "Workplace", "Job", "Monster", "Fauna",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// EntityID is a tagged union over every identifier kind. Only Kind and the
// raw numeric value are ever compared; callers must switch on Kind before
// reinterpreting Value as a concrete typed ID.
type EntityID struct {
	Kind  Kind
	Value uint64
}

func (e EntityID) String() string {
	return fmt.Sprintf("%s#%d", e.Kind, e.Value)
}

func Faction(id FactionID) EntityID       { return EntityID{KindFaction, uint64(id)} }
func Figure(id FigureID) EntityID         { return EntityID{KindFigure, uint64(id)} }
func Settlement(id SettlementID) EntityID { return EntityID{KindSettlement, uint64(id)} }
func EventE(id EventID) EntityID          { return EntityID{KindEvent, uint64(id)} }
func Artifact(id ArtifactID) EntityID     { return EntityID{KindArtifact, uint64(id)} }
func Monument(id MonumentID) EntityID     { return EntityID{KindMonument, uint64(id)} }
func Dynasty(id DynastyID) EntityID       { return EntityID{KindDynasty, uint64(id)} }
func War(id WarID) EntityID               { return EntityID{KindWar, uint64(id)} }
func Army(id ArmyID) EntityID             { return EntityID{KindArmy, uint64(id)} }
func Siege(id SiegeID) EntityID           { return EntityID{KindSiege, uint64(id)} }
func TradeRoute(id TradeRouteID) EntityID { return EntityID{KindTradeRoute, uint64(id)} }
func Tribe(id TribeID) EntityID           { return EntityID{KindTribe, uint64(id)} }
func Colonist(id ColonistID) EntityID     { return EntityID{KindColonist, uint64(id)} }
func Character(id CharacterID) EntityID   { return EntityID{KindCharacter, uint64(id)} }
func Structure(id StructureID) EntityID   { return EntityID{KindStructure, uint64(id)} }
func Workplace(id WorkplaceID) EntityID   { return EntityID{KindWorkplace, uint64(id)} }
func Job(id JobID) EntityID               { return EntityID{KindJob, uint64(id)} }
func Monster(id MonsterID) EntityID       { return EntityID{KindMonster, uint64(id)} }
func Fauna(id FaunaID) EntityID           { return EntityID{KindFauna, uint64(id)} }

// Generators hands out monotonically increasing IDs per kind. It is never
// persisted directly; on load it is rebuilt from the maximum ID observed in
// each entity store, per spec's invariant that ID generators derive from
// data rather than carry their own durable state.
type Generators struct {
	next [28]uint64
}

func NewGenerators() *Generators {
	return &Generators{}
}

func (g *Generators) nextOf(k Kind) uint64 {
	g.next[k]++
	return g.next[k]
}

func (g *Generators) NextFaction() FactionID         { return FactionID(g.nextOf(KindFaction)) }
func (g *Generators) NextFigure() FigureID           { return FigureID(g.nextOf(KindFigure)) }
func (g *Generators) NextSettlement() SettlementID   { return SettlementID(g.nextOf(KindSettlement)) }
func (g *Generators) NextEvent() EventID              { return EventID(g.nextOf(KindEvent)) }
func (g *Generators) NextArtifact() ArtifactID        { return ArtifactID(g.nextOf(KindArtifact)) }
func (g *Generators) NextMonument() MonumentID        { return MonumentID(g.nextOf(KindMonument)) }
func (g *Generators) NextDynasty() DynastyID          { return DynastyID(g.nextOf(KindDynasty)) }
func (g *Generators) NextWar() WarID                  { return WarID(g.nextOf(KindWar)) }
func (g *Generators) NextArmy() ArmyID                { return ArmyID(g.nextOf(KindArmy)) }
func (g *Generators) NextSiege() SiegeID              { return SiegeID(g.nextOf(KindSiege)) }
func (g *Generators) NextTradeRoute() TradeRouteID    { return TradeRouteID(g.nextOf(KindTradeRoute)) }
func (g *Generators) NextCreatureSpecies() CreatureSpeciesID {
	return CreatureSpeciesID(g.nextOf(KindCreatureSpecies))
}
func (g *Generators) NextLegendaryCreature() LegendaryCreatureID {
	return LegendaryCreatureID(g.nextOf(KindLegendaryCreature))
}
func (g *Generators) NextPopulation() PopulationID { return PopulationID(g.nextOf(KindPopulation)) }
func (g *Generators) NextDeity() DeityID              { return DeityID(g.nextOf(KindDeity)) }
func (g *Generators) NextReligion() ReligionID        { return ReligionID(g.nextOf(KindReligion)) }
func (g *Generators) NextCult() CultID                { return CultID(g.nextOf(KindCult)) }
func (g *Generators) NextTribe() TribeID              { return TribeID(g.nextOf(KindTribe)) }
func (g *Generators) NextColonist() ColonistID        { return ColonistID(g.nextOf(KindColonist)) }
func (g *Generators) NextCharacter() CharacterID      { return CharacterID(g.nextOf(KindCharacter)) }
func (g *Generators) NextStructure() StructureID      { return StructureID(g.nextOf(KindStructure)) }
func (g *Generators) NextWorkplace() WorkplaceID      { return WorkplaceID(g.nextOf(KindWorkplace)) }
func (g *Generators) NextJob() JobID                  { return JobID(g.nextOf(KindJob)) }
func (g *Generators) NextMonster() MonsterID          { return MonsterID(g.nextOf(KindMonster)) }
func (g *Generators) NextFauna() FaunaID              { return FaunaID(g.nextOf(KindFauna)) }

// Observe bumps the internal counter for kind k so that subsequent Next* calls
// never reissue an ID at or below seen. Used when rebuilding generators from
// a loaded WorldHistory's maximum observed ID per kind.
func (g *Generators) Observe(k Kind, seen uint64) {
	if seen > g.next[k] {
		g.next[k] = seen
	}
}
