// Package monster implements wild creature populations and named
// legendary creatures: size/intelligence-derived behavior, leaderless
// population scatter versus organized-raid aggression, and legendary
// creature lifecycle. Grounded on
// original_source/src/history/creatures/{anatomy,behavior,populations,
// legendary}.rs, which have no teacher-repo analogue; re-expressed in the
// teacher's table-driven enum+constructor idiom (internal/society's
// succession name generation) rather than transliterated from Rust.
package monster

import (
	"math/rand"

	"github.com/talgya/worldhistory/internal/ids"
	"github.com/talgya/worldhistory/internal/world"
)

// Size is a creature species' relative bulk, driving base aggression and
// pack tendency.
type Size uint8

const (
	SizeTiny Size = iota
	SizeSmall
	SizeMedium
	SizeLarge
	SizeHuge
	SizeGargantuan
	SizeColossal
)

func (s Size) baseAggression() float64 {
	switch s {
	case SizeTiny:
		return 0.2
	case SizeSmall:
		return 0.3
	case SizeMedium:
		return 0.5
	case SizeLarge:
		return 0.6
	case SizeHuge:
		return 0.7
	case SizeGargantuan:
		return 0.8
	case SizeColossal:
		return 0.9
	default:
		return 0.5
	}
}

func (s Size) basePackTendency() float64 {
	switch s {
	case SizeTiny, SizeSmall:
		return 0.7
	case SizeMedium:
		return 0.5
	case SizeLarge:
		return 0.3
	default:
		return 0.1
	}
}

// Intelligence gates whether a species can produce a leader and how much
// it hoards treasure or builds a lair.
type Intelligence uint8

const (
	Mindless Intelligence = iota
	Instinctual
	Cunning
	Sapient
	Genius
)

func (i Intelligence) CanLead() bool { return i >= Cunning }

func (i Intelligence) baseHoarding() float64 {
	switch i {
	case Mindless, Instinctual:
		return 0.0
	case Cunning:
		return 0.2
	case Sapient:
		return 0.5
	case Genius:
		return 0.8
	default:
		return 0
	}
}

func (i Intelligence) baseLairBuilding() float64 {
	switch i {
	case Mindless:
		return 0.0
	case Instinctual:
		return 0.3
	case Cunning:
		return 0.5
	default:
		return 0.8
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func vary(base float64, rng *rand.Rand) float64 {
	return clamp01(base + (rng.Float64()*0.4 - 0.2))
}

// Behavior holds a species' behavioral tendencies, all in [0, 1].
type Behavior struct {
	Aggression       float64
	Territoriality   float64
	PackTendency     float64
	AmbushTendency   float64
	TreasureHoarding float64
	LairBuilding     float64
	Migration        float64
}

// GenerateBehavior derives a species' behavior from its size and
// intelligence, with independent random variance per axis, matching the
// original's CreatureBehavior::generate.
func GenerateBehavior(size Size, intel Intelligence, rng *rand.Rand) Behavior {
	ambushBase := 0.1
	if intel >= Cunning {
		ambushBase = 0.5
	}
	return Behavior{
		Aggression:       vary(size.baseAggression(), rng),
		Territoriality:   vary(0.5, rng),
		PackTendency:     vary(size.basePackTendency(), rng),
		AmbushTendency:   vary(ambushBase, rng),
		TreasureHoarding: vary(intel.baseHoarding(), rng),
		LairBuilding:     vary(intel.baseLairBuilding(), rng),
		Migration:        vary(0.3, rng),
	}
}

func (b Behavior) IsAggressive() bool    { return b.Aggression > 0.6 }
func (b Behavior) HoardsTreasure() bool  { return b.TreasureHoarding > 0.4 }

// Species is a kind of wild creature, shared by every Population of it.
type Species struct {
	ID           ids.CreatureSpeciesID
	Name         string
	Size         Size
	Intelligence Intelligence
	Behavior     Behavior
}

// Population is one localized group of a species: leaderless populations
// are scattered threats, while a population with a legendary leader
// organizes into a raiding force.
type Population struct {
	ID         ids.PopulationID
	SpeciesID  ids.CreatureSpeciesID
	Count      uint32
	Location   world.HexCoord
	Territory  []world.HexCoord
	Leader     *ids.LegendaryCreatureID
	Aggression float64
	LastRaidTick *uint64
}

// NewPopulation seeds a population at its starting location, matching the
// original's default 0.3 aggression for a leaderless group.
func NewPopulation(id ids.PopulationID, species ids.CreatureSpeciesID, count uint32, loc world.HexCoord) *Population {
	return &Population{
		ID: id, SpeciesID: species, Count: count, Location: loc,
		Territory: []world.HexCoord{loc}, Aggression: 0.3,
	}
}

func (p *Population) IsOrganized() bool { return p.Leader != nil }

// SetLeader installs a legendary creature as this population's leader,
// raising its aggression the way acquiring an organizing will does.
func (p *Population) SetLeader(leader ids.LegendaryCreatureID) {
	p.Leader = &leader
	p.Aggression = clamp01(p.Aggression + 0.3)
}

// RemoveLeader strips leadership (killed, fled), scattering the
// population back toward baseline aggression.
func (p *Population) RemoveLeader() {
	p.Leader = nil
	p.Aggression = p.Aggression - 0.4
	if p.Aggression < 0 {
		p.Aggression = 0
	}
}

// WillRaid reports whether this population is organized and aggressive
// enough to raid a settlement this tick.
func (p *Population) WillRaid() bool {
	return p.IsOrganized() && p.Aggression > 0.5
}

// AdjustCount grows or shrinks the population by delta, never going
// negative.
func (p *Population) AdjustCount(delta int32) {
	if delta >= 0 {
		p.Count += uint32(delta)
		return
	}
	loss := uint32(-delta)
	if loss >= p.Count {
		p.Count = 0
		return
	}
	p.Count -= loss
}

func (p *Population) IsExtinct() bool { return p.Count == 0 }

// Legendary is a uniquely named creature with a personal history: lair,
// hoard, kills, and an optional cult following.
type Legendary struct {
	ID             ids.LegendaryCreatureID
	SpeciesID      ids.CreatureSpeciesID
	Name           string
	Epithet        string
	SizeMultiplier float64
	BirthTick      uint64
	DeathTick      *uint64
	LairLocation   *world.HexCoord
	Territory      []world.HexCoord
	Kills          []ids.EntityID
	CultFactionID  *ids.FactionID
	Worshippers    uint32
}

// NewLegendary constructs a legendary creature at birth, size multiplier
// and abilities generated separately via GenerateSizeMultiplier.
func NewLegendary(id ids.LegendaryCreatureID, species ids.CreatureSpeciesID, name, epithet string, birthTick uint64) *Legendary {
	return &Legendary{
		ID: id, SpeciesID: species, Name: name, Epithet: epithet,
		SizeMultiplier: 1.0, BirthTick: birthTick,
	}
}

func (l *Legendary) FullName() string { return l.Name + " " + l.Epithet }
func (l *Legendary) IsAlive() bool    { return l.DeathTick == nil }
func (l *Legendary) IsWorshipped() bool {
	return l.CultFactionID != nil || l.Worshippers > 0
}

// GenerateSizeMultiplier rolls a 1.2-3.0 multiplier, matching the original
// legendary creatures skewing larger than their base species.
func (l *Legendary) GenerateSizeMultiplier(rng *rand.Rand) {
	l.SizeMultiplier = 1.2 + rng.Float64()*(3.0-1.2)
}

// Kill records this legendary creature's death at the given tick.
func (l *Legendary) Kill(tick uint64) { l.DeathTick = &tick }

var legendaryPrefixes = [...]string{
	"Vrak", "Thorn", "Kael", "Drak", "Sha", "Grim", "Mol", "Zar",
	"Bael", "Kor", "Nyx", "Ash", "Syl", "Mor", "Xar", "Ith",
	"Gol", "Fyr", "Vel", "Kron",
}

var legendarySuffixes = [...]string{
	"orath", "maw", "fang", "gor", "thax", "moth", "zul", "nak",
	"drek", "rok", "iel", "ath", "en", "ur", "ax", "ul",
	"gar", "esh", "ix", "on",
}

var legendaryEpithets = [...]string{
	"the Devourer", "the Eternal", "the Ravenous", "the Undying",
	"the Terrible", "the Ancient", "the Dreaded", "the Corrupted",
	"the Desolator", "the Nightmare", "the Shadow", "the Merciless",
	"World-Eater", "Flame-Born", "Death-Bringer", "Soul-Reaper",
	"the Insatiable", "the Voracious", "Plague-Bearer", "Storm-Caller",
	"the Unending", "the Profane", "Bone-Crusher", "Sky-Render",
}

// GenerateLegendaryName produces a procedurally assembled name and
// epithet, matching the original's prefix/suffix/epithet tables.
func GenerateLegendaryName(rng *rand.Rand) (name, epithet string) {
	prefix := legendaryPrefixes[rng.Intn(len(legendaryPrefixes))]
	suffix := legendarySuffixes[rng.Intn(len(legendarySuffixes))]
	epithet = legendaryEpithets[rng.Intn(len(legendaryEpithets))]
	return prefix + suffix, epithet
}
