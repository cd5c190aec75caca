// Package worldhistory is the top-level entity store: every subsystem
// reads and mutates this shared WorldHistory through typed IDs, never
// through direct references. Grounded on the teacher's engine.Simulation
// (internal/engine/simulation.go) for the "one struct owns everything,
// keyed lookups beside it" shape, generalized from the teacher's flat
// Settlements/Agents slices into the ID-generator-backed entity stores
// spec.md's data model requires.
package worldhistory

import (
	"github.com/talgya/worldhistory/internal/ids"
	"github.com/talgya/worldhistory/internal/jobs"
	"github.com/talgya/worldhistory/internal/needs"
	"github.com/talgya/worldhistory/internal/poolpop"
	"github.com/talgya/worldhistory/internal/society"
	"github.com/talgya/worldhistory/internal/stockpile"
	"github.com/talgya/worldhistory/internal/tech"
	"github.com/talgya/worldhistory/internal/world"
)

// Government is the tribe's governance form, driving succession method
// selection (internal/society.Method).
type Government uint8

const (
	GovChiefdom Government = iota
	GovHereditaryMonarchy
	GovTheocracy
	GovTribalCouncil
	GovWarlordship
	GovMerchantRepublic
)

func (g Government) SuccessionMethod() society.Method {
	switch g {
	case GovHereditaryMonarchy:
		return society.Hereditary
	case GovTheocracy:
		return society.Divine
	case GovTribalCouncil:
		return society.ElderCouncil
	case GovWarlordship:
		return society.Coup
	case GovMerchantRepublic:
		return society.WealthElection
	default:
		return society.Election
	}
}

// Culture is a tribe's shared cultural identity, distinct from any one
// colonist's personal Traits.
type Culture struct {
	Name              string
	WarInclination    float32
	ReligiousFervor   float32
	TradeInclination  float32
}

// Tribe is one self-governing population center: its pool/notable
// population, stockpile, territory, technology, government, and
// diplomatic/reputation identity all key off this entity's TribeID.
type Tribe struct {
	ID          ids.TribeID
	Name        string
	Culture     Culture
	Government  Government
	Capital     world.HexCoord
	// CapitalSettlement is the tribe's chronicle-location identity: spec.md
	// models settlements as a separate entity from the colony-political
	// Tribe, but this codebase folds the settlement into the tribe that
	// governs it (there is exactly one settlement per tribe). The ID is
	// kept distinct so internal/chronicle's location index, built around
	// ids.SettlementID, keeps working unchanged.
	CapitalSettlement ids.SettlementID
	Age         tech.Age
	ResearchPts float64

	Pool       *poolpop.Pool
	Notables   []ids.ColonistID // notables live in WorldHistory.Colonists
	Workplaces []*jobs.Workplace

	Stockpile *stockpile.Stockpile
	Needs     needs.State

	Dynasty    *society.Dynasty
	Succession society.State // Succession.LeaderID is the tribe's current leader

	Founded    uint64 // tick founded
	Dissolved  *uint64
	Warriors   uint64
}

// TotalPopulation sums pool and notable population, matching spec's
// invariant total_colony_population = pool.total + notables.count.
func (t *Tribe) TotalPopulation() uint64 {
	pool := uint64(0)
	if t.Pool != nil {
		pool = t.Pool.Total()
	}
	return pool + uint64(len(t.Notables))
}

// IsAlive reports whether the tribe is still an active participant in the
// simulation (not dissolved and has population).
func (t *Tribe) IsAlive() bool {
	return t.Dissolved == nil && t.TotalPopulation() > 0
}

// Dissolve closes the tribe at the given tick; its entity remains for
// historical queries but it no longer participates in diplomacy,
// reputation, or territory bookkeeping.
func (t *Tribe) Dissolve(tick uint64) {
	t.Dissolved = &tick
}

// MilitaryStrength combines warrior count, tech-age military multiplier,
// and the needs-derived MilitaryModifier into one comparable figure used
// by internal/conflict.
func (t *Tribe) MilitaryStrength() float64 {
	return float64(t.Warriors) * t.Age.MilitaryMultiplier() * t.Needs.MilitaryModifier()
}

// NotableTargetFraction is the fraction of total population that should
// be individually tracked notables, matching spec's "~5% with a hard
// floor" target.
const NotableTargetFraction = 0.05

// NotableFloor is the minimum number of notables a living tribe always
// keeps, even at very small populations.
const NotableFloor = 3

// TargetNotableCount returns how many notables this tribe's population
// should support.
func (t *Tribe) TargetNotableCount() int {
	target := int(float64(t.TotalPopulation()) * NotableTargetFraction)
	if target < NotableFloor {
		target = NotableFloor
	}
	return target
}
