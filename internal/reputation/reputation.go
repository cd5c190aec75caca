// Package reputation tracks how a tribe is regarded by each fantastical
// species/monster kind it has encountered: a disposition-bounded score with
// momentum-gated decay back toward baseline. Grounded on
// original_source/src/simulation/interaction/reputation.rs, which has no
// teacher-repo analogue; re-expressed in the teacher's table-driven
// enum+method idiom (internal/tech.Age's requirement tables) rather than
// transliterated from Rust.
package reputation

import "github.com/talgya/worldhistory/internal/ids"

// Disposition is a species' innate stance, bounding how far reputation can
// swing in either direction.
type Disposition uint8

const (
	AlwaysHostile Disposition = iota
	Territorial
	Neutral
	Mythical
	Undead
)

// Baseline is the reputation score a species starts at and decays toward.
func (d Disposition) Baseline() int8 {
	switch d {
	case AlwaysHostile:
		return -75
	case Territorial:
		return -30
	case Neutral:
		return 0
	case Mythical:
		return 20
	case Undead:
		return -100
	default:
		return 0
	}
}

// MaxPositive is the highest reputation score obtainable against this
// disposition, matching the original's max_positive table.
func (d Disposition) MaxPositive() int8 {
	switch d {
	case AlwaysHostile:
		return -25
	case Territorial:
		return 20
	case Neutral:
		return 50
	case Mythical:
		return 80
	case Undead:
		return -50
	default:
		return 50
	}
}

// Event is something that happened between a tribe and a species this
// tick, driving a reputation adjustment.
type Event uint8

const (
	KilledSignificant Event = iota
	KilledRegular
	AttackedNoKill
	MonsterFled
	PeacefulCoexistence
)

// Delta is the reputation change an event causes, matching the original's
// reputation_change table.
func (e Event) Delta() int8 {
	switch e {
	case KilledSignificant:
		return -25
	case KilledRegular:
		return -15
	case AttackedNoKill:
		return -5
	case MonsterFled:
		return 2
	case PeacefulCoexistence:
		return 1
	default:
		return 0
	}
}

// decayMomentum is how many ticks an adjustment blocks subsequent decay
// from pulling the score back toward baseline.
const decayMomentum = 20

// Record is one tribe's standing with one species.
type Record struct {
	Disposition Disposition
	Score       int8
	momentum    int
}

// NewRecord seeds a record at its disposition's baseline.
func NewRecord(d Disposition) *Record {
	return &Record{Disposition: d, Score: d.Baseline()}
}

// Adjust applies an event's delta, clamping the result to
// [-100, maxPositive], and resets decay momentum.
func (r *Record) Adjust(e Event) {
	v := int16(r.Score) + int16(e.Delta())
	lo, hi := int16(-100), int16(r.Disposition.MaxPositive())
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	r.Score = int8(v)
	r.momentum = decayMomentum
}

// Decay nudges the score one point toward baseline, but only once momentum
// from the last Adjust call has fully elapsed.
func (r *Record) Decay() {
	if r.momentum > 0 {
		r.momentum--
		return
	}
	switch {
	case r.Score > r.Disposition.Baseline():
		r.Score--
	case r.Score < r.Disposition.Baseline():
		r.Score++
	}
}

// IsFearful reports a species cowed by a tribe's strength: high positive
// standing, the opposite end of the scale from hostile/vengeful.
func (r *Record) IsFearful() bool  { return r.Score >= 30 }
func (r *Record) IsTolerant() bool { return r.Score >= 0 }
func (r *Record) IsHostile() bool  { return r.Score <= -30 }
func (r *Record) IsVengeful() bool { return r.Score <= -60 }

// StatusLabel gives a human-facing summary of standing, used by chronicle
// narration.
func (r *Record) StatusLabel() string {
	switch {
	case r.IsVengeful():
		return "vengeful"
	case r.IsHostile():
		return "hostile"
	case r.IsFearful():
		return "fearful"
	case r.IsTolerant():
		return "tolerant"
	default:
		return "wary"
	}
}

// AggressionModifier scales a species' initiated-attack likelihood: a
// vengeful or hostile species strikes more readily, a tolerant species
// holds back, and a fearful species mostly avoids conflict outright.
func (r *Record) AggressionModifier() float64 {
	switch {
	case r.IsVengeful():
		return 0.3
	case r.IsHostile():
		return 0.1
	case r.IsFearful():
		return -0.5
	case r.IsTolerant():
		return -0.2
	default:
		return 0.0
	}
}

// ShouldSkipTribe reports whether a species this fearful of a tribe avoids
// it entirely this tick rather than engaging.
func (r *Record) ShouldSkipTribe() bool {
	return r.IsFearful()
}

// Table holds every (tribe, species) reputation record a world tracks.
type Table struct {
	records map[ids.TribeID]map[string]*Record
}

func NewTable() *Table {
	return &Table{records: make(map[ids.TribeID]map[string]*Record)}
}

// Get returns the record for a tribe/species pair, creating it at the
// disposition's baseline if absent.
func (t *Table) Get(tribe ids.TribeID, species string, d Disposition) *Record {
	bySpecies, ok := t.records[tribe]
	if !ok {
		bySpecies = make(map[string]*Record)
		t.records[tribe] = bySpecies
	}
	r, ok := bySpecies[species]
	if !ok {
		r = NewRecord(d)
		bySpecies[species] = r
	}
	return r
}

// DecayAll runs Decay on every tracked record, called once per tick.
func (t *Table) DecayAll() {
	for _, bySpecies := range t.records {
		for _, r := range bySpecies {
			r.Decay()
		}
	}
}

// TribeRecord pairs a stored record with the tribe/species key it lives
// under, exported for a persistence layer to serialize.
type TribeRecord struct {
	Tribe   ids.TribeID
	Species string
	Record  *Record
}

// All returns every stored record across every tribe, in no particular
// order.
func (t *Table) All() []TribeRecord {
	out := make([]TribeRecord, 0, len(t.records))
	for tribe, bySpecies := range t.records {
		for species, r := range bySpecies {
			out = append(out, TribeRecord{Tribe: tribe, Species: species, Record: r})
		}
	}
	return out
}
