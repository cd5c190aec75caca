// Package diplomacy implements pairwise tribe relations, treaty formation,
// and relation drift. Grounded on the teacher's engine/factions.go
// (setRelation, updateFactionInfluence) for the Go shape and
// original_source/src/simulation/interaction/diplomacy.rs for the treaty
// formation probabilities and drift-to-neutral semantics the distillation
// summarized only loosely.
package diplomacy

import (
	"math/rand"

	"github.com/talgya/worldhistory/internal/ids"
)

// Relation is a clamped [-100, 100] relation score between two tribes.
type Relation int8

const (
	MinRelation Relation = -100
	MaxRelation Relation = 100
)

func (r Relation) Adjust(delta int8) Relation {
	v := int16(r) + int16(delta)
	if v < int16(MinRelation) {
		v = int16(MinRelation)
	}
	if v > int16(MaxRelation) {
		v = int16(MaxRelation)
	}
	return Relation(v)
}

// pairKey canonicalizes a tribe pair with the smaller ID first, so relation
// storage never depends on call-site argument order.
type pairKey struct {
	a, b ids.TribeID
}

func normalize(a, b ids.TribeID) pairKey {
	if a <= b {
		return pairKey{a, b}
	}
	return pairKey{b, a}
}

// TreatyType enumerates the treaty kinds tribes can form.
type TreatyType uint8

const (
	TradeAgreement TreatyType = iota
	NonAggression
	DefensiveAlliance
	MilitaryAlliance
)

func (t TreatyType) String() string {
	names := [...]string{"trade agreement", "non-aggression pact", "defensive alliance", "military alliance"}
	if int(t) < len(names) {
		return names[t]
	}
	return "unknown treaty"
}

// Treaty is an active pact between two tribes, formed at FormedTick.
type Treaty struct {
	Type      TreatyType
	A, B      ids.TribeID
	FormedTick uint64
	ExpiresAt  *uint64 // nil means the treaty never expires on its own
}

func (t Treaty) Involves(tribe ids.TribeID) bool { return t.A == tribe || t.B == tribe }

func (t Treaty) IsExpired(tick uint64) bool {
	return t.ExpiresAt != nil && tick >= *t.ExpiresAt
}

// State holds every tribe-pair relation and every active treaty.
type State struct {
	relations map[pairKey]Relation
	treaties  []Treaty
}

func NewState() *State {
	return &State{relations: make(map[pairKey]Relation)}
}

// Get returns the relation between two tribes, silently creating and
// returning a neutral (0) relation if none exists yet. Callers rely on
// this insertion-or-get semantics — see DESIGN.md Open Question 3.
func (s *State) Get(a, b ids.TribeID) Relation {
	key := normalize(a, b)
	if r, ok := s.relations[key]; ok {
		return r
	}
	s.relations[key] = 0
	return 0
}

// Set overwrites the relation between two tribes.
func (s *State) Set(a, b ids.TribeID, r Relation) {
	s.relations[normalize(a, b)] = r
}

// AdjustRelation applies delta to the relation between two tribes,
// creating it at neutral first if absent.
func (s *State) AdjustRelation(a, b ids.TribeID, delta int8) {
	key := normalize(a, b)
	cur := s.Get(a, b)
	s.relations[key] = cur.Adjust(delta)
}

// AddTreaty records a new treaty.
func (s *State) AddTreaty(t Treaty) { s.treaties = append(s.treaties, t) }

// Treaties returns every treaty involving tribe.
func (s *State) Treaties(tribe ids.TribeID) []Treaty {
	var out []Treaty
	for _, t := range s.treaties {
		if t.Involves(tribe) {
			out = append(out, t)
		}
	}
	return out
}

// HasTreaty reports whether a and b share an active treaty of the given type.
func (s *State) HasTreaty(a, b ids.TribeID, tt TreatyType) bool {
	for _, t := range s.treaties {
		if t.Type == tt && ((t.A == a && t.B == b) || (t.A == b && t.B == a)) {
			return true
		}
	}
	return false
}

// HasNonAggression reports whether a and b are bound by any treaty that
// implies non-aggression (the treaty itself, or a stronger alliance).
func (s *State) HasNonAggression(a, b ids.TribeID) bool {
	return s.HasTreaty(a, b, NonAggression) ||
		s.HasTreaty(a, b, DefensiveAlliance) ||
		s.HasTreaty(a, b, MilitaryAlliance)
}

// CleanupExpired drops treaties whose ExpiresAt has passed.
func (s *State) CleanupExpired(tick uint64) {
	kept := s.treaties[:0:0]
	for _, t := range s.treaties {
		if !t.IsExpired(tick) {
			kept = append(kept, t)
		}
	}
	s.treaties = kept
}

// RelationEntry is one stored tribe-pair relation, exported for
// persistence (internal/persistence has no access to the unexported
// pairKey map itself).
type RelationEntry struct {
	A, B     ids.TribeID
	Relation Relation
}

// AllRelations returns every stored relation, in no particular order, for
// a persistence layer to serialize.
func (s *State) AllRelations() []RelationEntry {
	out := make([]RelationEntry, 0, len(s.relations))
	for k, r := range s.relations {
		out = append(out, RelationEntry{A: k.a, B: k.b, Relation: r})
	}
	return out
}

// AllTreaties returns every active treaty, for a persistence layer to
// serialize.
func (s *State) AllTreaties() []Treaty {
	out := make([]Treaty, len(s.treaties))
	copy(out, s.treaties)
	return out
}

// RemoveTribe purges every relation and treaty involving tribe, used when a
// tribe goes extinct (its entity remains in the store, but it drops out of
// diplomacy bookkeeping per spec's lifecycle rule).
func (s *State) RemoveTribe(tribe ids.TribeID) {
	for k := range s.relations {
		if k.a == tribe || k.b == tribe {
			delete(s.relations, k)
		}
	}
	kept := s.treaties[:0:0]
	for _, t := range s.treaties {
		if !t.Involves(tribe) {
			kept = append(kept, t)
		}
	}
	s.treaties = kept
}

// driftRate is the per-tick magnitude by which any nonzero relation moves
// toward neutral, matching the original's relation_drift_rate floor of 1.
const driftRate = 1

// Drift nudges every stored relation one step toward neutral.
func (s *State) Drift() {
	for k, r := range s.relations {
		switch {
		case r > 0:
			s.relations[k] = r.Adjust(-driftRate)
		case r < 0:
			s.relations[k] = r.Adjust(driftRate)
		}
	}
}

// ConsiderTreaties evaluates, for one ordered tribe pair, whether a new
// treaty forms this tick based on their current relation, matching the
// original's threshold/probability table:
//   relation >= 40  and no trade agreement      -> 10% chance of one
//   relation >= 60  and no defensive alliance   -> 5% chance of one
//   -20 <= relation < 20 and no non-aggression  -> 2% chance of one
// Returns the treaty type formed, or false if none formed this tick.
func (s *State) ConsiderTreaties(a, b ids.TribeID, tick uint64, rng *rand.Rand) (TreatyType, bool) {
	relation := s.Get(a, b)

	if relation >= 40 && !s.HasTreaty(a, b, TradeAgreement) && rng.Float64() < 0.10 {
		s.AddTreaty(Treaty{Type: TradeAgreement, A: a, B: b, FormedTick: tick})
		return TradeAgreement, true
	}
	if relation >= 60 && !s.HasTreaty(a, b, DefensiveAlliance) && rng.Float64() < 0.05 {
		s.AddTreaty(Treaty{Type: DefensiveAlliance, A: a, B: b, FormedTick: tick})
		return DefensiveAlliance, true
	}
	if relation >= -20 && relation < 20 && !s.HasNonAggression(a, b) && rng.Float64() < 0.02 {
		s.AddTreaty(Treaty{Type: NonAggression, A: a, B: b, FormedTick: tick})
		return NonAggression, true
	}
	return 0, false
}
