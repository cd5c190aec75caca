// Package war implements the persistent War/Army/Siege entities a
// declared conflict tracks across its lifetime, distinct from
// internal/conflict's per-engagement strength snapshot. Grounded on
// spec.md §3's War/Army/Siege entity kinds and
// original_source/src/simulation/interaction/conflict.rs's engagement
// model, which has no persistent-entity analogue in the teacher repo;
// re-expressed in the teacher's map-keyed-by-ID store idiom
// (internal/reputation.Table, internal/monster's species/population
// stores).
package war

import (
	"fmt"

	"github.com/talgya/worldhistory/internal/ids"
	"github.com/talgya/worldhistory/internal/worldtime"
)

// War is a declared state of armed conflict between one or more aggressor
// tribes and one or more defender tribes.
type War struct {
	ID         ids.WarID
	Cause      string
	Aggressors []ids.TribeID
	Defenders  []ids.TribeID
	Declared   worldtime.Date
	Ended      *worldtime.Date
	Victor     *ids.TribeID
}

// IsActive reports whether this war has not yet ended.
func (w *War) IsActive() bool { return w.Ended == nil }

// Involves reports whether t fights on either side of this war.
func (w *War) Involves(t ids.TribeID) bool {
	for _, a := range w.Aggressors {
		if a == t {
			return true
		}
	}
	for _, d := range w.Defenders {
		if d == t {
			return true
		}
	}
	return false
}

// End concludes a war. Victor is set once and never overwritten by a
// later call, matching spec's "victor set once" invariant; a nil victor
// records a negotiated peace with no clear winner.
func (w *War) End(date worldtime.Date, victor *ids.TribeID) {
	if w.Ended != nil {
		return
	}
	w.Ended = &date
	if w.Victor == nil {
		w.Victor = victor
	}
}

// Store holds every war ever declared, living or concluded.
type Store struct {
	wars map[ids.WarID]*War
}

func NewStore() *Store {
	return &Store{wars: make(map[ids.WarID]*War)}
}

// Declare starts a new war, rejecting any tribe listed as both aggressor
// and defender, matching spec's `aggressors ∩ defenders = ∅` invariant.
func (s *Store) Declare(id ids.WarID, aggressors, defenders []ids.TribeID, cause string, date worldtime.Date) (*War, error) {
	for _, a := range aggressors {
		for _, d := range defenders {
			if a == d {
				return nil, fmt.Errorf("war: tribe %d cannot fight on both sides of the same war", a)
			}
		}
	}
	w := &War{
		ID: id, Cause: cause,
		Aggressors: append([]ids.TribeID(nil), aggressors...),
		Defenders:  append([]ids.TribeID(nil), defenders...),
		Declared:   date,
	}
	s.wars[id] = w
	return w, nil
}

func (s *Store) Get(id ids.WarID) (*War, bool) {
	w, ok := s.wars[id]
	return w, ok
}

// Active returns every war still ongoing.
func (s *Store) Active() []*War {
	var out []*War
	for _, w := range s.wars {
		if w.IsActive() {
			out = append(out, w)
		}
	}
	return out
}

// InvolvingTribe returns every war, active or concluded, that t fought in.
func (s *Store) InvolvingTribe(t ids.TribeID) []*War {
	var out []*War
	for _, w := range s.wars {
		if w.Involves(t) {
			out = append(out, w)
		}
	}
	return out
}

// Army is a tribe's standing military force raised for a war, tracked as
// a persistent entity across ticks (as opposed to internal/conflict.Army,
// an ephemeral per-engagement strength figure computed fresh each tick).
type Army struct {
	ID        ids.ArmyID
	Tribe     ids.TribeID
	War       *ids.WarID
	Strength  float64
	Disbanded bool
}

// Disband marks an army no longer fielded; it is never removed from the
// store so historical queries can still find it.
func (a *Army) Disband() { a.Disbanded = true }

// ArmyStore holds every army ever raised.
type ArmyStore struct {
	armies map[ids.ArmyID]*Army
}

func NewArmyStore() *ArmyStore {
	return &ArmyStore{armies: make(map[ids.ArmyID]*Army)}
}

func (s *ArmyStore) Raise(id ids.ArmyID, tribe ids.TribeID, strength float64, war *ids.WarID) *Army {
	a := &Army{ID: id, Tribe: tribe, Strength: strength, War: war}
	s.armies[id] = a
	return a
}

func (s *ArmyStore) Get(id ids.ArmyID) (*Army, bool) {
	a, ok := s.armies[id]
	return a, ok
}

// ForTribe returns every non-disbanded army a tribe currently fields.
func (s *ArmyStore) ForTribe(tribe ids.TribeID) []*Army {
	var out []*Army
	for _, a := range s.armies {
		if a.Tribe == tribe && !a.Disbanded {
			out = append(out, a)
		}
	}
	return out
}

// SiegeOutcome is how a siege was resolved.
type SiegeOutcome uint8

const (
	SiegeOngoing SiegeOutcome = iota
	SiegeBroken                // defenders held, attacker withdrew
	SiegeSuccessful            // settlement taken
)

// Siege is an army's sustained assault on a settlement for the duration
// of a war.
type Siege struct {
	ID         ids.SiegeID
	War        ids.WarID
	Attacker   ids.TribeID
	Settlement ids.SettlementID
	Began      worldtime.Date
	Ended      *worldtime.Date
	Outcome    SiegeOutcome
}

// Resolve concludes a siege exactly once; a second call is a no-op so a
// settled outcome can never be overwritten.
func (sg *Siege) Resolve(date worldtime.Date, outcome SiegeOutcome) {
	if sg.Ended != nil {
		return
	}
	sg.Ended = &date
	sg.Outcome = outcome
}

// SiegeStore holds every siege ever begun.
type SiegeStore struct {
	sieges map[ids.SiegeID]*Siege
}

func NewSiegeStore() *SiegeStore {
	return &SiegeStore{sieges: make(map[ids.SiegeID]*Siege)}
}

func (s *SiegeStore) Begin(id ids.SiegeID, war ids.WarID, attacker ids.TribeID, settlement ids.SettlementID, date worldtime.Date) *Siege {
	sg := &Siege{ID: id, War: war, Attacker: attacker, Settlement: settlement, Began: date, Outcome: SiegeOngoing}
	s.sieges[id] = sg
	return sg
}

func (s *SiegeStore) Get(id ids.SiegeID) (*Siege, bool) {
	sg, ok := s.sieges[id]
	return sg, ok
}

// OngoingAt returns every siege still unresolved at the given settlement.
func (s *SiegeStore) OngoingAt(settlement ids.SettlementID) []*Siege {
	var out []*Siege
	for _, sg := range s.sieges {
		if sg.Settlement == settlement && sg.Outcome == SiegeOngoing {
			out = append(out, sg)
		}
	}
	return out
}
