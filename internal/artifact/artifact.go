// Package artifact implements named, ownable artifacts and the monuments
// built to commemorate historical events, both persistent entities with
// no teacher-repo analogue. Grounded on spec.md §3's Artifact/Monument
// entity kinds and original_source/src/history/creatures/legendary.rs's
// relic-ownership idea (a legendary creature's hoard changes hands across
// history); re-expressed in the teacher's map-keyed-by-ID store idiom.
package artifact

import (
	"github.com/talgya/worldhistory/internal/ids"
	"github.com/talgya/worldhistory/internal/worldtime"
)

// Artifact is a named creation whose provenance is an append-only chain
// of owners: OwnerHistory is only ever appended to, never rewritten,
// matching spec's artifact ownership-history invariant.
type Artifact struct {
	ID           ids.ArtifactID
	Name         string
	Creator      ids.EntityID
	Created      worldtime.Date
	OwnerHistory []ids.EntityID
	Legendary    bool
	Lost         bool
}

// CurrentOwner is the most recent entry in OwnerHistory, or the creator
// if the artifact has never changed hands.
func (a *Artifact) CurrentOwner() ids.EntityID {
	return a.OwnerHistory[len(a.OwnerHistory)-1]
}

// TransferTo appends a new owner. A no-op if owner already holds it, so
// repeated ticks of the same ownership never pad the history.
func (a *Artifact) TransferTo(owner ids.EntityID) {
	if a.CurrentOwner() == owner {
		return
	}
	a.OwnerHistory = append(a.OwnerHistory, owner)
}

// Store holds every artifact ever created.
type Store struct {
	artifacts map[ids.ArtifactID]*Artifact
}

func NewStore() *Store {
	return &Store{artifacts: make(map[ids.ArtifactID]*Artifact)}
}

func (s *Store) Create(id ids.ArtifactID, name string, creator ids.EntityID, date worldtime.Date, legendary bool) *Artifact {
	a := &Artifact{
		ID: id, Name: name, Creator: creator, Created: date,
		OwnerHistory: []ids.EntityID{creator}, Legendary: legendary,
	}
	s.artifacts[id] = a
	return a
}

func (s *Store) Get(id ids.ArtifactID) (*Artifact, bool) {
	a, ok := s.artifacts[id]
	return a, ok
}

// OwnedBy returns every non-lost artifact currently held by owner.
func (s *Store) OwnedBy(owner ids.EntityID) []*Artifact {
	var out []*Artifact
	for _, a := range s.artifacts {
		if !a.Lost && a.CurrentOwner() == owner {
			out = append(out, a)
		}
	}
	return out
}

// Monument is a built structure commemorating a figure, event, or deed,
// standing independent of the settlement that built it for historical
// queries even after the settlement's own fate changes.
type Monument struct {
	ID           ids.MonumentID
	Name         string
	Location     ids.SettlementID
	Built        worldtime.Date
	Commemorates *ids.EventID
	Destroyed    bool
}

// MonumentStore holds every monument ever built.
type MonumentStore struct {
	monuments map[ids.MonumentID]*Monument
}

func NewMonumentStore() *MonumentStore {
	return &MonumentStore{monuments: make(map[ids.MonumentID]*Monument)}
}

func (s *MonumentStore) Build(id ids.MonumentID, name string, location ids.SettlementID, date worldtime.Date, commemorates *ids.EventID) *Monument {
	m := &Monument{ID: id, Name: name, Location: location, Built: date, Commemorates: commemorates}
	s.monuments[id] = m
	return m
}

func (s *MonumentStore) Get(id ids.MonumentID) (*Monument, bool) {
	m, ok := s.monuments[id]
	return m, ok
}

// AtSettlement returns every standing (non-destroyed) monument at a
// settlement.
func (s *MonumentStore) AtSettlement(location ids.SettlementID) []*Monument {
	var out []*Monument
	for _, m := range s.monuments {
		if m.Location == location && !m.Destroyed {
			out = append(out, m)
		}
	}
	return out
}
