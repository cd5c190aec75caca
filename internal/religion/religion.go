// Package religion implements deities, the religions built around them,
// and the breakaway cults a religion can spawn, all persistent entities
// with no teacher-repo analogue. Grounded on spec.md §3's
// Deity/Religion/Cult entity kinds and the HolyWarDeclared/ReligionFounded
// event types named in spec.md §4.1; re-expressed in the teacher's
// map-keyed-by-ID store idiom.
package religion

import (
	"github.com/talgya/worldhistory/internal/ids"
	"github.com/talgya/worldhistory/internal/worldtime"
)

// Domain is a deity's sphere of influence, shaping which tribes favor it.
type Domain uint8

const (
	DomainWar Domain = iota
	DomainHarvest
	DomainDeath
	DomainSea
	DomainSky
	DomainTrickery
	DomainCraft
)

func (d Domain) String() string {
	names := [...]string{"war", "harvest", "death", "sea", "sky", "trickery", "craft"}
	if int(d) < len(names) {
		return names[d]
	}
	return "unknown"
}

// Deity is a named object of worship.
type Deity struct {
	ID         ids.DeityID
	Name       string
	Domain     Domain
	Benevolent bool
}

// Religion is an organized faith built around a deity.
type Religion struct {
	ID        ids.ReligionID
	Name      string
	Deity     ids.DeityID
	Founded   worldtime.Date
	Founder   ids.EntityID
	Adherents map[ids.TribeID]bool
}

// Convert adds a tribe as an adherent of this religion.
func (r *Religion) Convert(tribe ids.TribeID) {
	if r.Adherents == nil {
		r.Adherents = make(map[ids.TribeID]bool)
	}
	r.Adherents[tribe] = true
}

// IsAdherent reports whether a tribe follows this religion.
func (r *Religion) IsAdherent(tribe ids.TribeID) bool {
	return r.Adherents[tribe]
}

// Cult is a breakaway sect of a religion, possibly secretive or heretical
// relative to its parent's orthodoxy.
type Cult struct {
	ID        ids.CultID
	Name      string
	Religion  ids.ReligionID
	Founded   worldtime.Date
	Secretive bool
	Heretical bool
}

// Store holds every deity, religion, and cult a world has produced.
type Store struct {
	deities   map[ids.DeityID]*Deity
	religions map[ids.ReligionID]*Religion
	cults     map[ids.CultID]*Cult
}

func NewStore() *Store {
	return &Store{
		deities:   make(map[ids.DeityID]*Deity),
		religions: make(map[ids.ReligionID]*Religion),
		cults:     make(map[ids.CultID]*Cult),
	}
}

func (s *Store) CreateDeity(id ids.DeityID, name string, domain Domain, benevolent bool) *Deity {
	d := &Deity{ID: id, Name: name, Domain: domain, Benevolent: benevolent}
	s.deities[id] = d
	return d
}

func (s *Store) Deity(id ids.DeityID) (*Deity, bool) {
	d, ok := s.deities[id]
	return d, ok
}

func (s *Store) FoundReligion(id ids.ReligionID, name string, deity ids.DeityID, founder ids.EntityID, date worldtime.Date) *Religion {
	r := &Religion{ID: id, Name: name, Deity: deity, Founder: founder, Founded: date}
	s.religions[id] = r
	return r
}

func (s *Store) Religion(id ids.ReligionID) (*Religion, bool) {
	r, ok := s.religions[id]
	return r, ok
}

func (s *Store) FormCult(id ids.CultID, name string, parent ids.ReligionID, date worldtime.Date, secretive bool) *Cult {
	c := &Cult{ID: id, Name: name, Religion: parent, Founded: date, Secretive: secretive}
	s.cults[id] = c
	return c
}

func (s *Store) Cult(id ids.CultID) (*Cult, bool) {
	c, ok := s.cults[id]
	return c, ok
}

// CultsOf returns every cult that broke away from a religion.
func (s *Store) CultsOf(religion ids.ReligionID) []*Cult {
	var out []*Cult
	for _, c := range s.cults {
		if c.Religion == religion {
			out = append(out, c)
		}
	}
	return out
}
