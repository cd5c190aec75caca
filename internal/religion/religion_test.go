package religion

import (
	"testing"

	"github.com/talgya/worldhistory/internal/ids"
	"github.com/talgya/worldhistory/internal/worldtime"
)

func TestFoundReligionThenConvertTracksAdherents(t *testing.T) {
	s := NewStore()
	deity := s.CreateDeity(1, "Ashara", DomainSky, true)
	rel := s.FoundReligion(1, "Cult of Ashara", deity.ID, ids.Figure(1), worldtime.Date{Year: 1})

	if rel.IsAdherent(5) {
		t.Fatal("expected no adherents before any Convert call")
	}
	rel.Convert(5)
	if !rel.IsAdherent(5) {
		t.Fatal("expected tribe 5 to be an adherent after Convert")
	}
}

func TestCultsOfFiltersByParentReligion(t *testing.T) {
	s := NewStore()
	s.FormCult(1, "The Hollow Flame", 10, worldtime.Date{Year: 2}, true)
	s.FormCult(2, "The Hollow Flame Splinter", 10, worldtime.Date{Year: 3}, true)
	s.FormCult(3, "Unrelated Sect", 20, worldtime.Date{Year: 2}, false)

	cults := s.CultsOf(10)
	if len(cults) != 2 {
		t.Fatalf("expected 2 cults under religion 10, got %d", len(cults))
	}
}
