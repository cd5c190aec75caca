package engine

import (
	"math/rand"

	"github.com/talgya/worldhistory/internal/chronicle"
	"github.com/talgya/worldhistory/internal/colonist"
	"github.com/talgya/worldhistory/internal/ids"
	"github.com/talgya/worldhistory/internal/religion"
	"github.com/talgya/worldhistory/internal/worldhistory"
)

// religionFoundingChance is the per-tick chance a tribe whose religious
// fervor clears the threshold founds a religion this season.
const religionFoundingChance = 0.02

// religionFervorThreshold is the minimum culture.ReligiousFervor a tribe
// needs before it can found a religion of its own.
const religionFervorThreshold = 0.7

var deityDomains = []religion.Domain{
	religion.DomainWar, religion.DomainHarvest, religion.DomainDeath,
	religion.DomainSea, religion.DomainSky, religion.DomainTrickery, religion.DomainCraft,
}

// stepReligion founds a new deity and religion for tribes whose cultural
// fervor is high enough, recording the founding as a major chronicle event.
// Grounded on spec.md §3's Deity/Religion entity kinds and
// original_source's no-teacher-equivalent culture axes (war inclination,
// religious fervor) named explicitly in spec.md.
func stepReligion(w *worldhistory.WorldHistory, rng *rand.Rand) {
	for _, t := range w.LivingTribes() {
		if float64(t.Culture.ReligiousFervor) < religionFervorThreshold {
			continue
		}
		if rng.Float64() > religionFoundingChance {
			continue
		}
		founder, ok := t.Leader(w)
		var founderID ids.EntityID
		if ok {
			founderID = ids.Colonist(founder.ID)
		} else {
			founderID = ids.Tribe(t.ID)
		}

		domain := deityDomains[rng.Intn(len(deityDomains))]
		deity := w.Religions.CreateDeity(w.IDs.NextDeity(), t.Name+"'s patron", domain, rng.Float64() < 0.6)
		r := w.Religions.FoundReligion(w.IDs.NextReligion(), "Faith of "+deity.Name, deity.ID, founderID, w.CurrentDate)
		r.Convert(t.ID)

		w.Chronicle.Append(chronicle.NewEvent(
			w.IDs.NextEvent(), w.CurrentDate, chronicle.ReligionFounded,
			t.Name+" has founded a new faith around "+deity.Name, false,
		).WithFaction(t.ID))
	}
}

// masterworkChance is the per-tick chance a tribe's most skilled smith
// forges a lasting artifact.
const masterworkChance = 0.05

// masterworkSkillFloor is the minimum smithing skill level (on the 0-20
// skill ladder) a colonist needs before their work can become an artifact.
const masterworkSkillFloor = 14

// stepArtifacts lets each tribe's finest smith occasionally forge a named
// artifact, entering it into the artifact store with the smith as its
// first owner. Grounded on spec.md §3's Artifact entity and
// original_source/src/history/creatures/legendary.rs's relic-forging idea.
func stepArtifacts(w *worldhistory.WorldHistory, rng *rand.Rand) {
	for _, t := range w.LivingTribes() {
		smith := bestSmith(w, t)
		if smith == nil {
			continue
		}
		if smith.Skills.Level[colonist.SkillSmithing] < masterworkSkillFloor {
			continue
		}
		if rng.Float64() > masterworkChance {
			continue
		}

		legendary := smith.Skills.Level[colonist.SkillSmithing] >= 19
		a := w.Artifacts.Create(w.IDs.NextArtifact(), smith.Name+"'s masterwork", ids.Colonist(smith.ID), w.CurrentDate, legendary)

		w.Chronicle.Append(chronicle.NewEvent(
			w.IDs.NextEvent(), w.CurrentDate, chronicle.MasterworkCreated,
			smith.Name+" of "+t.Name+" has forged "+a.Name, false,
		).WithFaction(t.ID).WithParticipant(ids.Colonist(smith.ID)))
	}
}

func bestSmith(w *worldhistory.WorldHistory, t *worldhistory.Tribe) *colonist.Colonist {
	var best *colonist.Colonist
	for _, id := range t.Notables {
		c, ok := w.Colonists[id]
		if !ok || !c.Alive {
			continue
		}
		if best == nil || c.Skills.Level[colonist.SkillSmithing] > best.Skills.Level[colonist.SkillSmithing] {
			best = c
		}
	}
	return best
}

// monumentChance is the per-tick chance a tribe commemorates its most
// recent major chronicle event with a monument at its capital.
const monumentChance = 0.08

// stepMonuments builds a monument at a tribe's capital commemorating its
// most recent major event, when one hasn't already been commemorated.
// Grounded on spec.md §3's Monument entity kind.
func stepMonuments(w *worldhistory.WorldHistory, rng *rand.Rand) {
	for _, t := range w.LivingTribes() {
		if rng.Float64() > monumentChance {
			continue
		}
		event, ok := mostRecentMajorEventFor(w, t.ID)
		if !ok {
			continue
		}
		commemorated := false
		for _, m := range w.Monuments.AtSettlement(t.CapitalSettlement) {
			if m.Commemorates != nil && *m.Commemorates == event.ID {
				commemorated = true
				break
			}
		}
		if commemorated {
			continue
		}

		eventID := event.ID
		m := w.Monuments.Build(w.IDs.NextMonument(), "Monument to "+event.Description, t.CapitalSettlement, w.CurrentDate, &eventID)

		w.Chronicle.Append(chronicle.NewEvent(
			w.IDs.NextEvent(), w.CurrentDate, chronicle.MonumentBuilt,
			t.Name+" has raised "+m.Name, false,
		).WithFaction(t.ID).CausedBy(event.ID))
	}
}

func mostRecentMajorEventFor(w *worldhistory.WorldHistory, t ids.TribeID) (chronicle.Event, bool) {
	var latest chronicle.Event
	found := false
	for _, e := range w.Chronicle.Major() {
		for _, f := range e.FactionsInvolved {
			if f != t {
				continue
			}
			if !found || e.Date.TotalSeasons() >= latest.Date.TotalSeasons() {
				latest = e
				found = true
			}
		}
	}
	return latest, found
}
