package engine

import (
	"fmt"
	"math/rand"

	"github.com/talgya/worldhistory/internal/chronicle"
	"github.com/talgya/worldhistory/internal/colonist"
	"github.com/talgya/worldhistory/internal/society"
	"github.com/talgya/worldhistory/internal/worldhistory"
)

// stepNotables promotes pool colonists into named notables until each
// tribe reaches its population-scaled target count, matching the
// teacher's processWeeklyTier2Replenishment promotion idiom.
func stepNotables(w *worldhistory.WorldHistory, rng *rand.Rand) {
	for _, t := range w.LivingTribes() {
		target := t.TargetNotableCount()
		for len(t.Notables) < target {
			cohortOcc, ok := largestCohort(t)
			if !ok {
				break
			}
			if t.Pool.Remove(cohortOcc, 1) == 0 {
				break
			}
			c := newNotableFromPool(w, t, rng)
			w.AddColonist(c, t)
		}
	}
}

func largestCohort(t *worldhistory.Tribe) (string, bool) {
	var best string
	var bestCount uint64
	for occ, cohort := range t.Pool.Cohorts {
		if cohort.Count > bestCount {
			best, bestCount = occ, cohort.Count
		}
	}
	return best, bestCount > 0
}

func newNotableFromPool(w *worldhistory.WorldHistory, t *worldhistory.Tribe, rng *rand.Rand) *colonist.Colonist {
	sex := colonist.Male
	if rng.Float64() < 0.5 {
		sex = colonist.Female
	}
	return &colonist.Colonist{
		ID:           w.IDs.NextColonist(),
		FigureID:     w.IDs.NextFigure(),
		Name:         fmt.Sprintf("%s of %s", generatePersonalName(rng), t.Name),
		Sex:          sex,
		Age:          16 + rng.Intn(20),
		Alive:        true,
		SettlementID: t.CapitalSettlement,
		Needs:        t.Needs,
	}
}

var personalNameSyllables = []string{"Ar", "Ber", "Cor", "Dar", "Ed", "Fen", "Gor", "Hal", "Il", "Jor"}

func generatePersonalName(rng *rand.Rand) string {
	return personalNameSyllables[rng.Intn(len(personalNameSyllables))] +
		personalNameSyllables[rng.Intn(len(personalNameSyllables))]
}

// leaderDeathBaseAge is not referenced by stepSuccession: death rolls use
// the incumbent leader's own age, and a tribe without a leader goes
// straight into a one-tick succession crisis.
const leaderDeathBaseAge = 40

// stepSuccession advances every tribe's succession-crisis countdown,
// rolls for an incumbent leader's death, and resolves a new leader once a
// crisis completes. Grounded on engine/governance.go (ensureLeader,
// checkRevolution) via internal/society's ported age-banded table.
func stepSuccession(w *worldhistory.WorldHistory, rng *rand.Rand) {
	for _, t := range w.LivingTribes() {
		if leader, ok := t.Leader(w); ok {
			if rng.Float64() < society.LeaderDeathProbability(leader.Age) {
				t.Succession.BeginCrisis(2)
				w.Chronicle.Append(chronicle.NewEvent(
					w.IDs.NextEvent(), w.CurrentDate, chronicle.SuccessionCrisis,
					leader.Name+", leader of "+t.Name+", has died", true))
				continue
			}
		}

		if t.Succession.LeaderID == nil && !t.Succession.InCrisis {
			t.Succession.BeginCrisis(1)
		}

		if t.Succession.Tick() {
			names := notableNames(w, t)
			name, age := society.SelectNewLeader(t.Government.SuccessionMethod(), names, rng)
			newLeader := resolveOrCreateLeader(w, t, name, age)
			t.Succession.Resolve(newLeader.FigureID, age)
			w.Chronicle.Append(chronicle.NewEvent(
				w.IDs.NextEvent(), w.CurrentDate, chronicle.RulerCrowned,
				name+" has risen to lead "+t.Name, true))
		}
	}
}

func notableNames(w *worldhistory.WorldHistory, t *worldhistory.Tribe) []string {
	var names []string
	for _, id := range t.Notables {
		if c, ok := w.Colonists[id]; ok && c.Alive {
			names = append(names, c.Name)
		}
	}
	return names
}

// resolveOrCreateLeader finds the notable matching name, or mints a new
// notable for a fabricated leader name that doesn't match any existing
// colonist.
func resolveOrCreateLeader(w *worldhistory.WorldHistory, t *worldhistory.Tribe, name string, age int) *colonist.Colonist {
	for _, id := range t.Notables {
		if c, ok := w.Colonists[id]; ok && c.Name == name {
			return c
		}
	}
	c := &colonist.Colonist{
		ID:           w.IDs.NextColonist(),
		FigureID:     w.IDs.NextFigure(),
		Name:         name,
		Age:          age,
		Alive:        true,
		SettlementID: t.CapitalSettlement,
		Needs:        t.Needs,
	}
	w.AddColonist(c, t)
	return c
}

// stepReputationDecay drifts every tracked tribe/species reputation
// record toward its disposition baseline, momentum-gated per
// internal/reputation.
func stepReputationDecay(w *worldhistory.WorldHistory) {
	w.Reputation.DecayAll()
}

// chronicleCompactionHorizonSeasons is how many seasons of detail the
// chronicle retains before compacting minor events, matching spec's
// retain-recent-detail/compact-the-rest rule.
const chronicleCompactionHorizonSeasons = 40

// stepChronicleCompaction compacts chronicle entries older than the
// retention horizon, keeping major events and dropping the rest.
func stepChronicleCompaction(w *worldhistory.WorldHistory) {
	w.Chronicle.Compact(w.CurrentDate, chronicleCompactionHorizonSeasons)
}
