package engine

import (
	"math/rand"

	"github.com/talgya/worldhistory/internal/chronicle"
	"github.com/talgya/worldhistory/internal/ids"
	"github.com/talgya/worldhistory/internal/needs"
	"github.com/talgya/worldhistory/internal/worldhistory"
)

// baseGrowthRate is the unmodified per-season population growth rate
// before GrowthModifier scales it, matching the teacher's processBirths
// base rate.
const baseGrowthRate = 0.08

// stepPopulation resolves births and deaths for every living tribe.
// Notable colonists are rolled individually (old age, illness); pool
// cohorts are resolved in aggregate by expected value, since they are not
// tracked as individuals. Grounded on engine/population.go
// (processNaturalDeaths, processBirths) via internal/needs' ported
// formulas.
func stepPopulation(w *worldhistory.WorldHistory, rng *rand.Rand) {
	for _, t := range w.LivingTribes() {
		pop := t.TotalPopulation()
		if pop == 0 {
			continue
		}

		growthRate := baseGrowthRate * t.Needs.GrowthModifier()
		newborns := needs.SeasonalGrowth(pop, growthRate)
		if newborns > 0 {
			t.Pool.Add(t.CapitalSettlement, "laborer", newborns)
		}

		var survivors []ids.ColonistID
		for _, cid := range t.Notables {
			c, ok := w.Colonists[cid]
			if !ok || !c.Alive {
				continue
			}
			c.Age++
			deathProb := needs.DeathProbabilityByAge(c.Age) + needs.IllnessDeathProbability(c.Needs)
			if rng.Float64() < deathProb {
				c.Alive = false
				w.Chronicle.Append(chronicle.NewEvent(
					w.IDs.NextEvent(), w.CurrentDate, chronicle.HeroDied,
					c.Name+" of "+t.Name+" has died", false))
				continue
			}
			survivors = append(survivors, cid)
		}
		t.Notables = survivors

		for _, cohort := range t.Pool.Cohorts {
			const avgAge = 35
			expectedDeaths := float64(cohort.Count) * needs.DeathProbabilityByAge(avgAge)
			if expectedDeaths >= 1 {
				t.Pool.Remove(cohort.Occupation, uint64(expectedDeaths))
			}
		}
	}
}

// stepTechnology advances a tribe one age at a time once its population
// clears the next age's threshold, never skipping an age. Grounded on
// internal/tech's age ladder (no teacher equivalent).
func stepTechnology(w *worldhistory.WorldHistory) {
	for _, t := range w.LivingTribes() {
		if next, ok := t.Age.CanAdvance(t.TotalPopulation()); ok {
			t.Age = next
			w.Chronicle.Append(chronicle.NewEvent(
				w.IDs.NextEvent(), w.CurrentDate, chronicle.OtherEvent,
				t.Name+" has entered the "+t.Age.String()+" age", false))
		}
	}
}

// stepTerritory expands a tribe's claimed territory outward from its
// capital into unclaimed neighboring hexes, one claim per tick at most,
// gated by needs satisfaction so a starving tribe doesn't expand.
func stepTerritory(w *worldhistory.WorldHistory) {
	for _, t := range w.LivingTribes() {
		if t.Needs.OverallSatisfaction() < 0.5 {
			continue
		}
		claimed := w.Territory.TerritoryOf(t.ID)
		if len(claimed) == 0 {
			w.Territory.Claim(t.Capital, t.ID, w.CurrentTick)
			continue
		}

	findUnclaimed:
		for _, coord := range claimed {
			for _, n := range coord.Neighbors() {
				if !w.WorldMap.InBounds(n) {
					continue
				}
				if _, owned := w.Territory.OwnerOf(n); owned {
					continue
				}
				w.Territory.Claim(n, t.ID, w.CurrentTick)
				break findUnclaimed
			}
		}
	}
}
