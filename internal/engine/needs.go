package engine

import (
	"github.com/talgya/worldhistory/internal/stockpile"
	"github.com/talgya/worldhistory/internal/worldhistory"
)

// perCapitaFood is how much GoodFood one colonist consumes per season to
// be fully fed, matching the teacher's agents.NeedsState per-tick
// consumption idiom (internal/agents/behavior.go) scaled to season
// granularity.
const perCapitaFood = 0.08

// perCapitaUpkeep is the Wood+Stone drawn per colonist per season to
// maintain shelter.
const perCapitaUpkeep = 0.02

// stepNeeds resolves the food/water/shelter/health/morale/security
// satisfaction pass for every living tribe, drawing down stockpiled goods
// before production replenishes them later this tick. Grounded on
// internal/agents/needs.go's NeedsState idiom, generalized from the
// teacher's five-axis Maslow hierarchy onto spec's six explicit needs.
func stepNeeds(w *worldhistory.WorldHistory) {
	for _, t := range w.LivingTribes() {
		pop := t.TotalPopulation()
		if pop == 0 {
			continue
		}

		foodDemand := float64(pop) * perCapitaFood
		consumed, _ := t.Stockpile.Consume(stockpile.GoodFood, foodDemand)
		t.Needs.Level[needsFoodIdx] = satisfactionRatio(consumed, foodDemand, t.Needs.Level[needsFoodIdx])

		upkeepDemand := float64(pop) * perCapitaUpkeep
		woodUsed, _ := t.Stockpile.Consume(stockpile.GoodWood, upkeepDemand/2)
		stoneUsed, _ := t.Stockpile.Consume(stockpile.GoodStone, upkeepDemand/2)
		t.Needs.Level[needsShelterIdx] = satisfactionRatio(woodUsed+stoneUsed, upkeepDemand, t.Needs.Level[needsShelterIdx])

		// Water is ambient rather than stockpiled; it drifts toward a high
		// baseline every season, matching the teacher's decayGovernance
		// drift-to-baseline idiom applied to an unmodeled resource.
		driftToward(&t.Needs.Level[needsWaterIdx], 0.95, 0.2)

		// Health follows from how well fed and hydrated the tribe has
		// been, lagging rather than snapping.
		healthTarget := (t.Needs.Level[needsFoodIdx] + t.Needs.Level[needsWaterIdx]) / 2
		driftToward(&t.Needs.Level[needsHealthIdx], healthTarget, 0.3)

		// Morale rises with comfort goods available per capita.
		luxuriesPerCapita := t.Stockpile.Quantity[stockpile.GoodLuxuries] / float64(pop)
		moraleTarget := clamp01(0.4 + luxuriesPerCapita*2)
		driftToward(&t.Needs.Level[needsMoraleIdx], moraleTarget, 0.15)

		// Security rises with standing warriors relative to population.
		securityTarget := clamp01(0.3 + float64(t.Warriors)/float64(pop)*2)
		driftToward(&t.Needs.Level[needsSecurityIdx], securityTarget, 0.2)

		t.Needs.Clamp()
		t.Stockpile.Decay()
	}
}

const (
	needsFoodIdx = iota
	needsWaterIdx
	needsShelterIdx
	needsHealthIdx
	needsMoraleIdx
	needsSecurityIdx
)

// satisfactionRatio blends this tick's fulfilled-fraction with the
// previous value so a single bad season doesn't crater a need instantly,
// matching the teacher's clampAgentNeeds smoothing.
func satisfactionRatio(consumed, demand, previous float64) float64 {
	if demand <= 0 {
		return previous
	}
	ratio := clamp01(consumed / demand)
	return previous*0.4 + ratio*0.6
}

// driftToward moves *v a fraction of the way to target each call, used for
// needs with no direct consumption mechanic.
func driftToward(v *float64, target, rate float64) {
	*v += (target - *v) * rate
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
