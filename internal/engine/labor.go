package engine

import (
	"github.com/talgya/worldhistory/internal/colonist"
	"github.com/talgya/worldhistory/internal/jobs"
	"github.com/talgya/worldhistory/internal/stockpile"
	"github.com/talgya/worldhistory/internal/worldhistory"
)

// skillGood maps a production skill to the good its workplace outputs.
// Healing, Trading and Combat have no direct good output (they feed
// health/morale, trade routing, and military strength instead) so they
// are absent here and skipped by stepProduction.
var skillGood = map[colonist.Skill]stockpile.Good{
	colonist.SkillFarming:  stockpile.GoodFood,
	colonist.SkillHunting:  stockpile.GoodFood,
	colonist.SkillMining:   stockpile.GoodOre,
	colonist.SkillSmithing: stockpile.GoodMetal,
}

// skillBaseRate is the per-worker base output before the skill and
// wellbeing modifiers jobs.ProductionAmount applies.
var skillBaseRate = map[colonist.Skill]float64{
	colonist.SkillFarming:  1.0,
	colonist.SkillHunting:  0.6,
	colonist.SkillMining:   0.8,
	colonist.SkillSmithing: 0.5,
}

// stepJobs fills each tribe's workplaces: notables first by skill level
// (internal/jobs.AssignNotables), then pool cohorts by vacancy-weighted
// occupation demand, matching the teacher's two-pass assignment order.
func stepJobs(w *worldhistory.WorldHistory) {
	for _, t := range w.LivingTribes() {
		if len(t.Workplaces) == 0 {
			ensureDefaultWorkplaces(w, t)
		}

		var notables []*colonist.Colonist
		for _, id := range t.Notables {
			if c, ok := w.Colonists[id]; ok {
				notables = append(notables, c)
			}
		}

		demand := make(map[string]uint64)
		for _, wp := range t.Workplaces {
			wp.Filled = wp.Filled[:0]
			wp.PoolFilled = 0
			jobs.AssignNotables(wp, notables)
			if open := wp.OpenSlots(); open > 0 {
				demand[wp.Skill.String()] = uint64(open)
			}
		}

		for _, occ := range t.Pool.VacancyWeightedOccupations(demand) {
			for _, wp := range t.Workplaces {
				if wp.Skill.String() != occ {
					continue
				}
				open := uint64(wp.OpenSlots())
				if open == 0 {
					continue
				}
				filled := t.Pool.Remove(occ, open)
				wp.PoolFilled += int(filled)
			}
		}
	}
}

// ensureDefaultWorkplaces seeds a starter workplace per producing skill,
// capacity scaled to population, the first time a tribe is ticked.
func ensureDefaultWorkplaces(w *worldhistory.WorldHistory, t *worldhistory.Tribe) {
	pop := t.TotalPopulation()
	capacity := int(pop/4) + 1
	for skill := range skillGood {
		t.Workplaces = append(t.Workplaces, &jobs.Workplace{
			ID:           w.IDs.NextWorkplace(),
			SettlementID: t.CapitalSettlement,
			Skill:        skill,
			Capacity:     capacity,
		})
	}
}

// stepProduction converts each filled workplace slot into goods, scaled by
// worker skill level and the tribe's needs-derived ProductionModifier, and
// by the tribe's technology-age production multiplier.
func stepProduction(w *worldhistory.WorldHistory) {
	for _, t := range w.LivingTribes() {
		mod := t.Needs.ProductionModifier() * t.Age.ProductionMultiplier()
		for _, wp := range t.Workplaces {
			good, ok := skillGood[wp.Skill]
			if !ok {
				continue
			}
			base := skillBaseRate[wp.Skill]
			for _, cid := range wp.Filled {
				c, ok := w.Colonists[cid]
				if !ok {
					continue
				}
				amount := jobs.ProductionAmount(base, c.Skills.Level[wp.Skill], mod)
				t.Stockpile.Add(good, amount)
				jobs.GrowSkill(&c.Skills, wp.Skill, 5)
			}
			// pool-cohort workers produce at the curve's level-0 rate,
			// since individual XP isn't tracked for the pool.
			if wp.PoolFilled > 0 {
				amount := jobs.ProductionAmount(base, 0, mod) * float64(wp.PoolFilled)
				t.Stockpile.Add(good, amount)
			}
		}
	}
}
