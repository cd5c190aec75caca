// Package jobs implements job demand/assignment in two passes (notables
// first by skill, then pool cohorts) plus the skill-productivity curve and
// XP-threshold ladder. Grounded on the teacher's engine/production.go
// (ResolveWork, productionAmount, applySkillGrowth) and
// internal/agents/behavior.go's per-occupation production logic.
package jobs

import (
	"sort"

	"github.com/talgya/worldhistory/internal/colonist"
	"github.com/talgya/worldhistory/internal/ids"
)

// Workplace is a job site within a settlement demanding a skill and
// offering a fixed number of positions.
type Workplace struct {
	ID           ids.WorkplaceID
	SettlementID ids.SettlementID
	Skill        colonist.Skill
	Capacity     int
	Filled       []ids.ColonistID
	PoolFilled   int // vacancies filled by untracked pool cohorts, not individual colonists
}

// OpenSlots returns how many positions remain unfilled.
func (w *Workplace) OpenSlots() int {
	return w.Capacity - len(w.Filled) - w.PoolFilled
}

// skillProductivity implements the 0.5 -> 1.0 -> 3.0 curve at skill levels
// 0, 5, and 20 respectively, interpolating linearly between the anchors.
func skillProductivity(level int) float64 {
	switch {
	case level <= 0:
		return 0.5
	case level >= 20:
		return 3.0
	case level <= 5:
		return 0.5 + float64(level)/5*(1.0-0.5)
	default:
		return 1.0 + float64(level-5)/15*(3.0-1.0)
	}
}

// SkillProductivity is the exported form of the production curve, used by
// both job assignment (to rank candidates) and production output
// calculations.
func SkillProductivity(level int) float64 { return skillProductivity(level) }

// xpThresholds is the exponential XP ladder: level n requires xpThresholds[n]
// total XP, matching spec's 100,200,350,500...25000 progression.
var xpThresholds = []int{
	0, 100, 200, 350, 500, 700, 950, 1250, 1600, 2000, 2500,
	3100, 3800, 4600, 5500, 6500, 7600, 9800, 13000, 18000, 25000,
}

// LevelForXP returns the skill level reached by the given total XP.
func LevelForXP(xp int) int {
	level := 0
	for i, threshold := range xpThresholds {
		if xp >= threshold {
			level = i
		} else {
			break
		}
	}
	return level
}

// GrowSkill adds XP to a skill and recomputes its level from the ladder.
func GrowSkill(set *colonist.SkillSet, skill colonist.Skill, xpGain int) {
	set.XP[skill] += xpGain
	if set.XP[skill] > xpThresholds[len(xpThresholds)-1] {
		set.XP[skill] = xpThresholds[len(xpThresholds)-1]
	}
	set.Level[skill] = LevelForXP(set.XP[skill])
}

// AssignNotables fills workplace slots from notable colonists first, each
// ranked by their skill level in the workplace's required discipline,
// highest first, matching the teacher's two-pass assignment (notables
// before pool cohorts).
func AssignNotables(w *Workplace, candidates []*colonist.Colonist) []*colonist.Colonist {
	var eligible []*colonist.Colonist
	for _, c := range candidates {
		if c.Alive && c.SettlementID == w.SettlementID {
			eligible = append(eligible, c)
		}
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].Skills.Level[w.Skill] > eligible[j].Skills.Level[w.Skill]
	})

	var assigned []*colonist.Colonist
	for _, c := range eligible {
		if w.OpenSlots() == 0 {
			break
		}
		w.Filled = append(w.Filled, c.ID)
		assigned = append(assigned, c)
	}
	return assigned
}

// ProductionAmount computes one tick's output for a workplace position held
// by a colonist with the given skill level and need-derived production
// modifier (internal/needs.State.ProductionModifier), matching
// engine/production.go's productionAmount shape: a base rate scaled by
// skill-productivity and by the colonist's wellbeing.
func ProductionAmount(baseRate float64, skillLevel int, productionModifier float64) float64 {
	return baseRate * skillProductivity(skillLevel) * productionModifier
}
