package engine

import (
	"testing"

	"github.com/talgya/worldhistory/internal/colonist"
	"github.com/talgya/worldhistory/internal/stockpile"
)

func TestStepJobsSeedsDefaultWorkplacesOnFirstTick(t *testing.T) {
	w, tribe := newTestWorld(t)

	stepJobs(w)

	if len(tribe.Workplaces) != len(skillGood) {
		t.Fatalf("expected one workplace per producing skill (%d), got %d", len(skillGood), len(tribe.Workplaces))
	}
}

func TestStepJobsFillsOpenSlotsFromPool(t *testing.T) {
	w, tribe := newTestWorld(t)

	stepJobs(w)

	var totalFilled int
	for _, wp := range tribe.Workplaces {
		totalFilled += len(wp.Filled) + wp.PoolFilled
	}
	if totalFilled == 0 {
		t.Fatalf("expected pool colonists to fill at least one workplace slot")
	}
}

func TestStepJobsAssignsNotablesBeforePool(t *testing.T) {
	w, tribe := newTestWorld(t)
	notable := &colonist.Colonist{
		ID:           w.IDs.NextColonist(),
		FigureID:     w.IDs.NextFigure(),
		Name:         "Test Notable",
		Alive:        true,
		SettlementID: tribe.CapitalSettlement,
	}
	notable.Skills.Level[colonist.SkillFarming] = 10
	w.AddColonist(notable, tribe)

	stepJobs(w)

	var found bool
	for _, wp := range tribe.Workplaces {
		if wp.Skill != colonist.SkillFarming {
			continue
		}
		for _, cid := range wp.Filled {
			if cid == notable.ID {
				found = true
			}
		}
	}
	if !found {
		t.Fatalf("expected the skilled notable to be assigned to the farming workplace")
	}
}

func TestStepProductionAddsGoodsToStockpile(t *testing.T) {
	w, tribe := newTestWorld(t)
	stepJobs(w)

	before := tribe.Stockpile.Quantity[stockpile.GoodFood]
	stepProduction(w)
	after := tribe.Stockpile.Quantity[stockpile.GoodFood]

	if after <= before {
		t.Fatalf("expected production to grow the food stockpile, %f -> %f", before, after)
	}
}
