package engine

import (
	"math/rand"

	"github.com/talgya/worldhistory/internal/chronicle"
	"github.com/talgya/worldhistory/internal/conflict"
	"github.com/talgya/worldhistory/internal/diplomacy"
	"github.com/talgya/worldhistory/internal/ids"
	"github.com/talgya/worldhistory/internal/monster"
	"github.com/talgya/worldhistory/internal/reputation"
	"github.com/talgya/worldhistory/internal/stockpile"
	"github.com/talgya/worldhistory/internal/war"
	"github.com/talgya/worldhistory/internal/world"
	"github.com/talgya/worldhistory/internal/worldhistory"
)

// warDeclarationThreshold is how hostile a relation must drop before either
// side considers a declared war instead of an isolated raid/battle.
const warDeclarationThreshold = diplomacy.Relation(-60)

// warDeclarationChance is the per-tick chance a sufficiently hostile pair
// escalates to a declared war this season.
const warDeclarationChance = 0.1

// stepWarDeclaration escalates sufficiently hostile, still-undeclared tribe
// pairs into a persistent war.War with armies raised on both sides.
// Grounded on spec.md §3's War entity and
// original_source/src/simulation/interaction/conflict.rs's escalation idea,
// which internal/conflict only models as ephemeral per-tick engagements.
func stepWarDeclaration(w *worldhistory.WorldHistory, rng *rand.Rand) {
	seen := make(map[[2]uint64]bool)
	for _, t := range w.LivingTribes() {
		for _, otherID := range w.NeighboringTribes(t) {
			key := pairKey(uint64(t.ID), uint64(otherID))
			if seen[key] {
				continue
			}
			seen[key] = true

			other, ok := w.Tribes[otherID]
			if !ok || !other.IsAlive() {
				continue
			}
			if w.Diplomacy.Get(t.ID, otherID) > warDeclarationThreshold {
				continue
			}
			if len(w.Wars.InvolvingTribe(t.ID)) > 0 || len(w.Wars.InvolvingTribe(otherID)) > 0 {
				alreadyAtWar := false
				for _, existing := range w.Wars.InvolvingTribe(t.ID) {
					if existing.IsActive() && existing.Involves(otherID) {
						alreadyAtWar = true
						break
					}
				}
				if alreadyAtWar {
					continue
				}
			}
			if rng.Float64() > warDeclarationChance {
				continue
			}

			declareWar(w, t, other)
		}
	}
}

func declareWar(w *worldhistory.WorldHistory, aggressor, defender *worldhistory.Tribe) {
	warID := w.IDs.NextWar()
	cause := "a generation of worsening relations between " + aggressor.Name + " and " + defender.Name
	waged, err := w.Wars.Declare(warID, []ids.TribeID{aggressor.ID}, []ids.TribeID{defender.ID}, cause, w.CurrentDate)
	if err != nil {
		return
	}

	w.Armies.Raise(w.IDs.NextArmy(), aggressor.ID, aggressor.MilitaryStrength(), &warID)
	w.Armies.Raise(w.IDs.NextArmy(), defender.ID, defender.MilitaryStrength(), &warID)

	w.Chronicle.Append(chronicle.NewEvent(
		w.IDs.NextEvent(), w.CurrentDate, chronicle.WarDeclared,
		aggressor.Name+" has declared war upon "+defender.Name, false,
	).WithFaction(aggressor.ID).WithFaction(defender.ID))
	_ = waged
}

// stepWarResolution ends any active war once either side has been routed
// (warriors fell to zero), crowning the surviving side victor and
// disbanding both armies.
func stepWarResolution(w *worldhistory.WorldHistory) {
	for _, wr := range w.Wars.Active() {
		var aggressorsRouted, defendersRouted = true, true
		for _, id := range wr.Aggressors {
			if t, ok := w.Tribes[id]; ok && t.IsAlive() && t.Warriors > 0 {
				aggressorsRouted = false
			}
		}
		for _, id := range wr.Defenders {
			if t, ok := w.Tribes[id]; ok && t.IsAlive() && t.Warriors > 0 {
				defendersRouted = false
			}
		}
		if !aggressorsRouted && !defendersRouted {
			continue
		}

		var victor *ids.TribeID
		switch {
		case defendersRouted && len(wr.Aggressors) > 0:
			v := wr.Aggressors[0]
			victor = &v
		case aggressorsRouted && len(wr.Defenders) > 0:
			v := wr.Defenders[0]
			victor = &v
		}
		wr.End(w.CurrentDate, victor)

		for _, id := range append(append([]ids.TribeID(nil), wr.Aggressors...), wr.Defenders...) {
			for _, a := range w.Armies.ForTribe(id) {
				if a.War != nil && *a.War == wr.ID {
					a.Disband()
				}
			}
		}

		w.Chronicle.Append(chronicle.NewEvent(
			w.IDs.NextEvent(), w.CurrentDate, chronicle.WarEnded,
			"the war begun over "+wr.Cause+" has ended", false))
	}
}

// siegeResolutionChance is the per-tick chance an ongoing siege resolves
// one way or the other once begun.
const siegeResolutionChance = 0.2

// stepSieges opens a siege against a defender's capital for every active
// war that doesn't already have one underway, then rolls to resolve each
// ongoing siege by comparing the besieging army's strength against the
// defender's remaining warriors. Grounded on spec.md §3's Siege entity;
// internal/war only stores the Siege record, this is the pass that
// actually drives one to a conclusion.
func stepSieges(w *worldhistory.WorldHistory, rng *rand.Rand) {
	for _, wr := range w.Wars.Active() {
		for _, aggressorID := range wr.Aggressors {
			aggressor, ok := w.Tribes[aggressorID]
			if !ok || !aggressor.IsAlive() {
				continue
			}
			for _, defenderID := range wr.Defenders {
				defender, ok := w.Tribes[defenderID]
				if !ok || !defender.IsAlive() {
					continue
				}
				beginOrResolveSiege(w, wr.ID, aggressor, defender, rng)
			}
		}
	}
}

func beginOrResolveSiege(w *worldhistory.WorldHistory, warID ids.WarID, attacker, defender *worldhistory.Tribe, rng *rand.Rand) {
	ongoing := w.Sieges.OngoingAt(defender.CapitalSettlement)
	var siege *war.Siege
	for _, sg := range ongoing {
		if sg.War == warID && sg.Attacker == attacker.ID {
			siege = sg
			break
		}
	}
	if siege == nil {
		siege = w.Sieges.Begin(w.IDs.NextSiege(), warID, attacker.ID, defender.CapitalSettlement, w.CurrentDate)
		w.Chronicle.Append(chronicle.NewEvent(
			w.IDs.NextEvent(), w.CurrentDate, chronicle.SiegeBegun,
			attacker.Name+" has laid siege to "+defender.Name+"'s capital", false,
		).WithFaction(attacker.ID).WithFaction(defender.ID))
		return
	}

	if rng.Float64() > siegeResolutionChance {
		return
	}

	attackStrength := attacker.MilitaryStrength()
	defendStrength := defender.MilitaryStrength() + 1
	outcome := war.SiegeBroken
	eventType := chronicle.SiegeEnded
	desc := attacker.Name + "'s siege of " + defender.Name + " was broken"
	if rng.Float64() < attackStrength/(attackStrength+defendStrength) {
		outcome = war.SiegeSuccessful
		desc = attacker.Name + " has taken " + defender.Name + "'s capital by siege"
		w.Territory.Claim(defender.Capital, attacker.ID, w.CurrentTick)
	}
	siege.Resolve(w.CurrentDate, outcome)

	w.Chronicle.Append(chronicle.NewEvent(
		w.IDs.NextEvent(), w.CurrentDate, eventType, desc, false,
	).WithFaction(attacker.ID).WithFaction(defender.ID))
}

// stepConflict considers and resolves one raid/battle engagement per pair
// of territorially adjacent tribes this tick. Grounded on
// original_source's process_conflict_tick via internal/conflict.
func stepConflict(w *worldhistory.WorldHistory, rng *rand.Rand) {
	seen := make(map[[2]uint64]bool)
	for _, t := range w.LivingTribes() {
		for _, otherID := range w.NeighboringTribes(t) {
			key := pairKey(uint64(t.ID), uint64(otherID))
			if seen[key] {
				continue
			}
			seen[key] = true

			other, ok := w.Tribes[otherID]
			if !ok || !other.IsAlive() {
				continue
			}

			attacker := conflict.Army{Tribe: t.ID, Strength: t.MilitaryStrength(), Warriors: t.Warriors}
			defender := conflict.Army{Tribe: other.ID, Strength: other.MilitaryStrength(), Warriors: other.Warriors}
			kind, engage := conflict.ConsiderEngagement(w.Diplomacy, attacker, defender, rng)
			if !engage {
				continue
			}

			out := conflict.Resolve(kind, attacker, defender, rng)
			applyConflictOutcome(w, t, other, out)
		}
	}
}

func applyConflictOutcome(w *worldhistory.WorldHistory, attacker, defender *worldhistory.Tribe, out conflict.Outcome) {
	attacker.Warriors = subtractClamped(attacker.Warriors, out.AttackerLosses)
	defender.Warriors = subtractClamped(defender.Warriors, out.DefenderLosses)

	winner, loser := attacker, defender
	if out.Winner == defender.ID {
		winner, loser = defender, attacker
	}

	if out.LootFraction > 0 {
		for g := stockpile.Good(0); g < stockpile.NumGoods; g++ {
			amount := loser.Stockpile.Quantity[g] * out.LootFraction
			removed, _ := loser.Stockpile.Consume(g, amount)
			winner.Stockpile.Add(g, removed)
		}
	}

	if out.TerritoryLost {
		captureOneHex(w, loser.ID, winner.ID)
	}

	conflict.ApplyOutcome(w.Diplomacy, out)

	verb := "raided"
	eventType := chronicle.Raid
	if out.Kind == conflict.Battle {
		verb = "battled"
		eventType = chronicle.BattleFought
	}
	w.Chronicle.Append(chronicle.NewEvent(
		w.IDs.NextEvent(), w.CurrentDate, eventType,
		winner.Name+" "+verb+" "+loser.Name+" and won", false))
}

func subtractClamped(total, loss uint64) uint64 {
	if loss >= total {
		return 0
	}
	return total - loss
}

func captureOneHex(w *worldhistory.WorldHistory, loser, winner ids.TribeID) {
	for _, coord := range w.Territory.TerritoryOf(loser) {
		w.Territory.Claim(coord, winner, w.CurrentTick)
		return
	}
}

// stepMigration moves a fraction of a struggling tribe's pool population
// toward a better-off neighbor, matching engine/perpetuation.go's
// processSeasonalMigration emigration idiom.
func stepMigration(w *worldhistory.WorldHistory, rng *rand.Rand) {
	const migrationFraction = 0.05
	for _, t := range w.LivingTribes() {
		if t.Needs.OverallSatisfaction() >= 0.4 {
			continue
		}
		var best *worldhistory.Tribe
		for _, otherID := range w.NeighboringTribes(t) {
			other, ok := w.Tribes[otherID]
			if !ok || !other.IsAlive() {
				continue
			}
			if other.Needs.OverallSatisfaction() > 0.6 {
				if best == nil || other.Needs.OverallSatisfaction() > best.Needs.OverallSatisfaction() {
					best = other
				}
			}
		}
		if best == nil {
			continue
		}
		for _, cohort := range t.Pool.Cohorts {
			moving := uint64(float64(cohort.Count) * migrationFraction)
			if moving == 0 {
				continue
			}
			removed := t.Pool.Remove(cohort.Occupation, moving)
			best.Pool.Add(best.CapitalSettlement, cohort.Occupation, removed)
		}
	}
}

// monsterRaidChance is the per-tick chance an organized, raid-ready
// population strikes its nearest tribe this season.
const monsterRaidChance = 0.4

// stepMonsters resolves wild-population raids against nearby tribes,
// derived from original_source's
// creatures/populations.rs (no teacher equivalent).
func stepMonsters(w *worldhistory.WorldHistory, rng *rand.Rand) {
	for _, pop := range w.Populations {
		if pop.IsExtinct() {
			continue
		}
		if !pop.WillRaid() || rng.Float64() > monsterRaidChance {
			continue
		}
		target := nearestTribe(w, pop.Location)
		if target == nil {
			continue
		}
		raidTribe(w, pop, target, rng)
	}
}

func nearestTribe(w *worldhistory.WorldHistory, loc world.HexCoord) *worldhistory.Tribe {
	var best *worldhistory.Tribe
	bestDist := -1
	for _, t := range w.LivingTribes() {
		d := world.Distance(loc, t.Capital)
		if bestDist < 0 || d < bestDist {
			bestDist = d
			best = t
		}
	}
	if bestDist > 6 {
		return nil
	}
	return best
}

// dispositionFor derives a species' reputation disposition from its
// generated behavior, since internal/monster carries no disposition of
// its own: aggressive species default hostile, everything else
// territorial.
func dispositionFor(sp *monster.Species) reputation.Disposition {
	if sp.Behavior.IsAggressive() {
		return reputation.AlwaysHostile
	}
	return reputation.Territorial
}

// raidTribe resolves one monster population's raid against a tribe: the
// tribe's warriors fight back, the loser takes losses, and the
// reputation table records the encounter.
func raidTribe(w *worldhistory.WorldHistory, pop *monster.Population, target *worldhistory.Tribe, rng *rand.Rand) {
	species, ok := w.Species[pop.SpeciesID]
	if !ok {
		return
	}
	rep := w.Reputation.Get(target.ID, species.Name, dispositionFor(species))
	if rep.ShouldSkipTribe() {
		return
	}

	raidStrength := float64(pop.Count) * (1 + pop.Aggression)
	defenseStrength := target.MilitaryStrength() + 1

	target.Needs.Level[needsSecurityIdx] = clamp01(target.Needs.Level[needsSecurityIdx] - 0.1)

	if rng.Float64() < raidStrength/(raidStrength+defenseStrength) {
		for g := stockpile.Good(0); g < stockpile.NumGoods; g++ {
			stolen := target.Stockpile.Quantity[g] * 0.1
			removed, _ := target.Stockpile.Consume(g, stolen)
			_ = removed
		}
		losses := uint64(float64(target.Warriors) * 0.1)
		target.Warriors = subtractClamped(target.Warriors, losses)
		rep.Adjust(reputation.AttackedNoKill)
		w.Chronicle.Append(chronicle.NewEvent(
			w.IDs.NextEvent(), w.CurrentDate, chronicle.MonsterRaid,
			species.Name+" raided "+target.Name, false))
	} else {
		lost := uint32(float64(pop.Count) * 0.15)
		pop.AdjustCount(-int32(lost))
		ev := reputation.KilledRegular
		if lost > pop.Count {
			ev = reputation.KilledSignificant
		}
		rep.Adjust(ev)
		w.Chronicle.Append(chronicle.NewEvent(
			w.IDs.NextEvent(), w.CurrentDate, chronicle.CreatureSlain,
			target.Name+" repelled a raid by "+species.Name, false))
	}
}
