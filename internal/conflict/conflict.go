// Package conflict resolves tribe-vs-tribe warfare at the aggregate
// military-strength level: raid/battle triggering from diplomacy
// relations, engagement resolution, and territory capture. Grounded on
// original_source/src/simulation/interaction/conflict.rs
// (process_conflict_tick, execute_raid, execute_battle,
// capture_territory), which has no teacher-repo analogue; re-expressed in
// the teacher's plain-function-plus-explicit-*rand.Rand idiom
// (internal/engine/production.go's deterministic-RNG-parameter style).
package conflict

import (
	"math/rand"

	"github.com/talgya/worldhistory/internal/diplomacy"
	"github.com/talgya/worldhistory/internal/ids"
)

// DefenderBonus scales a defending army's effective strength, matching the
// original's params.defender_bonus.
const DefenderBonus = 1.2

// RaidRelationPenalty and BattleRelationPenalty match the original's
// raid_relation_penalty (doubled for a full battle).
const (
	RaidRelationPenalty   = -10
	BattleRelationPenalty = -20
)

// Army is one tribe's committed military strength for a single
// engagement, already scaled by tech-age military multiplier and the
// needs-derived MilitaryModifier.
type Army struct {
	Tribe    ids.TribeID
	Strength float64
	Warriors uint64
}

// Kind distinguishes a quick raid (loot, light casualties) from a full
// battle (territory capture, heavy casualties).
type Kind uint8

const (
	Raid Kind = iota
	Battle
)

// ConsiderEngagement decides whether attacker engages defender this tick
// and at what Kind, mirroring process_conflict_tick's strength-ratio
// gates: a decisive strength edge risks a full battle, a roughly even
// match risks only a raid, and an allied or under-strength attacker never
// engages.
func ConsiderEngagement(dipl *diplomacy.State, attacker, defender Army, rng *rand.Rand) (Kind, bool) {
	if dipl.HasNonAggression(attacker.Tribe, defender.Tribe) {
		return 0, false
	}
	if defender.Strength <= 0 {
		return 0, false
	}
	ratio := attacker.Strength / defender.Strength

	switch {
	case ratio > 1.5 && rng.Float64() < 0.2:
		return Battle, true
	case ratio > 0.8 && rng.Float64() < 0.3:
		return Raid, true
	default:
		return 0, false
	}
}

// Outcome is the result of one resolved engagement.
type Outcome struct {
	Kind           Kind
	Winner, Loser  ids.TribeID
	AttackerWon    bool
	AttackerLosses uint64
	DefenderLosses uint64
	LootFraction   float64 // fraction of the loser's stockpile seized, Raid only
	TerritoryLost  bool    // Battle only
}

// casualtyRange bounds the per-engagement casualty rate rolled uniformly,
// matching the original's raid/battle casualty min/max params.
func casualtyRange(k Kind) (min, max float64) {
	if k == Battle {
		return 0.05, 0.15
	}
	return 0.02, 0.08
}

// Resolve runs one engagement: a success-chance roll weighted by relative
// strength (with the defender getting DefenderBonus), then asymmetric
// casualties favoring the winner, matching execute_raid/execute_battle.
func Resolve(kind Kind, attacker, defender Army, rng *rand.Rand) Outcome {
	defenderStrength := defender.Strength * DefenderBonus
	total := attacker.Strength + defenderStrength
	if total <= 0 {
		total = 1
	}
	successChance := attacker.Strength / total
	attackerWon := rng.Float64() < successChance

	lo, hi := casualtyRange(kind)
	rate := lo + rng.Float64()*(hi-lo)

	out := Outcome{Kind: kind, AttackerWon: attackerWon}
	if attackerWon {
		out.Winner, out.Loser = attacker.Tribe, defender.Tribe
		out.AttackerLosses = casualties(attacker.Warriors, rate*0.7)
		out.DefenderLosses = casualties(defender.Warriors, rate*1.3)
		if kind == Raid {
			out.LootFraction = 0.2
		} else {
			out.TerritoryLost = true
		}
	} else {
		out.Winner, out.Loser = defender.Tribe, attacker.Tribe
		out.AttackerLosses = casualties(attacker.Warriors, rate*1.3)
		out.DefenderLosses = casualties(defender.Warriors, rate*0.7)
	}
	return out
}

func casualties(warriors uint64, rate float64) uint64 {
	lost := uint64(float64(warriors) * rate)
	if lost < 1 && warriors > 0 {
		lost = 1
	}
	return lost
}

// ApplyOutcome worsens diplomacy relations between the two tribes after an
// engagement, a battle souring relations twice as sharply as a raid.
func ApplyOutcome(dipl *diplomacy.State, out Outcome) {
	penalty := int8(RaidRelationPenalty)
	if out.Kind == Battle {
		penalty = int8(BattleRelationPenalty)
	}
	dipl.AdjustRelation(out.Winner, out.Loser, penalty)
}
