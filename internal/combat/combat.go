// Package combat resolves individual attacks between combatants built from
// body.Part sets. Grounded on
// original_source/src/simulation/combat/resolution.rs and damage.rs
// (resolve_attack, calculate_hit_chance, apply_damage_to_part), which have
// no teacher-repo analogue; re-expressed in the teacher's plain-function-
// plus-explicit-*rand.Rand idiom (internal/engine/production.go's
// deterministic-RNG-parameter style) rather than transliterated from Rust.
package combat

import (
	"math/rand"

	"github.com/talgya/worldhistory/internal/body"
)

// BaseHitChance is the hit probability before any modifiers, matching the
// original's BASE_HIT_CHANCE constant.
const BaseHitChance = 0.5

// AttackStaminaCost is the stamina an attack consumes, matching the
// original's ATTACK_STAMINA_COST constant.
const AttackStaminaCost = 15.0

// Armor is what a combatant wears, reducing incoming damage to the
// categories it covers and imposing a speed penalty that makes its wearer
// easier to hit, matching the original's Armor/reduce_damage.
type Armor struct {
	DamageReduction float64
	SpeedPenalty    float64
	Covers          map[body.Category]bool
}

// Reduce applies this armor's reduction to incoming damage for a hit
// against category, accounting for the weapon's armor-pierce fraction.
// Uncovered categories take the hit unreduced.
func (a Armor) Reduce(damage float64, category body.Category, armorPierce float64) float64 {
	if a.Covers == nil || !a.Covers[category] {
		return damage
	}
	reduced := damage - a.DamageReduction*(1-armorPierce)
	if reduced < 0 {
		return 0
	}
	return reduced
}

// Combatant is anything that can attack and be attacked in the body model.
type Combatant struct {
	Name       string
	Parts      []body.Part
	Stamina    float64
	MaxStamina float64
	Pain       float64
	Conscious  bool
	Alive      bool

	Strength  float64 // 0..100, modifier = 0.5 + strength/100
	Agility   float64 // 0..100, modifier = 0.5 + agility/100
	Toughness float64 // 0..100, modifier = 0.5 + toughness/100
	Willpower float64 // 0..100, modifier = 0.5 + willpower/100

	Armor Armor

	WeaponAccuracy float64 // 0..1, centered at 0.5
	WeaponDamage   float64
	WeaponType     body.DamageType
	WeaponRanged   bool
	ArmorPierce    float64 // 0..1
}

// AttributeModifier converts a raw 1-100 attribute into the 0.5-1.5
// multiplier the original's Attributes::*_modifier methods produce.
func AttributeModifier(attr float64) float64 {
	return 0.5 + attr/100
}

// OverallImpairment averages the impairment across every part, severed
// parts included, weighted by hit weight, used to penalize a wounded combatant's own hit
// chance and to make a wounded defender easier to hit.
func (c *Combatant) OverallImpairment() float64 {
	var weighted, totalWeight float64
	for _, p := range c.Parts {
		w := p.Size.HitWeight()
		weighted += p.Impairment() * w
		totalWeight += w
	}
	if totalWeight == 0 {
		return 0
	}
	return weighted / totalWeight
}

// CanAttack reports whether this combatant is able to make an attack this
// tick, matching the original's Character::can_attack (stamina above 10,
// alive and conscious).
func (c *Combatant) CanAttack() bool {
	return c.Alive && c.Conscious && c.Stamina > 10
}

// AddPain accumulates pain from a wound, knocking the combatant
// unconscious once it crosses the willpower-scaled threshold, matching
// the original's Character::add_pain.
func (c *Combatant) AddPain(amount float64) (wentUnconscious bool) {
	c.Pain += amount
	threshold := 50.0 * AttributeModifier(c.Willpower)
	if c.Pain >= threshold && c.Conscious {
		c.Conscious = false
		return true
	}
	return false
}

// IsDown reports whether this combatant is out of the fight: a vital part
// destroyed, or every part severed/destroyed.
func (c *Combatant) IsDown() bool {
	anyFunctional := false
	for _, p := range c.Parts {
		if p.Vital && (p.Severed || p.Health <= 0) {
			return true
		}
		if !p.Severed && p.Health > 0 {
			anyFunctional = true
		}
	}
	return !anyFunctional
}

// pickTargetPart selects a body part weighted by its Size.HitWeight,
// skipping already-severed or destroyed parts, matching the original's
// select_target_part.
func pickTargetPart(parts []body.Part, rng *rand.Rand) int {
	var total float64
	weights := make([]float64, len(parts))
	for i, p := range parts {
		if p.Severed || p.Health <= 0 {
			continue
		}
		weights[i] = p.Size.HitWeight()
		total += weights[i]
	}
	if total <= 0 {
		return -1
	}
	roll := rng.Float64() * total
	for i, w := range weights {
		if roll < w {
			return i
		}
		roll -= w
	}
	return len(parts) - 1
}

// HitChance computes the probability an attack from attacker against
// defender lands, matching the original's calculate_hit_chance exactly:
// agility difference, weapon accuracy centered at 0.5, the defender's
// armor speed penalty, the attacker's own impairment, and the defender's
// impairment (a badly wounded defender is easier to keep hitting).
func HitChance(attacker, defender *Combatant) float64 {
	chance := BaseHitChance
	chance += (attacker.Agility - defender.Agility) * 0.003
	chance += (attacker.WeaponAccuracy - 0.5) * 0.5
	chance += defender.Armor.SpeedPenalty * 0.3
	chance -= attacker.OverallImpairment() * 0.3
	chance += defender.OverallImpairment() * 0.2

	if chance < 0.1 {
		chance = 0.1
	}
	if chance > 0.95 {
		chance = 0.95
	}
	return chance
}

// Result is the outcome of one resolved attack.
type Result struct {
	Unable     bool // attacker could not act at all
	Hit        bool
	TargetPart string
	Damage     float64
	Severity   body.Severity
	WoundType  body.WoundType
	Wound      *body.Wound
	Effects    []body.Effect
	Severed    bool
	Destroyed  bool
	VitalKill  bool // a vital, destroyed part killed the defender outright
	Dead       bool // defender is dead after this attack
}

// ResolveAttack runs one attack following the original's resolve_attack
// pipeline: the attacker-cannot-act check, stamina cost, hit roll,
// target-part selection, the strength/armor/toughness/tissue damage
// pipeline with uniform(0.8, 1.2) variance, wound-type dispatch, bleeding
// and pain, and the severity-tiered stagger/knockdown/stun effects.
func ResolveAttack(attacker, defender *Combatant, tick uint64, rng *rand.Rand) Result {
	if !attacker.CanAttack() {
		return Result{Unable: true}
	}

	attacker.Stamina -= AttackStaminaCost
	if attacker.Stamina < 0 {
		attacker.Stamina = 0
	}

	chance := HitChance(attacker, defender)
	if rng.Float64() > chance {
		return Result{Hit: false}
	}

	idx := pickTargetPart(defender.Parts, rng)
	if idx < 0 {
		return Result{Hit: false}
	}
	part := &defender.Parts[idx]

	base := attacker.WeaponDamage * AttributeModifier(attacker.Strength)
	if attacker.WeaponRanged {
		base = attacker.WeaponDamage * (0.7 + 0.3*AttributeModifier(attacker.Strength))
	}

	afterArmor := defender.Armor.Reduce(base, part.Category, attacker.ArmorPierce)
	raw := afterArmor / AttributeModifier(defender.Toughness)
	resistance := part.Tissue.Resistance(attacker.WeaponType)
	variance := 0.8 + rng.Float64()*0.4 // uniform(0.8, 1.2)
	final := raw * resistance * variance
	if final < 0 {
		final = 0
	}

	destroyed := part.ApplyDamage(final)

	ratio := final / part.MaxHealth
	severity := body.SeverityFromDamageRatio(ratio)
	woundType := body.WoundTypeFor(attacker.WeaponType, severity, destroyed)
	wound := body.NewWound(part.Name, woundType, severity, attacker.WeaponType, tick)

	result := Result{
		Hit:        true,
		TargetPart: part.Name,
		Damage:     final,
		Severity:   severity,
		WoundType:  woundType,
		Wound:      &wound,
		Destroyed:  destroyed,
	}

	if defender.AddPain(wound.Pain) {
		result.Effects = append(result.Effects, body.EffectUnconscious)
	}

	if destroyed {
		if woundType == body.WoundSevered {
			part.Sever()
			result.Severed = true
		}
		if part.Vital {
			result.VitalKill = true
		}
	} else {
		switch severity {
		case body.SeverityCritical:
			if rng.Float64() < 0.7 {
				result.Effects = append(result.Effects, body.EffectKnockdown)
			} else {
				result.Effects = append(result.Effects, body.EffectStaggered)
			}
		case body.SeveritySevere:
			if rng.Float64() < 0.5 {
				result.Effects = append(result.Effects, body.EffectStaggered)
			}
		case body.SeverityModerate:
			if rng.Float64() < 0.2 {
				result.Effects = append(result.Effects, body.EffectStaggered)
			}
		}
		if woundType == body.WoundFracture || woundType == body.WoundCompoundFracture {
			result.Effects = append(result.Effects, body.EffectStunned)
		}
	}

	if result.VitalKill || defender.IsDown() {
		defender.Alive = false
		defender.Conscious = false
		result.Dead = true
	}

	return result
}
