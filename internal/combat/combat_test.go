package combat

import (
	"math/rand"
	"testing"

	"github.com/talgya/worldhistory/internal/body"
)

func newTestCombatant(name string) *Combatant {
	return &Combatant{
		Name:       name,
		Stamina:    100,
		MaxStamina: 100,
		Alive:      true,
		Conscious:  true,
		Agility:    50,
		Strength:   50,
		Toughness:  50,
		Willpower:  50,
		Parts: []body.Part{
			body.NewPart("torso", body.CategoryTorso, body.SizeLarge, body.TissueFlesh, true),
			body.NewPart("head", body.CategoryHead, body.SizeSmall, body.TissueBone, true),
			body.NewPart("left arm", body.CategoryArm, body.SizeMedium, body.TissueFlesh, false),
		},
		WeaponDamage: 20,
		WeaponType:   body.DamageSlash,
	}
}

func TestResolveAttackConsumesStamina(t *testing.T) {
	attacker := newTestCombatant("a")
	defender := newTestCombatant("b")
	rng := rand.New(rand.NewSource(1))
	ResolveAttack(attacker, defender, 0, rng)
	if attacker.Stamina != 100-AttackStaminaCost {
		t.Fatalf("expected stamina reduced by %v, got %v", AttackStaminaCost, attacker.Stamina)
	}
}

func TestResolveAttackUnableWhenStaminaTooLow(t *testing.T) {
	attacker := newTestCombatant("a")
	attacker.Stamina = 5
	defender := newTestCombatant("b")
	rng := rand.New(rand.NewSource(1))
	res := ResolveAttack(attacker, defender, 0, rng)
	if !res.Unable {
		t.Fatal("expected Unable when attacker stamina is at or below the can-attack floor")
	}
}

func TestResolveAttackDamagesAPart(t *testing.T) {
	attacker := newTestCombatant("a")
	attacker.WeaponAccuracy = 1 // force near-certain hits for this test
	defender := newTestCombatant("b")
	rng := rand.New(rand.NewSource(42))

	hitLanded := false
	for i := 0; i < 50; i++ {
		res := ResolveAttack(attacker, defender, uint64(i), rng)
		if res.Hit {
			hitLanded = true
			break
		}
	}
	if !hitLanded {
		t.Fatal("expected at least one hit across 50 attempts")
	}
}

func TestResolveAttackSlashCriticalSevers(t *testing.T) {
	attacker := newTestCombatant("a")
	attacker.WeaponAccuracy = 1
	attacker.WeaponDamage = 1000 // force a destroying critical hit
	defender := newTestCombatant("b")
	rng := rand.New(rand.NewSource(7))

	var res Result
	for i := 0; i < 50; i++ {
		res = ResolveAttack(attacker, defender, uint64(i), rng)
		if res.Hit && res.Destroyed {
			break
		}
	}
	if !res.Destroyed {
		t.Fatal("expected a massive slash hit to destroy the target part")
	}
	if res.WoundType != body.WoundSevered {
		t.Fatalf("expected slash-critical destruction to sever, got wound type %v", res.WoundType)
	}
}

func TestIsDownWhenVitalPartDestroyed(t *testing.T) {
	c := newTestCombatant("a")
	c.Parts[0].Health = 0 // torso is vital
	if !c.IsDown() {
		t.Fatal("expected combatant down when a vital part is destroyed")
	}
}

func TestHitChanceClampedToBounds(t *testing.T) {
	attacker := newTestCombatant("a")
	attacker.Agility = 500 // absurd value to try to push chance past 0.95
	attacker.WeaponAccuracy = 5
	defender := newTestCombatant("b")
	if c := HitChance(attacker, defender); c > 0.95 {
		t.Fatalf("expected hit chance clamped at 0.95, got %v", c)
	}
}

func TestHitChanceClampedToFloor(t *testing.T) {
	attacker := newTestCombatant("a")
	attacker.Agility = -500
	attacker.WeaponAccuracy = -5
	defender := newTestCombatant("b")
	if c := HitChance(attacker, defender); c < 0.1 {
		t.Fatalf("expected hit chance clamped at 0.1, got %v", c)
	}
}

func TestAttributeModifierMidrangeIsOne(t *testing.T) {
	if m := AttributeModifier(50); m != 1.0 {
		t.Fatalf("expected attribute 50 to give modifier 1.0, got %v", m)
	}
}
