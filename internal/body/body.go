// Package body implements the wound-bearing body model: parts with
// category/size/tissue/function, tissue resistance per damage type, and
// wound severity/type tables. Grounded on
// original_source/src/simulation/body/parts.rs and wounds.rs, which have
// no teacher-repo analogue; re-expressed in the teacher's table-driven
// enum+accessor idiom (colonist.Traits, tech.Age) rather than transliterated
// from Rust.
package body

// Category groups body parts by general kind.
type Category uint8

const (
	CategoryHead Category = iota
	CategoryTorso
	CategoryArm
	CategoryHand
	CategoryLeg
	CategoryFoot
	CategoryTail
	CategoryWing
	CategoryHorn
	CategoryOrgan
)

// Size determines how often a part is hit in a size-weighted target roll.
type Size uint8

const (
	SizeTiny Size = iota
	SizeSmall
	SizeMedium
	SizeLarge
	SizeHuge
)

// HitWeight is the relative likelihood a part of this size is struck,
// matching the original's hit_weight table exactly.
func (s Size) HitWeight() float64 {
	switch s {
	case SizeTiny:
		return 0.05
	case SizeSmall:
		return 0.10
	case SizeMedium:
		return 0.20
	case SizeLarge:
		return 0.25
	case SizeHuge:
		return 0.40
	default:
		return 0.20
	}
}

// Tissue determines a part's resistance to each damage type.
type Tissue uint8

const (
	TissueFlesh Tissue = iota
	TissueBone
	TissueChitin
	TissueScale
	TissueHide
	TissueFur
	TissueIchor
	TissueWood
)

// resistance holds [DamageType] -> multiplier applied to incoming damage
// before it reaches a part's health, 1.0 meaning no mitigation.
var resistance = map[Tissue][NumDamageTypes]float64{
	TissueFlesh:  {DamageSlash: 1.0, DamageBlunt: 1.0, DamagePierce: 1.0, DamageFire: 1.1, DamageCold: 1.0, DamagePoison: 1.2},
	TissueBone:   {DamageSlash: 0.7, DamageBlunt: 1.3, DamagePierce: 0.6, DamageFire: 0.9, DamageCold: 0.8, DamagePoison: 0.5},
	TissueChitin: {DamageSlash: 0.6, DamageBlunt: 0.8, DamagePierce: 0.9, DamageFire: 1.2, DamageCold: 0.9, DamagePoison: 0.4},
	TissueScale:  {DamageSlash: 0.5, DamageBlunt: 0.9, DamagePierce: 0.7, DamageFire: 0.8, DamageCold: 0.7, DamagePoison: 0.5},
	TissueHide:   {DamageSlash: 0.8, DamageBlunt: 0.9, DamagePierce: 0.8, DamageFire: 1.0, DamageCold: 0.7, DamagePoison: 0.9},
	TissueFur:    {DamageSlash: 0.9, DamageBlunt: 0.9, DamagePierce: 0.9, DamageFire: 1.3, DamageCold: 0.5, DamagePoison: 1.0},
	TissueIchor:  {DamageSlash: 1.1, DamageBlunt: 0.7, DamagePierce: 1.1, DamageFire: 0.9, DamageCold: 1.1, DamagePoison: 0.3},
	TissueWood:   {DamageSlash: 0.7, DamageBlunt: 0.6, DamagePierce: 0.8, DamageFire: 1.8, DamageCold: 1.0, DamagePoison: 1.0},
}

// Resistance returns the tissue's multiplier for a damage type, defaulting
// to 1.0 for unmapped combinations.
func (t Tissue) Resistance(d DamageType) float64 {
	table, ok := resistance[t]
	if !ok {
		return 1.0
	}
	return table[d]
}

// Function is a capability a body part provides; losing it impairs the
// owner's related actions.
type Function uint8

const (
	FunctionSight Function = iota
	FunctionHearing
	FunctionGrip
	FunctionLocomotion
	FunctionBalance
	FunctionBreathing
	FunctionDigestion
	FunctionCirculation
	FunctionSpeech
	FunctionFlight
)

// Part is one body part instance belonging to a combatant.
type Part struct {
	Name      string
	Category  Category
	Size      Size
	Tissue    Tissue
	Functions []Function
	Health    float64
	MaxHealth float64
	Severed   bool
	Vital     bool // destroying a vital part kills the owner outright
}

// NewPart constructs a part at full health.
func NewPart(name string, cat Category, size Size, tissue Tissue, vital bool, fns ...Function) Part {
	return Part{
		Name: name, Category: cat, Size: size, Tissue: tissue,
		Functions: fns, Health: 100, MaxHealth: 100, Vital: vital,
	}
}

// Impairment returns how much this part's function is degraded, 0 meaning
// fully functional and 1 meaning fully lost (severed or zero health).
func (p *Part) Impairment() float64 {
	if p.Severed || p.MaxHealth <= 0 {
		return 1.0
	}
	lost := 1.0 - p.Health/p.MaxHealth
	if lost < 0 {
		return 0
	}
	if lost > 1 {
		return 1
	}
	return lost
}

// ApplyDamage reduces a part's health by amount (already tissue-mitigated),
// reporting whether the part was destroyed. It does not decide severing:
// that is a wound-type judgment (Slash+Critical only) made by the combat
// package via Sever.
func (p *Part) ApplyDamage(amount float64) (destroyed bool) {
	p.Health -= amount
	if p.Health <= 0 {
		p.Health = 0
		destroyed = true
	}
	return destroyed
}

// Sever marks a destroyed part as severed outright, called by the combat
// package only when the inflicting wound type is Severed.
func (p *Part) Sever() {
	p.Severed = true
}

// Heal restores health up to MaxHealth, a no-op on severed parts.
func (p *Part) Heal(amount float64) {
	if p.Severed {
		return
	}
	p.Health += amount
	if p.Health > p.MaxHealth {
		p.Health = p.MaxHealth
	}
}
