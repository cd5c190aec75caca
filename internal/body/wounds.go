package body

// DamageType enumerates the kinds of damage a body part can take.
type DamageType uint8

const (
	DamageSlash DamageType = iota
	DamageBlunt
	DamagePierce
	DamageFire
	DamageCold
	DamagePoison
	NumDamageTypes
)

// Severity buckets how much of a part's health a single hit removed.
type Severity uint8

const (
	SeverityMinor Severity = iota
	SeverityModerate
	SeveritySevere
	SeverityCritical
)

// SeverityFromDamageRatio classifies severity from the fraction of a part's max
// health lost in one hit, matching the original's 0.8/0.5/0.25 thresholds.
func SeverityFromDamageRatio(ratio float64) Severity {
	switch {
	case ratio >= 0.8:
		return SeverityCritical
	case ratio >= 0.5:
		return SeveritySevere
	case ratio >= 0.25:
		return SeverityModerate
	default:
		return SeverityMinor
	}
}

// Impairment is the fractional function loss a wound of this severity
// imposes on top of raw health loss.
func (s Severity) Impairment() float64 {
	switch s {
	case SeverityMinor:
		return 0.05
	case SeverityModerate:
		return 0.2
	case SeveritySevere:
		return 0.5
	case SeverityCritical:
		return 0.9
	default:
		return 0
	}
}

// BleedingRate is how much health a wound of this severity drains per tick
// until treated, matching the original's bleeding_rate table.
func (s Severity) BleedingRate() float64 {
	switch s {
	case SeverityMinor:
		return 0
	case SeverityModerate:
		return 0.5
	case SeveritySevere:
		return 1.5
	case SeverityCritical:
		return 3.0
	default:
		return 0
	}
}

// Pain is the pain a wound of this severity inflicts, on the same 0-100
// scale as Character.pain_threshold (50 * willpower_mod), matching the
// original's pain table.
func (s Severity) Pain() float64 {
	switch s {
	case SeverityMinor:
		return 5.0
	case SeverityModerate:
		return 15.0
	case SeveritySevere:
		return 30.0
	case SeverityCritical:
		return 50.0
	default:
		return 0
	}
}

// CausesBleeding reports whether a wound of this type bleeds at all,
// matching the original's WoundType::causes_bleeding.
func (w WoundType) CausesBleeding() bool {
	switch w {
	case WoundCut, WoundGash, WoundPuncture, WoundImpalement, WoundCompoundFracture, WoundSevered:
		return true
	default:
		return false
	}
}

// WoundType names the physical character of a wound, dispatched from the
// (DamageType, Severity) pair that caused it.
type WoundType uint8

const (
	WoundScratch WoundType = iota
	WoundCut
	WoundGash
	WoundBruise
	WoundContusion
	WoundFracture
	WoundCompoundFracture
	WoundPuncture
	WoundImpalement
	WoundBurnFirstDegree
	WoundBurnSecondDegree
	WoundBurnThirdDegree
	WoundFrostbite
	WoundNecrosis
	WoundSevered
	WoundDestroyed
)

func (w WoundType) String() string {
	names := [...]string{
		"scratch", "cut", "gash", "bruise", "contusion", "fracture",
		"compound fracture", "puncture", "impalement", "first-degree burn",
		"second-degree burn", "third-degree burn", "frostbite", "necrosis",
		"severed limb", "destroyed part",
	}
	if int(w) < len(names) {
		return names[w]
	}
	return "wound"
}

// IsIncapacitating reports whether this wound type alone can take a
// combatant out of the fight regardless of severity, matching the
// original's WoundType::is_incapacitating (minus the unreachable Crush
// case, which no (damage type, severity) pair ever produces).
func (w WoundType) IsIncapacitating() bool {
	switch w {
	case WoundSevered, WoundDestroyed, WoundCompoundFracture:
		return true
	default:
		return false
	}
}

// woundDispatch maps (DamageType, Severity) to the wound type it produces
// for a part that survives the hit, matching the damage-type/wound-type
// table. A part the hit destroys is resolved separately: Slash+Critical
// becomes WoundSevered, anything else destroyed becomes WoundDestroyed.
var woundDispatch = map[DamageType][4]WoundType{
	DamageSlash:  {WoundScratch, WoundCut, WoundGash, WoundSevered},
	DamageBlunt:  {WoundBruise, WoundContusion, WoundFracture, WoundCompoundFracture},
	DamagePierce: {WoundScratch, WoundPuncture, WoundPuncture, WoundImpalement},
	DamageFire:   {WoundBurnFirstDegree, WoundBurnSecondDegree, WoundBurnThirdDegree, WoundDestroyed},
	DamageCold:   {WoundFrostbite, WoundFrostbite, WoundFrostbite, WoundDestroyed},
	DamagePoison: {WoundBruise, WoundNecrosis, WoundNecrosis, WoundNecrosis},
}

// WoundTypeFor dispatches a (damage type, severity, destroyed) triple to
// its wound type. destroyed overrides the severity-indexed table per the
// table's Critical column for Slash/Fire/Cold.
func WoundTypeFor(d DamageType, s Severity, destroyed bool) WoundType {
	if destroyed {
		if d == DamageSlash && s == SeverityCritical {
			return WoundSevered
		}
		return WoundDestroyed
	}
	row, ok := woundDispatch[d]
	if !ok {
		return WoundBruise
	}
	return row[s]
}

// Wound is one recorded injury on a specific body part, matching the
// original's Wound struct.
type Wound struct {
	PartName     string
	Type         WoundType
	Severity     Severity
	Damage       DamageType
	BleedingRate float64
	Pain         float64
	TickTaken    uint64
	Treated      bool
}

// NewWound builds a wound, deriving bleeding rate from whether this wound
// type bleeds at all and pain from severity alone.
func NewWound(partName string, t WoundType, s Severity, d DamageType, tick uint64) Wound {
	rate := 0.0
	if t.CausesBleeding() {
		rate = s.BleedingRate()
	}
	return Wound{
		PartName: partName, Type: t, Severity: s, Damage: d,
		BleedingRate: rate, Pain: s.Pain(), TickTaken: tick,
	}
}

// Treat cuts a wound's ongoing bleeding to a fifth, matching the original's
// Wound::treat (which also reduces infection risk, not modeled here).
func (w *Wound) Treat() {
	w.Treated = true
	w.BleedingRate *= 0.2
}

// Effect is a transient combat status an attack can inflict alongside raw
// damage, matching the original's CombatEffect enum (LimbSevered and Dead
// carry data and are represented on Result directly rather than here).
type Effect uint8

const (
	EffectStaggered Effect = iota
	EffectKnockdown
	EffectStunned
	EffectUnconscious
)

func (e Effect) String() string {
	switch e {
	case EffectStaggered:
		return "staggered"
	case EffectKnockdown:
		return "knocked down"
	case EffectStunned:
		return "stunned"
	case EffectUnconscious:
		return "unconscious"
	default:
		return "affected"
	}
}
