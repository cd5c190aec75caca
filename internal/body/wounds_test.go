package body

import "testing"

func TestWoundDispatchTableMatchesDamageWoundTable(t *testing.T) {
	cases := []struct {
		damage    DamageType
		severity  Severity
		destroyed bool
		want      WoundType
	}{
		{DamageSlash, SeverityMinor, false, WoundScratch},
		{DamageSlash, SeverityModerate, false, WoundCut},
		{DamageSlash, SeveritySevere, false, WoundGash},
		{DamageSlash, SeverityCritical, true, WoundSevered},
		{DamageBlunt, SeverityMinor, false, WoundBruise},
		{DamageBlunt, SeverityModerate, false, WoundContusion},
		{DamageBlunt, SeveritySevere, false, WoundFracture},
		{DamageBlunt, SeverityCritical, true, WoundDestroyed},
		{DamagePierce, SeverityMinor, false, WoundScratch},
		{DamagePierce, SeverityModerate, false, WoundPuncture},
		{DamagePierce, SeveritySevere, false, WoundPuncture},
		{DamagePierce, SeverityCritical, true, WoundDestroyed},
		{DamageFire, SeverityCritical, true, WoundDestroyed},
		{DamageCold, SeverityCritical, true, WoundDestroyed},
		{DamagePoison, SeverityModerate, false, WoundNecrosis},
	}
	for _, c := range cases {
		got := WoundTypeFor(c.damage, c.severity, c.destroyed)
		if got != c.want {
			t.Fatalf("%v/%v destroyed=%v: expected %v, got %v", c.damage, c.severity, c.destroyed, c.want, got)
		}
	}
}

func TestWoundTypeForSlashCriticalDestroyedSevers(t *testing.T) {
	if got := WoundTypeFor(DamageSlash, SeverityCritical, true); got != WoundSevered {
		t.Fatalf("expected slash-critical destruction to sever, got %v", got)
	}
}

func TestWoundTypeForNonSlashDestroyedNeverSevers(t *testing.T) {
	cases := []DamageType{DamageBlunt, DamagePierce, DamageFire, DamageCold, DamagePoison}
	for _, d := range cases {
		if got := WoundTypeFor(d, SeverityCritical, true); got == WoundSevered {
			t.Fatalf("expected %v critical destruction to never sever, got %v", d, got)
		}
	}
}

func TestIsIncapacitatingMatchesTable(t *testing.T) {
	for _, w := range []WoundType{WoundSevered, WoundDestroyed, WoundCompoundFracture} {
		if !w.IsIncapacitating() {
			t.Fatalf("expected %v to be incapacitating", w)
		}
	}
	if WoundScratch.IsIncapacitating() {
		t.Fatal("expected a scratch to not be incapacitating")
	}
}

func TestNewWoundDerivesBleedingOnlyForBleedingTypes(t *testing.T) {
	w := NewWound("left arm", WoundCut, SeverityModerate, DamageSlash, 5)
	if w.BleedingRate != SeverityModerate.BleedingRate() {
		t.Fatalf("expected a cut to bleed at its severity's rate, got %v", w.BleedingRate)
	}

	bruise := NewWound("torso", WoundBruise, SeverityModerate, DamageBlunt, 5)
	if bruise.BleedingRate != 0 {
		t.Fatalf("expected a bruise to not bleed, got %v", bruise.BleedingRate)
	}
}

func TestTreatCutsBleedingRateToOneFifth(t *testing.T) {
	w := NewWound("left arm", WoundGash, SeveritySevere, DamageSlash, 1)
	rate := w.BleedingRate
	w.Treat()
	if w.BleedingRate != rate*0.2 {
		t.Fatalf("expected Treat to cut bleeding to 20%%, got %v from %v", w.BleedingRate, rate)
	}
	if !w.Treated {
		t.Fatal("expected Treat to mark the wound treated")
	}
}

func TestSeverityFromDamageRatioThresholds(t *testing.T) {
	cases := []struct {
		ratio float64
		want  Severity
	}{
		{0.1, SeverityMinor},
		{0.25, SeverityModerate},
		{0.5, SeveritySevere},
		{0.8, SeverityCritical},
		{1.5, SeverityCritical},
	}
	for _, c := range cases {
		if got := SeverityFromDamageRatio(c.ratio); got != c.want {
			t.Fatalf("ratio %v: expected %v, got %v", c.ratio, c.want, got)
		}
	}
}
