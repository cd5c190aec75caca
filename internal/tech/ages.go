// Package tech implements the Stone through Renaissance technology ladder.
// No equivalent exists in the teacher; grounded on
// original_source/src/simulation/technology/ages.rs, expressed in the
// teacher's table-driven-dispatch idiom (see engine/seasons.go's
// ResourceCap switch table) rather than translated directly from Rust.
package tech

// Age is a technological era. Advancement is non-reversible: a tribe's Age
// only ever moves forward.
type Age uint8

const (
	Stone Age = iota
	Copper
	Bronze
	Iron
	Classical
	Medieval
	Renaissance
	numAges
)

func (a Age) String() string {
	names := [...]string{"Stone", "Copper", "Bronze", "Iron", "Classical", "Medieval", "Renaissance"}
	if int(a) < len(names) {
		return names[a]
	}
	return "Unknown"
}

// Next returns the following age and true, or Renaissance and false if
// already at the ladder's top.
func (a Age) Next() (Age, bool) {
	if a >= Renaissance {
		return Renaissance, false
	}
	return a + 1, true
}

type requirements struct {
	minPopulation      uint64
	militaryMultiplier float64
	productionMultiplier float64
}

var table = [numAges]requirements{
	Stone:       {0, 1.0, 1.0},
	Copper:      {50, 1.2, 1.1},
	Bronze:      {100, 1.5, 1.2},
	Iron:        {200, 2.0, 1.4},
	Classical:   {350, 2.5, 1.6},
	Medieval:    {500, 3.0, 1.8},
	Renaissance: {750, 4.0, 2.2},
}

// RequiredPopulation returns the minimum population needed to enter this age.
func (a Age) RequiredPopulation() uint64 { return table[a].minPopulation }

// MilitaryMultiplier scales an army's combat strength by tech age.
func (a Age) MilitaryMultiplier() float64 { return table[a].militaryMultiplier }

// ProductionMultiplier scales workplace output by tech age.
func (a Age) ProductionMultiplier() float64 { return table[a].productionMultiplier }

// CanAdvance reports whether a tribe at the given population may advance to
// the next age. Advancement is one step at a time and never skips an age.
func (a Age) CanAdvance(population uint64) (Age, bool) {
	next, ok := a.Next()
	if !ok {
		return a, false
	}
	if population < next.RequiredPopulation() {
		return a, false
	}
	return next, true
}

// All returns every age in ladder order.
func All() []Age {
	ages := make([]Age, numAges)
	for i := range ages {
		ages[i] = Age(i)
	}
	return ages
}
