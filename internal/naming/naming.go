// Package naming generates figure and tribe names from a handful of fixed
// word pools. Names are not keyed by culture, and this package has no
// settlement-name pool. Grounded on the teacher's agents/spawner.go
// generateName (first/last name pools indexed by sex), generalized with a
// tribe pool alongside the figure pool, after the original Rust
// implementation's history/naming/styles.rs generator in spirit without
// transliterating its table structure.
package naming

import "math/rand"

var maleNames = []string{
	"Bron", "Cael", "Darrow", "Eamon", "Fenric", "Garrick", "Hale", "Ivon",
	"Joran", "Kestrel", "Lorcan", "Maren", "Nye", "Orin", "Perrin", "Quill",
	"Roderic", "Soren", "Talen", "Ulric", "Varek", "Wystan",
}

var femaleNames = []string{
	"Aldis", "Brenna", "Ceridwen", "Dessa", "Eirwen", "Freya", "Greta",
	"Hestia", "Iona", "Jessamy", "Kaia", "Liora", "Maren", "Nerys", "Ottilie",
	"Pernilla", "Quenna", "Rowan", "Seren", "Thessaly", "Una", "Vesna",
}

var lastNames = []string{
	"Ashgrove", "Blackmere", "Cinderfall", "Duskwood", "Emberlyn",
	"Fellwater", "Grayspire", "Hollowmere", "Ironvale", "Junebrook",
	"Kestrelwood", "Longmarch", "Mossbarrow", "Nightfen", "Oakenfold",
	"Pinehollow", "Quarrywick", "Ravensbrook", "Stonefallow", "Thornfield",
	"Underhill", "Vesperwood", "Wrenhollow",
}

var tribeNameStems = []string{
	"Rowan", "Thorn", "Ash", "Wren", "Stag", "Bramble", "Hollow", "Ember",
	"Fen", "Gale", "Heron", "Iron", "Jasper", "Kestrel", "Loam", "Moss",
}

var tribeNameSuffixes = []string{
	"Clan", "Folk", "Kindred", "Confederacy", "Tribe", "Hold", "Pact",
	"Kinship", "Band", "Council",
}

// Figure produces a full name drawn from the sex-appropriate first-name
// pool and the shared last-name pool, matching the teacher's
// generateName's pool-and-concatenate shape.
func Figure(male bool, rng *rand.Rand) string {
	firsts := femaleNames
	if male {
		firsts = maleNames
	}
	first := firsts[rng.Intn(len(firsts))]
	last := lastNames[rng.Intn(len(lastNames))]
	return first + " " + last
}

// Tribe produces a two-word tribe name from a stem and a suffix,
// e.g. "Rowan Clan".
func Tribe(rng *rand.Rand) string {
	stem := tribeNameStems[rng.Intn(len(tribeNameStems))]
	suffix := tribeNameSuffixes[rng.Intn(len(tribeNameSuffixes))]
	return stem + " " + suffix
}
