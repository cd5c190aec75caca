// Package society implements leader succession, dynasties, and the
// succession-crisis counter. Grounded on the teacher's engine/governance.go
// (ensureLeader, selectLeaderByWealth/Coherence, checkRevolution) for
// structure, and original_source/src/simulation/society/succession.rs for
// the succession-method age-range table recovered from the distillation.
package society

import (
	"fmt"
	"math/rand"

	"github.com/talgya/worldhistory/internal/ids"
)

// Method is how a tribe selects its next leader.
type Method uint8

const (
	Hereditary Method = iota
	Divine
	Election
	ElderCouncil
	Coup
	WealthElection
)

type ageRange struct {
	min, spread int
	titlePrefix string
}

var methodAgeRanges = map[Method]ageRange{
	Hereditary:     {18, 20, ""},
	Divine:         {30, 30, "High Priest "},
	Election:       {35, 25, ""},
	ElderCouncil:   {50, 20, "Elder "},
	Coup:           {30, 20, "General "},
	WealthElection: {40, 25, "Merchant Prince "},
}

// SelectNewLeader picks a successor's name and age, preferring an existing
// notable when the method favors continuity (hereditary/election), and
// fabricating a titled name otherwise. rng must be the engine's single
// shared source.
func SelectNewLeader(method Method, notableNames []string, rng *rand.Rand) (name string, age int) {
	r := methodAgeRanges[method]
	age = r.min + rng.Intn(r.spread)

	switch method {
	case Hereditary:
		if len(notableNames) > 0 && rng.Float64() < 0.7 {
			return notableNames[rng.Intn(len(notableNames))], age
		}
		return r.titlePrefix + generateLeaderName(rng), age
	case Election:
		if len(notableNames) > 0 {
			return notableNames[rng.Intn(len(notableNames))], age
		}
		return generateLeaderName(rng), age
	default:
		return r.titlePrefix + generateLeaderName(rng), age
	}
}

var leaderFirstNames = []string{
	"Aldric", "Beren", "Cadmus", "Doran", "Edmund", "Falk", "Gareth", "Harald",
	"Ingvar", "Jorund", "Kael", "Leofric", "Magnus", "Nils", "Osric", "Ragnar",
	"Sigurd", "Theron", "Ulric", "Valdis", "Wulfric", "Yngvar", "Zoran", "Aeric",
}

var leaderSurnames = []string{
	"Ironhand", "Stoneheart", "Goldmantle", "Silverbrow", "Blackwood", "Redmane",
	"Whitestorm", "Greywolf", "Darkwater", "Brightforge", "Swiftarrow", "Strongbow",
}

func generateLeaderName(rng *rand.Rand) string {
	return fmt.Sprintf("%s %s",
		leaderFirstNames[rng.Intn(len(leaderFirstNames))],
		leaderSurnames[rng.Intn(len(leaderSurnames))])
}

// LeaderDeathProbability returns the per-tick chance a leader of the given
// age dies of old age, banded exactly as the recovered succession table.
func LeaderDeathProbability(age int) float64 {
	switch {
	case age < 40:
		return 0.001
	case age < 60:
		return 0.01
	case age < 70:
		return 0.03
	case age < 80:
		return 0.08
	default:
		return 0.15
	}
}

// Dynasty tracks a lineage of leaders for one tribe.
type Dynasty struct {
	ID        ids.DynastyID
	TribeID   ids.TribeID
	FounderID ids.FigureID
	Leaders   []ids.FigureID
}

// State tracks one tribe's current succession standing.
type State struct {
	LeaderID          *ids.FigureID
	LeaderAge         int
	Method            Method
	InCrisis          bool
	CrisisTicksLeft   int
	CrisisCount       int
}

// BeginCrisis starts a succession crisis, lasting the given number of ticks
// before a new leader is chosen. Crises compound: repeated crises in close
// succession increment CrisisCount for destabilization tracking elsewhere.
func (s *State) BeginCrisis(durationTicks int) {
	s.LeaderID = nil
	s.InCrisis = true
	s.CrisisTicksLeft = durationTicks
	s.CrisisCount++
}

// Tick advances the crisis countdown by one tick. Returns true once the
// crisis duration has elapsed and a new leader may be selected.
func (s *State) Tick() bool {
	if !s.InCrisis {
		return false
	}
	if s.CrisisTicksLeft > 0 {
		s.CrisisTicksLeft--
	}
	return s.CrisisTicksLeft == 0
}

// Resolve installs the chosen leader and clears crisis state.
func (s *State) Resolve(leader ids.FigureID, age int) {
	s.LeaderID = &leader
	s.LeaderAge = age
	s.InCrisis = false
	s.CrisisTicksLeft = 0
}
