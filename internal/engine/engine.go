// Package engine drives the fixed-order per-season tick loop over a
// worldhistory.WorldHistory: needs, jobs, production, technology,
// population, territory, diplomacy, trade, conflict, war declaration and
// sieges, migration, monster/fauna, notables lifecycle, succession,
// religion and legacy (artifacts, monuments), reputation decay, and
// chronicle compaction, in that order every tick. Grounded on the
// teacher's engine/tick.go Engine (Tick/Speed/Interval/Running fields,
// Run/Stop loop shape), generalized from the teacher's minute-granularity
// callback scheduler to a single season-granularity step, since spec's
// time model is one tick per season rather than sim-minutes.
package engine

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/talgya/worldhistory/internal/worldhistory"
)

// Engine drives a WorldHistory forward one season at a time.
type Engine struct {
	World    *worldhistory.WorldHistory
	RNG      *rand.Rand
	Speed    float64       // multiplier: 1.0 = real-time, <= 0 = no pacing (as fast as possible)
	Interval time.Duration // wall-clock time per season at Speed 1.0
	Running  bool
}

// NewEngine constructs an engine over an existing world, seeding its RNG
// from the world's configured seed so a run is fully reproducible.
func NewEngine(world *worldhistory.WorldHistory) *Engine {
	return &Engine{
		World:    world,
		RNG:      rand.New(rand.NewSource(int64(world.Config.Seed))),
		Speed:    1.0,
		Interval: time.Second,
	}
}

// Run advances the world by the given number of seasons, sleeping between
// steps according to Speed/Interval. Speed <= 0 runs as fast as possible.
func (e *Engine) Run(seasons uint64) {
	e.Running = true
	slog.Info("world history engine started", "tick", e.World.CurrentTick, "seasons", seasons)

	for i := uint64(0); i < seasons && e.Running; i++ {
		start := time.Now()

		e.StepSeason()

		if e.Speed > 0 {
			elapsed := time.Since(start)
			target := time.Duration(float64(e.Interval) / e.Speed)
			if elapsed < target {
				time.Sleep(target - elapsed)
			}
		}
	}

	slog.Info("world history engine stopped", "tick", e.World.CurrentTick)
}

// Stop halts a Run loop after its current season finishes.
func (e *Engine) Stop() {
	e.Running = false
}

// StepSeason runs every subsystem pass once, in spec's fixed order, then
// advances the world clock. Never reorders passes: later passes
// (diplomacy, trade, conflict) depend on the needs/production state the
// earlier passes just settled.
func (e *Engine) StepSeason() {
	w := e.World

	stepNeeds(w)
	stepJobs(w)
	stepProduction(w)
	stepTechnology(w)
	stepPopulation(w, e.RNG)
	stepTerritory(w)
	stepDiplomacy(w, e.RNG)
	stepTrade(w)
	stepConflict(w, e.RNG)
	stepWarDeclaration(w, e.RNG)
	stepSieges(w, e.RNG)
	stepWarResolution(w)
	stepMigration(w, e.RNG)
	stepMonsters(w, e.RNG)
	stepNotables(w, e.RNG)
	stepSuccession(w, e.RNG)
	stepReligion(w, e.RNG)
	stepArtifacts(w, e.RNG)
	stepMonuments(w, e.RNG)
	stepReputationDecay(w)
	stepChronicleCompaction(w)

	w.Advance()
}
