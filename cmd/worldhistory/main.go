// Command worldhistory runs the tick-driven fantasy world history engine:
// it generates (or resumes) a world, founds its initial tribes, and steps
// the engine forward season by season, periodically checkpointing to
// SQLite.
package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/talgya/worldhistory/internal/colonist"
	"github.com/talgya/worldhistory/internal/engine"
	"github.com/talgya/worldhistory/internal/ids"
	"github.com/talgya/worldhistory/internal/naming"
	"github.com/talgya/worldhistory/internal/needs"
	"github.com/talgya/worldhistory/internal/persistence"
	"github.com/talgya/worldhistory/internal/poolpop"
	"github.com/talgya/worldhistory/internal/society"
	"github.com/talgya/worldhistory/internal/stockpile"
	"github.com/talgya/worldhistory/internal/world"
	"github.com/talgya/worldhistory/internal/worldhistory"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	slog.Info("World History Engine starting")

	seed := envUint64("WORLDHISTORY_SEED", 42)
	years := envUint64("WORLDHISTORY_YEARS", 50)
	dbPath := envString("WORLDHISTORY_DB", "data/worldhistory.db")
	radius := int(envUint64("WORLDHISTORY_RADIUS", 22))
	saveEveryYears := envUint64("WORLDHISTORY_SAVE_INTERVAL", 5)

	// ── Database ──────────────────────────────────────────────────────
	os.MkdirAll("data", 0755)
	db, err := persistence.Open(dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", dbPath)

	// ── World Map (always regenerated — deterministic from seed) ──────
	slog.Info("generating world map...")
	genCfg := world.DefaultGenConfig()
	genCfg.Radius = radius
	genCfg.Seed = int64(seed)
	worldMap := world.Generate(genCfg)

	landHexes := 0
	for t, c := range world.TerrainCounts(worldMap) {
		if t != world.TerrainOcean {
			landHexes += c
		}
		slog.Info("terrain", "type", world.TerrainName(t), "count", c)
	}

	cfg := worldhistory.Config{Seed: seed, WorldWidth: radius, WorldHeight: radius}

	var w *worldhistory.WorldHistory
	if db.HasWorldState() {
		slog.Info("found saved world state, loading...")
		w, err = persistence.LoadWorldState(db, cfg, worldMap)
		if err != nil {
			slog.Error("failed to load world state", "error", err)
			os.Exit(1)
		}
		slog.Info("world state restored",
			"tribes", len(w.Tribes),
			"colonists", len(w.Colonists),
			"tick", w.CurrentTick,
			"date", w.CurrentDate.String(),
		)
	} else {
		slog.Info("no saved state found, generating new world...")
		w = worldhistory.New(cfg, seed)
		w.WorldMap = worldMap
		foundTribes(w, worldMap, seed)

		slog.Info("world founded",
			"tribes", len(w.Tribes),
			"colonists", len(w.Colonists),
			"hexes", worldMap.HexCount(),
		)

		if err := db.SaveWorldState(w); err != nil {
			slog.Error("initial save failed", "error", err)
		}
	}

	// ── Engine ────────────────────────────────────────────────────────
	eng := engine.NewEngine(w)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		eng.Stop()
	}()

	fmt.Printf("\nThe world is alive: %d tribes across %d land hexes, year %d.\n",
		len(w.Tribes), landHexes, w.CurrentDate.Year)
	fmt.Printf("Running %d years (Ctrl+C to stop early)...\n", years)

	totalSeasons := years * uint64(worldtimeSeasonsPerYear)
	saveEverySeasons := saveEveryYears * uint64(worldtimeSeasonsPerYear)
	if saveEverySeasons == 0 {
		saveEverySeasons = 1
	}

	eng.Running = true
	for i := uint64(0); i < totalSeasons && eng.Running; i++ {
		eng.StepSeason()

		if (i+1)%saveEverySeasons == 0 {
			if err := db.SaveWorldState(w); err != nil {
				slog.Error("periodic save failed", "error", err, "tick", w.CurrentTick)
			} else {
				slog.Info("checkpoint saved", "tick", w.CurrentTick, "date", w.CurrentDate.String())
			}
		}
	}

	if err := db.SaveWorldState(w); err != nil {
		slog.Error("final save failed", "error", err)
	}

	slog.Info("world history run complete",
		"tick", w.CurrentTick,
		"date", w.CurrentDate.String(),
		"living_tribes", len(w.LivingTribes()),
		"chronicle_events", w.Chronicle.Len(),
	)
}

// worldtimeSeasonsPerYear mirrors worldtime.TotalSeasons without importing
// the package just for a constant.
const worldtimeSeasonsPerYear = 4

// foundTribes places initial settlements across the generated map and
// founds one tribe per settlement seed, seeding its population pool,
// stockpile, needs, and a founding notable. Grounded on the teacher's
// worldsim/main.go settlement/agent spawning loop, generalized from
// agents+settlements onto tribes+colonists.
func foundTribes(w *worldhistory.WorldHistory, worldMap *world.Map, seed uint64) {
	seeds := world.PlaceSettlements(worldMap, int64(seed))
	rng := rand.New(rand.NewSource(int64(seed) + 900))

	for _, ss := range seeds {
		gov := governanceForSize(ss.Size, rng)
		hex := worldMap.Get(ss.Coord)

		culture := worldhistory.Culture{
			Name:             ss.Name,
			WarInclination:   rng.Float32(),
			ReligiousFervor:  rng.Float32(),
			TradeInclination: rng.Float32(),
		}
		applyTerrainCultureBias(&culture, hex)

		tribe := w.FoundTribe(naming.Tribe(rng), culture, gov, ss.Coord)

		if hex != nil {
			sid := uint64(tribe.CapitalSettlement)
			hex.SettlementID = &sid
		}
		w.Territory.Claim(ss.Coord, tribe.ID, w.CurrentTick)

		pop := uint64(world.PopulationForSize(ss.Size, rng))
		tribe.Pool = poolpop.NewPool()
		tribe.Pool.Add(tribe.CapitalSettlement, "laborer", pop)

		tribe.Stockpile = stockpile.New()
		tribe.Stockpile.Add(stockpile.GoodFood, float64(pop)*2)
		tribe.Stockpile.Add(stockpile.GoodWood, float64(pop))

		tribe.Needs = needs.NewSatisfied()
		tribe.Warriors = pop / 10

		founder := spawnFounder(w, tribe, rng)
		method := gov.SuccessionMethod()
		tribe.Dynasty = &society.Dynasty{
			ID:        w.IDs.NextDynasty(),
			TribeID:   tribe.ID,
			FounderID: founder.FigureID,
			Leaders:   []ids.FigureID{founder.FigureID},
		}
		tribe.Succession = society.State{
			LeaderID:  &founder.FigureID,
			LeaderAge: int(founder.Age),
			Method:    method,
		}
	}
}

// applyTerrainCultureBias nudges a freshly-rolled culture toward the
// temperament its capital hex's terrain and climate would plausibly
// produce: mountain holds lean martial and insular, coasts and rivers
// lean mercantile, swamps and tundra lean superstitious, hot dry climates
// cool trade appetite. A no-op if the hex is unavailable (out of bounds).
// Grounded on internal/world/hex.go's Terrain/Rainfall/Temperature fields,
// which the teacher's generator produces but never consumes past
// placement; this is that data's first domain-facing use.
func applyTerrainCultureBias(c *worldhistory.Culture, hex *world.Hex) {
	if hex == nil {
		return
	}

	switch hex.Terrain {
	case world.TerrainMountain:
		c.WarInclination = clampUnit(c.WarInclination + 0.15)
		c.TradeInclination = clampUnit(c.TradeInclination - 0.1)
	case world.TerrainCoast, world.TerrainRiver:
		c.TradeInclination = clampUnit(c.TradeInclination + 0.2)
	case world.TerrainSwamp, world.TerrainTundra:
		c.ReligiousFervor = clampUnit(c.ReligiousFervor + 0.15)
	case world.TerrainDesert:
		c.WarInclination = clampUnit(c.WarInclination + 0.1)
		c.TradeInclination = clampUnit(c.TradeInclination - 0.15)
	}

	if hex.Rainfall < 0.25 {
		c.TradeInclination = clampUnit(c.TradeInclination - 0.1)
	}
	if hex.Elevation > 0.7 {
		c.WarInclination = clampUnit(c.WarInclination + 0.1)
	}
}

func clampUnit(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func governanceForSize(size world.SettlementSize, rng *rand.Rand) worldhistory.Government {
	switch size {
	case world.SizeCity:
		return worldhistory.GovHereditaryMonarchy
	case world.SizeTown:
		if rng.Float32() < 0.5 {
			return worldhistory.GovTribalCouncil
		}
		return worldhistory.GovMerchantRepublic
	default:
		return worldhistory.GovChiefdom
	}
}

// spawnFounder creates the tribe's founding leader as a notable colonist,
// fully satisfied needs and a plausible adult age, matching the teacher's
// default-agent spawn convention for new population.
func spawnFounder(w *worldhistory.WorldHistory, tribe *worldhistory.Tribe, rng *rand.Rand) *colonist.Colonist {
	male := rng.Float32() < 0.5
	c := &colonist.Colonist{
		ID:           w.IDs.NextColonist(),
		FigureID:     w.IDs.NextFigure(),
		Name:         naming.Figure(male, rng),
		Age:          25 + rng.Intn(20),
		Alive:        true,
		SettlementID: tribe.CapitalSettlement,
		Needs:        needs.NewSatisfied(),
		Wealth:       100,
	}
	if male {
		c.Sex = colonist.Male
	} else {
		c.Sex = colonist.Female
	}
	w.AddColonist(c, tribe)
	return c
}

func envUint64(key string, def uint64) uint64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
