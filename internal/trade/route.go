package trade

import "github.com/talgya/worldhistory/internal/world"

// terrainMoveCost returns the tick cost to cross one hex of the given
// terrain, carried over unchanged from the teacher's engine/market.go.
func terrainMoveCost(t world.Terrain) int {
	switch t {
	case world.TerrainPlains:
		return 6
	case world.TerrainForest:
		return 8
	case world.TerrainMountain:
		return 12
	case world.TerrainCoast:
		return 6
	case world.TerrainRiver:
		return 3
	case world.TerrainDesert:
		return 8
	case world.TerrainSwamp:
		return 10
	case world.TerrainTundra:
		return 8
	case world.TerrainOcean:
		return 999
	default:
		return 6
	}
}

// RouteCost greedily steps from one hex to another, always moving to the
// neighbor closest to the destination, summing terrain cost along the way.
// Matches the teacher's routeCost: a cheap approximation, not full A*.
func RouteCost(from, to world.HexCoord, m *world.Map) int {
	cost := 0
	cur := from
	for cur != to {
		best := cur
		bestDist := world.Distance(cur, to)
		for _, n := range cur.Neighbors() {
			if d := world.Distance(n, to); d < bestDist {
				bestDist = d
				best = n
			}
		}
		if best == cur {
			break
		}
		cur = best
		if hex := m.Get(cur); hex != nil {
			cost += terrainMoveCost(hex.Terrain)
		} else {
			cost += 6
		}
	}
	return cost
}

// MinTravelTicks is the floor applied to any route, matching the teacher's
// 6-tick (one hex) minimum so adjacent settlements still take some time.
const MinTravelTicks = 6

// TravelTicks returns RouteCost clamped to the minimum.
func TravelTicks(from, to world.HexCoord, m *world.Map) int {
	cost := RouteCost(from, to, m)
	if cost < MinTravelTicks {
		return MinTravelTicks
	}
	return cost
}
