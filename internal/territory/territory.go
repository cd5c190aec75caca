// Package territory tracks tile/hex ownership and claims. Built on the
// teacher's world.HexCoord coordinate idiom (internal/world/hex.go:
// Distance, Neighbors) generalized with an ownership layer the teacher
// never had (its hexes only carry terrain/resources, not a claimant).
package territory

import (
	"github.com/talgya/worldhistory/internal/ids"
	"github.com/talgya/worldhistory/internal/world"
)

// Claim records which tribe controls a hex and since when.
type Claim struct {
	Coord      world.HexCoord
	Owner      ids.TribeID
	ClaimedAt  uint64 // tick
}

// Map tracks territorial claims over a hex grid.
type Map struct {
	claims map[world.HexCoord]Claim
}

func NewMap() *Map {
	return &Map{claims: make(map[world.HexCoord]Claim)}
}

// OwnerOf returns the tribe claiming coord, if any.
func (m *Map) OwnerOf(coord world.HexCoord) (ids.TribeID, bool) {
	c, ok := m.claims[coord]
	if !ok {
		return 0, false
	}
	return c.Owner, true
}

// Claim assigns coord to owner, overwriting any prior claim (territory
// capture is a replace, not a merge).
func (m *Map) Claim(coord world.HexCoord, owner ids.TribeID, tick uint64) {
	m.claims[coord] = Claim{Coord: coord, Owner: owner, ClaimedAt: tick}
}

// Release removes any claim on coord, used when a settlement is abandoned
// or a tribe goes extinct.
func (m *Map) Release(coord world.HexCoord) {
	delete(m.claims, coord)
}

// TerritoryOf returns every hex a tribe currently claims.
func (m *Map) TerritoryOf(owner ids.TribeID) []world.HexCoord {
	var out []world.HexCoord
	for coord, c := range m.claims {
		if c.Owner == owner {
			out = append(out, coord)
		}
	}
	return out
}

// ReleaseTribe clears every claim belonging to a tribe, used when a tribe
// goes extinct and its entity is closed but not deleted from the store.
func (m *Map) ReleaseTribe(owner ids.TribeID) {
	for coord, c := range m.claims {
		if c.Owner == owner {
			delete(m.claims, coord)
		}
	}
}

// AllClaims returns every claim on the map, in no particular order, for a
// persistence layer to serialize.
func (m *Map) AllClaims() []Claim {
	out := make([]Claim, 0, len(m.claims))
	for _, c := range m.claims {
		out = append(out, c)
	}
	return out
}

// Restore installs a claim read back from storage, bypassing the
// current-tick bookkeeping Claim performs since a restored claim keeps its
// original ClaimedAt tick.
func (m *Map) Restore(c Claim) {
	m.claims[c.Coord] = c
}

// AdjacentClaims returns the distinct owners of hexes neighboring coord,
// excluding the coord's own owner — used by diplomacy to find
// territorially-adjacent rival tribes.
func (m *Map) AdjacentClaims(coord world.HexCoord) []ids.TribeID {
	self, _ := m.OwnerOf(coord)
	seen := make(map[ids.TribeID]bool)
	var out []ids.TribeID
	for _, n := range coord.Neighbors() {
		if owner, ok := m.OwnerOf(n); ok && owner != self && !seen[owner] {
			seen[owner] = true
			out = append(out, owner)
		}
	}
	return out
}
