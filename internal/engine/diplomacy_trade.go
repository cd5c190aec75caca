package engine

import (
	"math"
	"math/rand"

	"github.com/talgya/worldhistory/internal/chronicle"
	"github.com/talgya/worldhistory/internal/diplomacy"
	"github.com/talgya/worldhistory/internal/stockpile"
	"github.com/talgya/worldhistory/internal/trade"
	"github.com/talgya/worldhistory/internal/worldhistory"
)

// stepDiplomacy drifts every tracked relation toward neutral, then rolls
// treaty formation between each pair of territorially adjacent tribes.
// Grounded on engine/factions.go's updateFactionInfluence cadence and
// internal/diplomacy's ported formation probabilities.
func stepDiplomacy(w *worldhistory.WorldHistory, rng *rand.Rand) {
	w.Diplomacy.Drift()
	w.Diplomacy.CleanupExpired(w.CurrentTick)

	seen := make(map[[2]uint64]bool)
	for _, t := range w.LivingTribes() {
		for _, otherID := range w.NeighboringTribes(t) {
			other, ok := w.Tribes[otherID]
			if !ok || !other.IsAlive() {
				continue
			}
			key := pairKey(uint64(t.ID), uint64(otherID))
			if seen[key] {
				continue
			}
			seen[key] = true
			if kind, formed := w.Diplomacy.ConsiderTreaties(t.ID, otherID, w.CurrentTick, rng); formed {
				eventType := chronicle.TreatySigned
				if kind == diplomacy.DefensiveAlliance || kind == diplomacy.MilitaryAlliance {
					eventType = chronicle.AllianceFormed
				}
				w.Chronicle.Append(chronicle.NewEvent(
					w.IDs.NextEvent(), w.CurrentDate, eventType,
					t.Name+" and "+other.Name+" have entered a "+kind.String(), false))
			}
		}
	}
}

func pairKey(a, b uint64) [2]uint64 {
	if a < b {
		return [2]uint64{a, b}
	}
	return [2]uint64{b, a}
}

// tradeThreshold is the per-good stockpile level above which a tribe
// considers itself to have exportable surplus.
const tradeThreshold = 15.0

// stepTrade resolves each tribe's local market from its stockpile
// pressure, then routes surplus goods to neighboring tribes with matching
// shortages, the transferred volume discounted by travel cost. Grounded
// on engine/market.go's resolveSettlementMarket + resolveMerchantTrade
// pair.
func stepTrade(w *worldhistory.WorldHistory) {
	for _, t := range w.LivingTribes() {
		m := w.Markets[t.ID]
		if m == nil {
			m = trade.NewMarket()
			w.Markets[t.ID] = m
		}
		m.ResetPressure()
		for g := stockpile.Good(0); g < stockpile.NumGoods; g++ {
			m.AggregateStockpileSupply(g, t.Stockpile.Surplus(g, tradeThreshold))
			if t.Stockpile.Shortage(g, tradeThreshold) > 0 {
				m.AggregateDemand(g)
			}
		}
		m.ResolveAll(func(stockpile.Good) float64 { return 1.0 })
	}

	for _, t := range w.LivingTribes() {
		for _, otherID := range w.NeighboringTribes(t) {
			other, ok := w.Tribes[otherID]
			if !ok || !other.IsAlive() {
				continue
			}
			routeRoutine(w, t, other)
		}
	}
}

// routeRoutine moves each good's exportable surplus from t to other
// (one direction only; the reverse pair runs when the loop visits other
// as t), scaled down by travel cost so distant partners trade less.
func routeRoutine(w *worldhistory.WorldHistory, t, other *worldhistory.Tribe) {
	cost := trade.RouteCost(t.Capital, other.Capital, w.WorldMap)
	efficiency := 1.0 / (1.0 + float64(cost)/20.0)

	for g := stockpile.Good(0); g < stockpile.NumGoods; g++ {
		surplus := t.Stockpile.Surplus(g, tradeThreshold)
		shortage := other.Stockpile.Shortage(g, tradeThreshold)
		if surplus <= 0 || shortage <= 0 {
			continue
		}
		amount := math.Min(surplus, shortage) * efficiency
		if amount <= 0 {
			continue
		}
		removed, _ := t.Stockpile.Consume(g, amount)
		other.Stockpile.Add(g, removed)
	}
}
