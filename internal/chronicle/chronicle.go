// Package chronicle implements the append-only world event log: the
// causality graph entities are recorded into and the source for the
// Legends export. Grounded on the teacher's engine/simulation.go Event
// struct and EmitEvent, generalized with the full event_type taxonomy and
// causes[]/triggered_events[] DAG from
// original_source/src/history/events/{types,chronicle}.rs.
package chronicle

import (
	"fmt"
	"io"
	"sort"

	"github.com/talgya/worldhistory/internal/ids"
	"github.com/talgya/worldhistory/internal/worldtime"
)

// EventType classifies an event for narration and is_major derivation.
// Grounded on original_source's EventType enum.
type EventType uint8

const (
	FactionFounded EventType = iota
	FactionDestroyed
	SettlementFounded
	SettlementDestroyed
	SettlementGrew

	TreatySigned
	TreatyBroken
	AllianceFormed
	AllianceBroken
	TradeRouteEstablished

	WarDeclared
	WarEnded
	BattleFought
	SiegeBegun
	SiegeEnded
	Raid
	Massacre

	RulerCrowned
	RulerDeposed
	SuccessionCrisis
	Rebellion
	Coup
	Assassination

	ReligionFounded
	Miracle
	HolyWarDeclared
	TempleBuilt
	TempleProfaned
	CultFormed

	CreatureAppeared
	CreatureSlain
	MonsterRaid
	LairEstablished
	LairDestroyed
	PopulationMigrated

	HeroBorn
	HeroDied
	QuestBegun
	QuestCompleted
	MasterworkCreated

	ArtifactCreated
	ArtifactLost
	ArtifactFound
	ArtifactDestroyed

	MonumentBuilt
	MonumentDestroyed

	VolcanoErupted
	Earthquake
	Flood
	Drought
	Plague
	MagicalCatastrophe

	SpellInvented
	MagicalExperiment
	CurseApplied
	CurseLifted

	// OtherEvent is the catch-all for data-driven event types with no
	// dedicated variant, matching the original's Other.
	OtherEvent
)

var eventTypeNames = [...]string{
	"faction founded", "faction destroyed", "settlement founded", "settlement destroyed", "settlement grew",
	"treaty signed", "treaty broken", "alliance formed", "alliance broken", "trade route established",
	"war declared", "war ended", "battle fought", "siege begun", "siege ended", "raid", "massacre",
	"ruler crowned", "ruler deposed", "succession crisis", "rebellion", "coup", "assassination",
	"religion founded", "miracle", "holy war declared", "temple built", "temple profaned", "cult formed",
	"creature appeared", "creature slain", "monster raid", "lair established", "lair destroyed", "population migrated",
	"hero born", "hero died", "quest begun", "quest completed", "masterwork created",
	"artifact created", "artifact lost", "artifact found", "artifact destroyed",
	"monument built", "monument destroyed",
	"volcano erupted", "earthquake", "flood", "drought", "plague", "magical catastrophe",
	"spell invented", "magical experiment", "curse applied", "curse lifted",
	"other",
}

func (t EventType) String() string {
	if int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return "unknown"
}

// IsMajor reports whether events of this type are significant enough to
// potentially define an era, matching spec's fixed 10-variant list.
func (t EventType) IsMajor() bool {
	switch t {
	case FactionFounded, FactionDestroyed, WarDeclared, WarEnded, CreatureSlain,
		VolcanoErupted, Plague, MagicalCatastrophe, ReligionFounded, HolyWarDeclared:
		return true
	}
	return false
}

// Outcome is how an event resolved.
type Outcome uint8

const (
	OutcomeSuccess Outcome = iota
	OutcomeFailure
	OutcomePyrrhic
	OutcomeStalemate
	OutcomeOngoing
	OutcomeUnknown
)

// Event is one chronicle entry. IsMajor is derived once at construction time
// and never recomputed, per spec's invariant that major-event status is
// fixed at the moment of creation. Causes/TriggeredBy are set at
// construction and never mutated afterward; only TriggeredEvents grows,
// via LinkCauseEffect, forming the forward half of the causality DAG.
type Event struct {
	ID               ids.EventID
	EventType        EventType
	Date             worldtime.Date
	Location         *ids.SettlementID
	Participants     []ids.EntityID
	FactionsInvolved []ids.TribeID

	Causes          []ids.EventID
	TriggeredBy     *ids.EventID
	Consequences    []string
	TriggeredEvents []ids.EventID

	Outcome          Outcome
	ArtifactsCreated []ids.ArtifactID
	MonumentsCreated []ids.MonumentID

	Title       string
	Description string
	IsMajor     bool
}

// NewEvent constructs an Event and fixes IsMajor immutably. explicit forces
// major status regardless of event type (e.g. a succession crisis).
func NewEvent(id ids.EventID, date worldtime.Date, eventType EventType, description string, explicit bool) Event {
	return Event{
		ID:          id,
		EventType:   eventType,
		Date:        date,
		Title:       description,
		Description: description,
		Outcome:     OutcomeSuccess,
		IsMajor:     explicit || eventType.IsMajor(),
	}
}

// AtLocation sets the event's settlement.
func (e Event) AtLocation(s ids.SettlementID) Event {
	e.Location = &s
	return e
}

// WithParticipant records an entity as a primary participant.
func (e Event) WithParticipant(p ids.EntityID) Event {
	e.Participants = append(e.Participants, p)
	return e
}

// WithFaction records a tribe as involved, skipping duplicates.
func (e Event) WithFaction(t ids.TribeID) Event {
	for _, f := range e.FactionsInvolved {
		if f == t {
			return e
		}
	}
	e.FactionsInvolved = append(e.FactionsInvolved, t)
	return e
}

// CausedBy sets cause as this event's immediate trigger and appends it to
// Causes if not already present.
func (e Event) CausedBy(cause ids.EventID) Event {
	e.TriggeredBy = &cause
	for _, c := range e.Causes {
		if c == cause {
			return e
		}
	}
	e.Causes = append(e.Causes, cause)
	return e
}

// WithConsequence appends a free-text consequence note.
func (e Event) WithConsequence(c string) Event {
	e.Consequences = append(e.Consequences, c)
	return e
}

// Chronicle is the full append-only log for a world.
type Chronicle struct {
	events []Event
	index  map[ids.EventID]int
}

func New() *Chronicle {
	return &Chronicle{index: make(map[ids.EventID]int)}
}

// Append adds an event to the log and indexes it by ID.
func (c *Chronicle) Append(e Event) {
	c.events = append(c.events, e)
	if _, exists := c.index[e.ID]; !exists {
		c.index[e.ID] = len(c.events) - 1
	}
}

// Len returns the number of recorded events.
func (c *Chronicle) Len() int { return len(c.events) }

// All returns every event in construction order.
func (c *Chronicle) All() []Event { return c.events }

// Get looks up an event by ID. When the fast-path index hits a stale or
// duplicate entry, it falls back to a linear scan from the start so that,
// under never-asserted duplicate IDs, the first matching entry by
// construction order always wins — preserved deliberately, see DESIGN.md.
func (c *Chronicle) Get(id ids.EventID) (Event, bool) {
	if idx, ok := c.index[id]; ok && idx < len(c.events) && c.events[idx].ID == id {
		return c.events[idx], true
	}
	for _, e := range c.events {
		if e.ID == id {
			return e, true
		}
	}
	return Event{}, false
}

// indexOf finds an event's slice position, preferring the index and falling
// back to a linear scan, for the rare mutate-in-place operations
// (LinkCauseEffect) that Get's copy-returning signature can't serve.
func (c *Chronicle) indexOf(id ids.EventID) (int, bool) {
	if idx, ok := c.index[id]; ok && idx < len(c.events) && c.events[idx].ID == id {
		return idx, true
	}
	for i, e := range c.events {
		if e.ID == id {
			return i, true
		}
	}
	return 0, false
}

// LinkCauseEffect pushes effect into cause.TriggeredEvents if not already
// present. Rejects the link when effect's recorded date precedes cause's,
// preserving the causality graph's invariant that every triggered_by edge
// points to an earlier-or-equal-dated event.
func (c *Chronicle) LinkCauseEffect(cause, effect ids.EventID) {
	causeIdx, ok := c.indexOf(cause)
	if !ok {
		return
	}
	effectIdx, ok := c.indexOf(effect)
	if !ok {
		return
	}
	if c.events[effectIdx].Date.Before(c.events[causeIdx].Date) {
		return
	}
	for _, t := range c.events[causeIdx].TriggeredEvents {
		if t == effect {
			return
		}
	}
	c.events[causeIdx].TriggeredEvents = append(c.events[causeIdx].TriggeredEvents, effect)
}

// ByDate returns events within [from, to], inclusive, in construction order.
func (c *Chronicle) ByDate(from, to worldtime.Date) []Event {
	var out []Event
	for _, e := range c.events {
		if !e.Date.Before(from) && !e.Date.After(to) {
			out = append(out, e)
		}
	}
	return out
}

// ByLocation returns events recorded at the given settlement.
func (c *Chronicle) ByLocation(s ids.SettlementID) []Event {
	var out []Event
	for _, e := range c.events {
		if e.Location != nil && *e.Location == s {
			out = append(out, e)
		}
	}
	return out
}

// Causes walks backward from an event through TriggeredBy links, returning
// the causal chain from root cause to the event itself.
func (c *Chronicle) Causes(id ids.EventID) []Event {
	var chain []Event
	cur, ok := c.Get(id)
	for ok {
		chain = append([]Event{cur}, chain...)
		if cur.TriggeredBy == nil {
			break
		}
		cur, ok = c.Get(*cur.TriggeredBy)
	}
	return chain
}

// Major returns only the major events, in construction order.
func (c *Chronicle) Major() []Event {
	var out []Event
	for _, e := range c.events {
		if e.IsMajor {
			out = append(out, e)
		}
	}
	return out
}

// Compact drops non-major events older than horizon seasons before current,
// keeping chronicle growth bounded over long runs. Per spec's chronicle
// compaction pass at the end of the fixed tick order.
func (c *Chronicle) Compact(current worldtime.Date, horizonSeasons uint64) {
	if horizonSeasons == 0 || current.TotalSeasons() < horizonSeasons {
		return
	}
	cutoff := current.TotalSeasons() - horizonSeasons
	kept := c.events[:0:0]
	for _, e := range c.events {
		if e.IsMajor || e.Date.TotalSeasons() >= cutoff {
			kept = append(kept, e)
		}
	}
	c.events = kept
	c.index = make(map[ids.EventID]int, len(c.events))
	for i, e := range c.events {
		if _, exists := c.index[e.ID]; !exists {
			c.index[e.ID] = i
		}
	}
}

// RenderLegends writes a Markdown summary of major events to w, grouped by
// year. Recovered from original_source's legends/renderer.rs text-export
// contract named explicitly in spec.md's outputs.
func (c *Chronicle) RenderLegends(w io.Writer) error {
	major := c.Major()
	sort.Slice(major, func(i, j int) bool {
		return major[i].Date.TotalSeasons() < major[j].Date.TotalSeasons()
	})

	if _, err := fmt.Fprintln(w, "# Legends"); err != nil {
		return err
	}
	currentYear := uint64(0)
	started := false
	for _, e := range major {
		if !started || e.Date.Year != currentYear {
			currentYear = e.Date.Year
			started = true
			if _, err := fmt.Fprintf(w, "\n## Year %d\n", currentYear); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "- **%s** (%s): %s\n", e.Date.Season, e.EventType, e.Description); err != nil {
			return err
		}
	}
	return nil
}
