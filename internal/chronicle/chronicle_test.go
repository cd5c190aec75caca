package chronicle

import (
	"bytes"
	"strings"
	"testing"

	"github.com/talgya/worldhistory/internal/ids"
	"github.com/talgya/worldhistory/internal/worldtime"
)

func TestIsMajorFixedAtConstruction(t *testing.T) {
	e := NewEvent(1, worldtime.Date{Year: 1}, TradeRouteEstablished, "a trade happened", false)
	if e.IsMajor {
		t.Fatalf("trade event should not default to major")
	}
	e2 := NewEvent(2, worldtime.Date{Year: 1}, WarDeclared, "a war began", false)
	if !e2.IsMajor {
		t.Fatalf("war declaration should be major by default")
	}
}

func TestExplicitForcesMajorRegardlessOfType(t *testing.T) {
	e := NewEvent(1, worldtime.Date{Year: 1}, TradeRouteEstablished, "forced major", true)
	if !e.IsMajor {
		t.Fatal("expected explicit=true to force major status")
	}
}

func TestGetFallsBackToLinearScanOnDuplicateIDs(t *testing.T) {
	c := New()
	first := NewEvent(5, worldtime.Date{Year: 1}, HeroBorn, "first", false)
	second := NewEvent(5, worldtime.Date{Year: 2}, HeroBorn, "second (duplicate id)", false)
	c.Append(first)
	c.Append(second)

	got, ok := c.Get(5)
	if !ok {
		t.Fatal("expected event 5 to be found")
	}
	if got.Description != "first" {
		t.Fatalf("expected first-by-construction-order entry to win, got %q", got.Description)
	}
}

func TestCausesWalksChain(t *testing.T) {
	c := New()
	root := NewEvent(1, worldtime.Date{Year: 1}, Drought, "drought", false)
	c.Append(root)
	mid := NewEvent(2, worldtime.Date{Year: 1, Season: worldtime.Summer}, Rebellion, "famine unrest", false).
		CausedBy(ids.EventID(1))
	c.Append(mid)

	chain := c.Causes(2)
	if len(chain) != 2 || chain[0].ID != 1 || chain[1].ID != 2 {
		t.Fatalf("unexpected causal chain: %+v", chain)
	}
	if len(chain[1].Causes) != 1 || chain[1].Causes[0] != ids.EventID(1) {
		t.Fatalf("expected Causes to list the root event, got %+v", chain[1].Causes)
	}
}

func TestLinkCauseEffectAppendsTriggeredEventsOnce(t *testing.T) {
	c := New()
	c.Append(NewEvent(1, worldtime.Date{Year: 1}, Assassination, "a king is slain", false))
	c.Append(NewEvent(2, worldtime.Date{Year: 1, Season: worldtime.Autumn}, WarDeclared, "war of succession", false))

	c.LinkCauseEffect(1, 2)
	c.LinkCauseEffect(1, 2)

	cause, _ := c.Get(1)
	if len(cause.TriggeredEvents) != 1 || cause.TriggeredEvents[0] != ids.EventID(2) {
		t.Fatalf("expected exactly one triggered event, got %+v", cause.TriggeredEvents)
	}
}

func TestLinkCauseEffectRejectsEffectBeforeCause(t *testing.T) {
	c := New()
	c.Append(NewEvent(1, worldtime.Date{Year: 5}, Assassination, "a king is slain", false))
	c.Append(NewEvent(2, worldtime.Date{Year: 1}, WarDeclared, "an earlier war", false))

	c.LinkCauseEffect(1, 2)

	cause, _ := c.Get(1)
	if len(cause.TriggeredEvents) != 0 {
		t.Fatalf("expected no link when effect predates cause, got %+v", cause.TriggeredEvents)
	}
}

func TestRenderLegendsGroupsByYear(t *testing.T) {
	c := New()
	c.Append(NewEvent(1, worldtime.Date{Year: 1}, WarDeclared, "the first war", false))
	c.Append(NewEvent(2, worldtime.Date{Year: 2}, FactionDestroyed, "a kingdom falls", false))

	var buf bytes.Buffer
	if err := c.RenderLegends(&buf); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "## Year 1") || !strings.Contains(out, "## Year 2") {
		t.Fatalf("expected both years rendered, got:\n%s", out)
	}
}
