package ui

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/mattn/go-runewidth"

	"glslu/internal/driver"
)

func TestProgressModelAppliesEvents(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("glslu diag", []string{"a.frag", "b.vert"}, events).(*progressModel)

	m.applyEvent(driver.Event{File: "a.frag", Stage: driver.StageScan, Status: driver.StatusWorking})
	if got := m.rows[0].label(); got != "scanning" {
		t.Fatalf("label = %q", got)
	}
	if got := m.rows[1].label(); got != "queued" {
		t.Fatalf("label = %q", got)
	}
	m.applyEvent(driver.Event{File: "a.frag", Stage: driver.StageCheck, Status: driver.StatusDone, Elapsed: 3 * time.Millisecond})
	m.applyEvent(driver.Event{File: "b.vert", Stage: driver.StageCheck, Status: driver.StatusError})
	m.applyEvent(driver.Event{File: "unknown.frag", Stage: driver.StageScan, Status: driver.StatusWorking})

	if got := m.percent(); got != 1.0 {
		t.Fatalf("percent = %v", got)
	}
	view := m.View()
	for _, want := range []string{"a.frag", "error", "2/2", "1 with errors", "3ms"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view misses %q:\n%s", want, view)
		}
	}
}

func TestVisibleRowsPreferUnfinished(t *testing.T) {
	files := make([]string, maxRows+5)
	for i := range files {
		files[i] = fmt.Sprintf("s%02d.frag", i)
	}
	m := NewProgressModel("diag", files, nil).(*progressModel)
	for i := 0; i < maxRows; i++ {
		m.applyEvent(driver.Event{File: files[i], Stage: driver.StageCheck, Status: driver.StatusDone})
	}
	m.applyEvent(driver.Event{File: files[0], Stage: driver.StageCheck, Status: driver.StatusError})

	rows := m.visibleRows()
	if len(rows) != maxRows {
		t.Fatalf("expected %d rows, got %d", maxRows, len(rows))
	}
	// the error and the five unfinished files come first, then clean ones fill up
	if rows[0] != 0 {
		t.Fatalf("errored row hidden: %v", rows)
	}
	last := rows[len(rows)-1]
	if last != len(files)-1 {
		t.Fatalf("unfinished row hidden: %v", rows)
	}
	if !strings.Contains(m.View(), "… 5 more") {
		t.Fatalf("missing hidden count:\n%s", m.View())
	}
}

func TestTruncate(t *testing.T) {
	got := truncate("shaders/very/long/path/main.frag", 12)
	if !strings.HasSuffix(got, "...") || runewidth.StringWidth(got) > 12 {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("short", 12); got != "short" {
		t.Errorf("truncate = %q", got)
	}
}
