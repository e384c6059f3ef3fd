// Package observ accumulates wall-clock time per phase of a scan.
package observ

import (
	"time"
)

// Phase is the accumulated time of every run of one named step.
type Phase struct {
	Name  string
	Runs  int
	Total time.Duration
	Note  string
}

// Timer sums phases by name. Phases keep the order of their first run.
// A nil *Timer is valid and records nothing.
type Timer struct {
	started time.Time
	phases  []Phase
	byName  map[string]int
}

func NewTimer() *Timer {
	return &Timer{started: time.Now(), byName: make(map[string]int)}
}

// Start measures one run of name until the returned func is called.
func (t *Timer) Start(name string) func() {
	if t == nil {
		return func() {}
	}
	begin := time.Now()
	return func() { t.Add(name, time.Since(begin)) }
}

// Add records one run of name that took d.
func (t *Timer) Add(name string, d time.Duration) {
	if t == nil {
		return
	}
	p := t.phase(name)
	p.Runs++
	p.Total += d
}

// Note attaches a free-form remark to name, replacing the previous one.
func (t *Timer) Note(name, note string) {
	if t == nil {
		return
	}
	t.phase(name).Note = note
}

func (t *Timer) phase(name string) *Phase {
	i, ok := t.byName[name]
	if !ok {
		i = len(t.phases)
		t.byName[name] = i
		t.phases = append(t.phases, Phase{Name: name})
	}
	return &t.phases[i]
}

// PhaseReport is the serialisable form of a Phase.
type PhaseReport struct {
	Name       string  `json:"name"`
	Runs       int     `json:"runs"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report holds the phases and the wall time since NewTimer. Phases may
// overlap, so TotalMS is not their sum.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report снимает текущее состояние таймера.
func (t *Timer) Report() Report {
	if t == nil || len(t.phases) == 0 {
		return Report{}
	}
	out := Report{
		TotalMS: millis(time.Since(t.started)),
		Phases:  make([]PhaseReport, 0, len(t.phases)),
	}
	for _, p := range t.phases {
		out.Phases = append(out.Phases, PhaseReport{
			Name:       p.Name,
			Runs:       p.Runs,
			DurationMS: millis(p.Total),
			Note:       p.Note,
		})
	}
	return out
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
