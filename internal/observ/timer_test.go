package observ

import (
	"testing"
	"time"
)

func TestTimerAccumulates(t *testing.T) {
	timer := NewTimer()
	timer.Add("parse", 2*time.Millisecond)
	timer.Add("read", time.Millisecond)
	timer.Add("parse", 3*time.Millisecond)
	timer.Note("parse", "3 files")
	stop := timer.Start("read")
	stop()

	report := timer.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("expected 2 phases, got %+v", report.Phases)
	}
	parse := report.Phases[0]
	if parse.Name != "parse" || parse.Runs != 2 || parse.DurationMS != 5 || parse.Note != "3 files" {
		t.Fatalf("unexpected parse phase %+v", parse)
	}
	if read := report.Phases[1]; read.Name != "read" || read.Runs != 2 {
		t.Fatalf("unexpected read phase %+v", read)
	}
	if report.TotalMS < 0 {
		t.Fatalf("negative total %v", report.TotalMS)
	}
}

func TestNilTimer(t *testing.T) {
	var timer *Timer
	timer.Start("scan")()
	timer.Add("scan", time.Second)
	timer.Note("scan", "x")
	if len(timer.Report().Phases) != 0 {
		t.Fatal("nil timer must record nothing")
	}
}
