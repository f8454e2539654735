package observ

import (
	"strings"
	"testing"
	"time"
)

func TestTimerPhases(t *testing.T) {
	timer := NewTimer()
	idx := timer.Begin("format Test.ufo")
	time.Sleep(2 * time.Millisecond)
	timer.End(idx)

	rep := timer.Report()
	if len(rep.Phases) != 1 {
		t.Fatalf("phase count = %d, want 1", len(rep.Phases))
	}
	if rep.Phases[0].Name != "format Test.ufo" {
		t.Errorf("phase name = %q", rep.Phases[0].Name)
	}
	if rep.Phases[0].DurationMS <= 0 {
		t.Error("phase duration should be positive")
	}
	if rep.TotalMS < rep.Phases[0].DurationMS {
		t.Error("total should cover the phase")
	}
}

func TestTimerEndOutOfRange(t *testing.T) {
	timer := NewTimer()
	timer.End(-1)
	timer.End(5)
	if len(timer.Report().Phases) != 0 {
		t.Error("out-of-range End must not create phases")
	}
}

func TestSummaryFormat(t *testing.T) {
	timer := NewTimer()
	s := timer.Summary()
	if !strings.HasPrefix(s, "Total duration: ") || !strings.HasSuffix(s, " ms") {
		t.Errorf("Summary() = %q, want 'Total duration: N ms'", s)
	}
}
