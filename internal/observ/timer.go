// Package observ provides the wall-clock phase timer behind --time.
package observ

import (
	"fmt"
	"time"
)

// Phase records the duration of one formatting phase (one per package, plus
// startup work such as manifest loading).
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
}

// Timer tracks the execution time of the formatting run.
type Timer struct {
	phases []Phase
	start  time.Time
}

// NewTimer creates a started timer.
func NewTimer() *Timer {
	return &Timer{phases: make([]Phase, 0, 8), start: time.Now()}
}

// Begin starts a named phase and returns its index.
func (t *Timer) Begin(name string) int {
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	return len(t.phases) - 1
}

// End finishes a phase by its index.
func (t *Timer) End(idx int) {
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Dur = time.Since(p.Start)
}

// TotalMillis returns the wall-clock time since the timer started, in
// milliseconds.
func (t *Timer) TotalMillis() float64 {
	return durationToMillis(time.Since(t.start))
}

// PhaseReport is the serializable form of one phase.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
}

// Report returns per-phase durations plus the overall total.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases,omitempty"`
}

// Report assembles the serializable timing summary.
func (t *Timer) Report() Report {
	rep := Report{TotalMS: t.TotalMillis()}
	for _, phase := range t.phases {
		rep.Phases = append(rep.Phases, PhaseReport{
			Name:       phase.Name,
			DurationMS: durationToMillis(phase.Dur),
		})
	}
	return rep
}

// Summary renders the human-readable timing line used by --time.
func (t *Timer) Summary() string {
	return fmt.Sprintf("Total duration: %.0f ms", t.TotalMillis())
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
