package ui

import (
	"errors"
	"testing"

	"ufofmt/internal/driver"
)

func TestProgressCountsExcludePackageFailures(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("formatting", 2, events).(*progressModel)

	m.applyEvent(driver.Event{File: "glyphs/a.glif", Status: driver.StatusDone})
	m.applyEvent(driver.Event{
		File:         "missing.ufo",
		PackageLevel: true,
		Status:       driver.StatusError,
		Err:          errors.New("invalid path error: missing.ufo: not a valid UFO directory path"),
	})
	m.applyEvent(driver.Event{File: "glyphs/b.glif", Status: driver.StatusDone})

	if m.done != 2 {
		t.Errorf("done = %d, want 2 (package failures must not advance the bar)", m.done)
	}
	if m.done > m.total {
		t.Errorf("done (%d) exceeds total (%d)", m.done, m.total)
	}
	if m.failed != 1 {
		t.Errorf("failed = %d, want 1", m.failed)
	}
	if len(m.errs) != 1 {
		t.Errorf("visible error lines = %d, want 1", len(m.errs))
	}
}

func TestProgressFailedTaskStillAdvances(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("formatting", 2, events).(*progressModel)

	m.applyEvent(driver.Event{File: "glyphs/a.glif", Status: driver.StatusDone})
	m.applyEvent(driver.Event{
		File:   "glyphs/broken.glif",
		Status: driver.StatusError,
		Err:    errors.New("read error: glyphs/broken.glif: bad numeric attribute"),
	})

	if m.done != 2 {
		t.Errorf("done = %d, want 2 (failed file tasks still complete)", m.done)
	}
	if m.failed != 1 {
		t.Errorf("failed = %d, want 1", m.failed)
	}
}
