package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"ufofmt/internal/config"
	"ufofmt/internal/driver"
	"ufofmt/internal/ufo"
	"ufofmt/internal/ui"
)

// runFormatWithUI runs the formatter behind a Bubble Tea progress display.
// The driver publishes task events into a channel; the program exits when
// the driver closes it.
func runFormatWithUI(ctx context.Context, paths []string, policy *config.Policy, opts driver.Options) ([]driver.Report, error) {
	// The progress bar needs the task total up front; a cheap enumeration
	// pass counts files before the formatting run re-opens the packages.
	total := 0
	for _, path := range paths {
		if pkg, err := ufo.Open(path); err == nil {
			total += len(pkg.Files)
		}
	}

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan []driver.Report, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		outcomeCh <- driver.FormatUFOs(ctx, paths, policy, optsCopy)
		close(events)
	}()

	title := "formatting"
	if len(paths) == 1 {
		title = "formatting " + paths[0]
	}
	model := ui.NewProgressModel(title, total, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	reports := <-outcomeCh
	if uiErr != nil {
		return reports, uiErr
	}
	return reports, nil
}
