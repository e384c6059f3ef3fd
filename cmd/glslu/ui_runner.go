package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"glslu/internal/driver"
	"glslu/internal/ui"
)

type scanDirOutcome struct {
	files   []string
	results []*driver.ScanResult
	err     error
}

// runScanDirWithUI runs driver.ScanDir while a progress view consumes its
// events on stdout.
func runScanDirWithUI(ctx context.Context, title, dir string, files []string, opts driver.ScanOptions, jobs int) ([]string, []*driver.ScanResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan scanDirOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		scanned, results, err := driver.ScanDir(ctx, dir, optsCopy, jobs)
		outcomeCh <- scanDirOutcome{files: scanned, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.files, outcome.results, uiErr
	}
	return outcome.files, outcome.results, outcome.err
}
