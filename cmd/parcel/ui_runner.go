package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"parcel/internal/pipeline"
	"parcel/internal/ui"
)

type buildOutcome struct {
	results []pipeline.Result
	err     error
}

// runBuildWithUI drives BuildAll while rendering per-script progress in a
// terminal UI. Events from every run share one channel; the model keys them
// by file path.
func runBuildWithUI(ctx context.Context, title string, paths []string, configure func(path string) *pipeline.Request) ([]pipeline.Result, error) {
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan buildOutcome, 1)

	go func() {
		withProgress := func(path string) *pipeline.Request {
			req := configure(path)
			req.Progress = pipeline.ChannelSink{Ch: events}
			return req
		}
		results, err := pipeline.BuildAll(ctx, paths, withProgress)
		outcomeCh <- buildOutcome{results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, paths, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
