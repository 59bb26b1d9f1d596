package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/HidekiAI/hairev-utils/internal/fib"
	"github.com/HidekiAI/hairev-utils/internal/ui"
)

// errInterrupted is returned when the user quits the progress UI before the
// search finishes.
var errInterrupted = errors.New("search interrupted")

type searchOutcome struct {
	result fib.Result
	err    error
}

// runSearchWithUI runs the search in the background and renders its
// progress on out until the search finishes.
func runSearchWithUI(ctx context.Context, out io.Writer, opts fib.Options) (fib.Result, error) {
	return runSearchProgram(ctx, opts, tea.WithOutput(out))
}

func runSearchProgram(ctx context.Context, opts fib.Options, progOpts ...tea.ProgramOption) (fib.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan fib.Event, 256)
	outcomeCh := make(chan searchOutcome, 1)

	go func() {
		o := opts
		o.Progress = fib.ChannelSink{Ch: events, Done: ctx.Done()}
		res, err := fib.Search(ctx, o)
		outcomeCh <- searchOutcome{result: res, err: err}
		close(events)
	}()

	title := fmt.Sprintf("searching for the first %d-digit Fibonacci number", opts.Target)
	progOpts = append(progOpts, tea.WithContext(ctx))
	program := tea.NewProgram(ui.NewSearchModel(title, opts.Target, events), progOpts...)
	final, uiErr := program.Run()

	// The UI may stop before the search does (ctrl-c or a terminal error).
	// Stop the search and drain the channel so it can finish.
	cancel()
	for range events {
	}
	outcome := <-outcomeCh

	if uiErr == nil && ui.Interrupted(final) {
		return fib.Result{}, errInterrupted
	}
	if outcome.err != nil {
		return outcome.result, outcome.err
	}
	return outcome.result, uiErr
}
