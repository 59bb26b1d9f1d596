package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/HidekiAI/hairev-utils/internal/trace"
)

// activeTracer is set by setupTracing.
var activeTracer = trace.Nop

func addTraceFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("trace", "", "trace output file (- for stderr)")
	cmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	cmd.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")
	cmd.PersistentFlags().Int("trace-ring-size", 4096, "events kept in memory for the failure dump")
	cmd.PersistentFlags().Duration("trace-heartbeat", 0, "heartbeat interval (0 disables)")
}

// setupTracing builds the tracer from flags, falling back to the [trace]
// section of the config for flags that were not given.
func setupTracing(cmd *cobra.Command) (func(), error) {
	flags := cmd.Flags()

	output, err := flags.GetString("trace")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace flag: %w", err)
	}
	levelStr, err := flags.GetString("trace-level")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-level flag: %w", err)
	}
	formatStr, err := flags.GetString("trace-format")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-format flag: %w", err)
	}
	ringSize, err := flags.GetInt("trace-ring-size")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}
	heartbeat, err := flags.GetDuration("trace-heartbeat")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-heartbeat flag: %w", err)
	}

	cfg := activeConfig.Trace
	if !flags.Changed("trace") && cfg.Output != "" {
		output = cfg.Output
	}
	if !flags.Changed("trace-level") && cfg.Level != "" {
		levelStr = cfg.Level
	}
	if !flags.Changed("trace-format") && cfg.Format != "" {
		formatStr = cfg.Format
	}
	if !flags.Changed("trace-heartbeat") && cfg.Heartbeat.Duration > 0 {
		heartbeat = cfg.Heartbeat.Duration
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, err
	}
	// --trace alone means phase-level tracing.
	if level == trace.LevelOff && output != "" {
		level = trace.LevelPhase
	}
	if level == trace.LevelOff {
		activeTracer = trace.Nop
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return func() {}, nil
	}
	format, err := trace.ParseFormat(formatStr)
	if err != nil {
		return nil, err
	}

	tracer, err := trace.New(trace.Config{
		Level:      level,
		Format:     format,
		OutputPath: output,
		RingSize:   ringSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}

	activeTracer = tracer
	root := trace.Begin(tracer, trace.ScopeCommand, cmd.CommandPath(), 0)
	ctx := trace.WithSpan(trace.WithTracer(cmd.Context(), tracer), root)
	cmd.SetContext(ctx)

	hb := trace.StartHeartbeat(tracer, heartbeat)
	started := time.Now()

	return func() {
		hb.Stop()
		root.End(time.Since(started).Round(time.Microsecond).String())
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}, nil
}

// dumpTraceOnError writes the in-memory trace to stderr. At the error level
// nothing was streamed, so this is the only place the events show up.
func dumpTraceOnError(cmd *cobra.Command) {
	if activeTracer.Level() != trace.LevelError {
		return
	}
	ring := trace.RingOf(activeTracer)
	if ring == nil {
		return
	}
	fmt.Fprintln(cmd.ErrOrStderr(), "trace (most recent events):")
	if err := ring.Dump(cmd.ErrOrStderr(), trace.FormatText); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "trace: dump error: %v\n", err)
	}
}
