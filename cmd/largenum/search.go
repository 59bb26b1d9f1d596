package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/HidekiAI/hairev-utils/internal/bignum"
	"github.com/HidekiAI/hairev-utils/internal/cache"
	"github.com/HidekiAI/hairev-utils/internal/fib"
	"github.com/HidekiAI/hairev-utils/internal/observ"
	"github.com/HidekiAI/hairev-utils/internal/trace"
)

const cacheApp = "largenum"

func newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Find the first Fibonacci number with a given number of digits",
		Example: `  largenum search
  largenum search --digits 5000 --mode brute --jobs 8`,
		Args: cobra.NoArgs,
		RunE: runSearch,
	}
	cmd.Flags().Int("digits", fib.DefaultTarget, "number of digits to reach")
	cmd.Flags().Uint64("start", fib.DefaultStart, "first index to examine")
	cmd.Flags().String("mode", string(fib.ModeWindow), "search mode (window|brute)")
	cmd.Flags().Int("jobs", 0, "parallel jobs for brute mode (0 = number of CPUs)")
	cmd.Flags().Bool("no-cache", false, "ignore and do not update the result cache")
	cmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	cmd.Flags().String("format", "text", "output format (text|json)")
	cmd.Flags().Bool("print-value", false, "print the Fibonacci number itself")
	return cmd
}

type searchOutput struct {
	Index   uint64          `json:"index"`
	Digits  int             `json:"digits"`
	Checked uint64          `json:"checked"`
	Seconds float64         `json:"seconds"`
	Cached  bool            `json:"cached"`
	Value   *bignum.BigUint `json:"value,omitempty"`

	elapsed time.Duration
}

func runSearch(cmd *cobra.Command, args []string) error {
	opts, err := searchOptions(cmd)
	if err != nil {
		return err
	}
	format, _ := cmd.Flags().GetString("format")
	if format != "text" && format != "json" {
		return fmt.Errorf("unsupported format %q (must be text or json)", format)
	}
	uiFlag, _ := cmd.Flags().GetString("ui")
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	noCache, _ := cmd.Flags().GetBool("no-cache")
	printValue, _ := cmd.Flags().GetBool("print-value")

	var dc *cache.DiskCache
	if activeConfig.Search.Cache && !noCache {
		dc, err = cache.Open(cacheApp)
		if err != nil {
			// The cache is an accelerator; searching still works without it.
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: result cache disabled: %v\n", err)
			dc = nil
		}
	}

	ctx := cmd.Context()
	timer := observ.NewTimer()
	out := searchOutput{}

	phase := timer.Begin("cache lookup")
	entry, hit, err := dc.Lookup(opts.Target, opts.Start)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: ignoring unreadable cache entry: %v\n", err)
	}
	timer.End(phase, fmt.Sprintf("hit=%t", hit))

	if hit {
		trace.Point(trace.FromContext(ctx), trace.ScopeSearch, "cache", fmt.Sprintf("hit index=%d", entry.Index), trace.ParentSpan(ctx))
		out = searchOutput{Index: entry.Index, Digits: entry.Digits, Cached: true, Value: &entry.Value}
	} else {
		phase = timer.Begin("search")
		var res fib.Result
		if format == "text" && !quiet(cmd) && shouldUseTUI(mode, cmd.OutOrStdout()) {
			res, err = runSearchWithUI(ctx, cmd.OutOrStdout(), opts)
		} else {
			res, err = fib.Search(ctx, opts)
		}
		if err != nil {
			return err
		}
		timer.End(phase, fmt.Sprintf("index=%d", res.Index))
		out = searchOutput{
			Index:   res.Index,
			Digits:  res.Digits,
			Checked: res.Checked,
			Seconds: res.Elapsed.Seconds(),
			Value:   &res.Value,
			elapsed: res.Elapsed,
		}
		if err := dc.Put(&cache.Entry{
			Target: opts.Target,
			Start:  opts.Start,
			Index:  res.Index,
			Digits: res.Digits,
			Value:  res.Value,
		}); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: failed to cache result: %v\n", err)
		}
	}

	if !printValue {
		out.Value = nil
	}
	if format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return err
		}
	} else {
		renderSearchText(cmd, out)
	}
	if t, _ := cmd.Flags().GetBool("timings"); t {
		printTimings(cmd.ErrOrStderr(), timer)
	}
	return nil
}

// searchOptions merges flags over the [search] config section.
func searchOptions(cmd *cobra.Command) (fib.Options, error) {
	cfg := activeConfig.Search
	flags := cmd.Flags()

	opts := fib.Options{Target: cfg.Digits, Start: cfg.Start, Jobs: cfg.Jobs}
	modeStr := cfg.Mode
	if flags.Changed("digits") {
		opts.Target, _ = flags.GetInt("digits")
	}
	if flags.Changed("start") {
		opts.Start, _ = flags.GetUint64("start")
	}
	if flags.Changed("jobs") {
		opts.Jobs, _ = flags.GetInt("jobs")
	}
	if flags.Changed("mode") {
		modeStr, _ = flags.GetString("mode")
	}
	if opts.Target <= 0 {
		return fib.Options{}, fmt.Errorf("--digits must be positive, got %d", opts.Target)
	}
	if opts.Jobs < 0 {
		return fib.Options{}, errors.New("--jobs must not be negative")
	}
	mode, err := fib.ParseMode(modeStr)
	if err != nil {
		return fib.Options{}, err
	}
	opts.Mode = mode
	return opts, nil
}

func renderSearchText(cmd *cobra.Command, out searchOutput) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Final Index: %d - %d digits\n", out.Index, out.Digits)
	if out.Value != nil {
		fmt.Fprintln(w, out.Value)
	}
	if quiet(cmd) {
		return
	}
	if out.Cached {
		fmt.Fprintln(w, dimText("Duration: cached"))
		return
	}
	fmt.Fprintf(w, "Duration: %s s\n", seconds(out.elapsed))
	fmt.Fprintln(cmd.ErrOrStderr(), dimText(fmt.Sprintf("examined %s indices", humanCount(out.Checked))))
}
