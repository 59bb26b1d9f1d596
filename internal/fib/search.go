package fib

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"time"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"github.com/HidekiAI/hairev-utils/internal/bignum"
	"github.com/HidekiAI/hairev-utils/internal/trace"
)

const (
	// DefaultTarget is the digit count the CLI searches for by default.
	DefaultTarget = 1000
	// DefaultStart is F(12) = 144, the first term with three digits.
	DefaultStart = 12
)

// ErrInvalidTarget is returned for a digit target below one.
var ErrInvalidTarget = errors.New("target digit count must be positive")

// Mode selects how Search produces terms.
type Mode string

const (
	// ModeWindow steps a single Sequence: one addition per index.
	ModeWindow Mode = "window"
	// ModeBrute recomputes every F(i) from scratch, Jobs indices at a time.
	ModeBrute Mode = "brute"
)

// ParseMode converts a string to a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeWindow:
		return ModeWindow, nil
	case ModeBrute:
		return ModeBrute, nil
	default:
		return "", fmt.Errorf("invalid search mode %q (expected window|brute)", s)
	}
}

// Options configures Search.
type Options struct {
	Target   int    // digits wanted, at least 1
	Start    uint64 // first index examined
	Mode     Mode
	Jobs     int // brute-mode parallelism; <= 0 means GOMAXPROCS
	Progress ProgressSink
}

// Result is the first term that reached the target.
type Result struct {
	Index   uint64
	Digits  int
	Value   bignum.BigUint
	Checked uint64 // number of indices examined
	Elapsed time.Duration
}

// Search finds the smallest index i >= opts.Start such that F(i) has at
// least opts.Target decimal digits.
func Search(ctx context.Context, opts Options) (Result, error) {
	if opts.Target <= 0 {
		return Result{}, fmt.Errorf("%w: %d", ErrInvalidTarget, opts.Target)
	}
	if opts.Mode == "" {
		opts.Mode = ModeWindow
	}
	if opts.Progress == nil {
		opts.Progress = nopSink{}
	}
	if opts.Jobs <= 0 {
		opts.Jobs = runtime.GOMAXPROCS(0)
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeSearch, "search", trace.ParentSpan(ctx))
	span.WithExtra("target", strconv.Itoa(opts.Target)).
		WithExtra("start", strconv.FormatUint(opts.Start, 10)).
		WithExtra("mode", string(opts.Mode))
	ctx = trace.WithSpan(ctx, span)

	started := time.Now()
	var (
		res Result
		err error
	)
	switch opts.Mode {
	case ModeWindow:
		res, err = searchWindow(ctx, opts, started)
	case ModeBrute:
		res, err = searchBrute(ctx, opts, started)
	default:
		err = fmt.Errorf("invalid search mode %q", opts.Mode)
	}
	res.Elapsed = time.Since(started)

	opts.Progress.OnEvent(Event{
		Index:   res.Index,
		Digits:  res.Digits,
		Target:  opts.Target,
		Done:    true,
		Err:     err,
		Elapsed: res.Elapsed,
	})
	if err != nil {
		span.End(err.Error())
		return Result{}, err
	}
	span.WithExtra("checked", strconv.FormatUint(res.Checked, 10))
	span.End(fmt.Sprintf("index=%d digits=%d", res.Index, res.Digits))
	return res, nil
}

func searchWindow(ctx context.Context, opts Options, started time.Time) (Result, error) {
	tracer := trace.FromContext(ctx)
	parent := trace.ParentSpan(ctx)

	traceTerms := termsTraced(tracer)

	seq := NewSequence()
	if err := seq.Skip(ctx, opts.Start); err != nil {
		return Result{}, err
	}
	var checked uint64
	lastDigits := -1
	for {
		if checked%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
		}
		v := seq.Value()
		digits := v.Len()
		checked++
		if traceTerms {
			trace.Point(tracer, trace.ScopeTerm, "fib", fmt.Sprintf("index=%d digits=%d", seq.Index(), digits), parent)
		}

		if digits >= opts.Target {
			return Result{Index: seq.Index(), Digits: digits, Value: v, Checked: checked}, nil
		}
		if digits != lastDigits {
			lastDigits = digits
			opts.Progress.OnEvent(Event{Index: seq.Index(), Digits: digits, Target: opts.Target, Elapsed: time.Since(started)})
		}
		seq.Next()
	}
}

// searchBrute examines [next, next+jobs) concurrently, then keeps the
// smallest qualifying index of the batch. Each goroutine owns the term it
// computes.
func searchBrute(ctx context.Context, opts Options, started time.Time) (Result, error) {
	tracer := trace.FromContext(ctx)
	parent := trace.ParentSpan(ctx)

	traceTerms := termsTraced(tracer)

	width, err := safecast.Conv[uint64](opts.Jobs)
	if err != nil {
		return Result{}, fmt.Errorf("invalid job count %d: %w", opts.Jobs, err)
	}

	terms := make([]bignum.BigUint, opts.Jobs)
	var checked uint64
	for next := opts.Start; ; next += width {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		batch := trace.Begin(tracer, trace.ScopeBatch, "batch", parent)
		batch.WithExtra("from", strconv.FormatUint(next, 10)).
			WithExtra("to", strconv.FormatUint(next+width-1, 10))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(opts.Jobs)
		for k := range opts.Jobs {
			idx := next + uint64(k) //nolint:gosec // G115: k < Jobs, which was checked above.
			g.Go(func() error {
				v, err := FibonacciContext(gctx, idx)
				if err != nil {
					return err
				}
				if traceTerms {
					trace.Point(tracer, trace.ScopeTerm, "fib", fmt.Sprintf("index=%d digits=%d", idx, v.Len()), batch.ID())
				}
				terms[k] = v
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			batch.End(err.Error())
			return Result{}, err
		}

		for k, v := range terms {
			checked++
			if v.Len() >= opts.Target {
				idx := next + uint64(k) //nolint:gosec // G115: k < Jobs.
				batch.End(fmt.Sprintf("found index=%d", idx))
				return Result{Index: idx, Digits: v.Len(), Value: v, Checked: checked}, nil
			}
		}
		last := terms[len(terms)-1]
		batch.End("")
		opts.Progress.OnEvent(Event{
			Index:   next + width - 1,
			Digits:  last.Len(),
			Target:  opts.Target,
			Elapsed: time.Since(started),
		})
	}
}

// termsTraced reports whether per-term events would be recorded.
func termsTraced(t trace.Tracer) bool {
	return t != nil && t.Enabled() && t.Level().ShouldEmit(trace.ScopeTerm)
}
