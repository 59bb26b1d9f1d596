package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/HidekiAI/hairev-utils/internal/bignum"
	"github.com/HidekiAI/hairev-utils/internal/fib"
	"github.com/HidekiAI/hairev-utils/internal/observ"
)

func newFibCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fib N",
		Short: "Print the N-th Fibonacci number",
		Example: `  largenum fib 12
  largenum fib 100 --width 30 --pad _`,
		Args: cobra.ExactArgs(1),
		RunE: runFib,
	}
	cmd.Flags().Int("width", 0, "pad the number to this many characters")
	cmd.Flags().String("pad", "0", "padding character")
	return cmd
}

func runFib(cmd *cobra.Command, args []string) error {
	n, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid index %q: %w", args[0], err)
	}
	width, pad, err := formatOptions(cmd)
	if err != nil {
		return err
	}

	timer := observ.NewTimer()
	phase := timer.Begin("fibonacci")
	v, err := fib.FibonacciContext(cmd.Context(), n)
	if err != nil {
		return err
	}
	timer.End(phase, "")

	phase = timer.Begin("format")
	text := bignum.FormatInt(bignum.IntFromUint(v), width, pad)
	timer.End(phase, "")

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, text)
	if !quiet(cmd) {
		fmt.Fprintln(cmd.ErrOrStderr(), dimText(fmt.Sprintf("F(%s) has %s digits", humanCount(n), humanCount(v.Len()))))
	}
	if t, _ := cmd.Flags().GetBool("timings"); t {
		printTimings(cmd.ErrOrStderr(), timer)
	}
	return nil
}

// formatOptions merges --width/--pad with the [format] config section.
func formatOptions(cmd *cobra.Command) (int, rune, error) {
	width := activeConfig.Format.Width
	pad := activeConfig.PadRune()
	if cmd.Flags().Changed("width") {
		w, err := cmd.Flags().GetInt("width")
		if err != nil {
			return 0, 0, err
		}
		width = w
	}
	if width < 0 {
		return 0, 0, fmt.Errorf("--width must not be negative, got %d", width)
	}
	if cmd.Flags().Changed("pad") {
		s, err := cmd.Flags().GetString("pad")
		if err != nil {
			return 0, 0, err
		}
		r := []rune(s)
		if len(r) != 1 {
			return 0, 0, fmt.Errorf("--pad must be a single character, got %q", s)
		}
		pad = r[0]
	}
	return width, pad, nil
}
