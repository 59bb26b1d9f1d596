package main

import (
	"fmt"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/HidekiAI/hairev-utils/internal/selftest"
)

func newSelftestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "selftest",
		Short: "Run the built-in arithmetic checks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			outcomes := selftest.Run(selftest.Checks())

			nameWidth := 0
			for _, o := range outcomes {
				nameWidth = max(nameWidth, runewidth.StringWidth(o.Name))
			}
			out := cmd.OutOrStdout()
			for _, o := range outcomes {
				if o.Passed() {
					if !quiet(cmd) {
						fmt.Fprintf(out, "%s  %s  %s\n", okLabel("PASS"), runewidth.FillRight(o.Name, nameWidth), dimText(o.Elapsed))
					}
					continue
				}
				fmt.Fprintf(out, "%s  %s  %v\n", failLabel("FAIL"), runewidth.FillRight(o.Name, nameWidth), o.Err)
			}

			if n := selftest.Failed(outcomes); n > 0 {
				return fmt.Errorf("%d of %d checks failed", n, len(outcomes))
			}
			if !quiet(cmd) {
				fmt.Fprintf(out, "%d checks passed\n", len(outcomes))
			}
			return nil
		},
	}
}
