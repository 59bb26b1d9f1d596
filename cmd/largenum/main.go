package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/HidekiAI/hairev-utils/internal/config"
	"github.com/HidekiAI/hairev-utils/internal/trace"
	"github.com/HidekiAI/hairev-utils/internal/version"
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "largenum",
		Short:         "Decimal big-integer arithmetic and Fibonacci digit searches",
		Long:          `largenum computes with arbitrarily large decimal integers and finds the first Fibonacci term with a given number of digits`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := applyColorFlag(cmd); err != nil {
				return err
			}
			if err := loadConfig(cmd); err != nil {
				return err
			}
			stopProfiling, err := setupProfiling(cmd)
			if err != nil {
				return err
			}
			cleanups = append(cleanups, stopProfiling)
			stopTracing, err := setupTracing(cmd)
			if err != nil {
				return err
			}
			cleanups = append(cleanups, stopTracing)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			runCleanups()
		},
	}
	cmd.Version = version.Version

	cmd.PersistentFlags().String("config", "", "path to largenum.toml (default: search upwards from the working directory)")
	cmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	cmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	cmd.PersistentFlags().Bool("timings", false, "show timing information")
	addTraceFlags(cmd)
	addProfileFlags(cmd)

	cmd.AddCommand(newFibCmd())
	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newCalcCmd())
	cmd.AddCommand(newSelftestCmd())
	cmd.AddCommand(newCacheCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// main executes the root command and exits with status 1 on error.
func main() {
	os.Exit(run(context.Background(), rootCmd))
}

func run(ctx context.Context, cmd *cobra.Command) int {
	activeTracer = trace.Nop
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		// PersistentPostRun is skipped when RunE fails.
		dumpTraceOnError(cmd)
		runCleanups()
		fmt.Fprintln(cmd.ErrOrStderr(), color.RedString("error:"), err)
		return 1
	}
	return 0
}

func applyColorFlag(cmd *cobra.Command) error {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return err
	}
	switch strings.ToLower(mode) {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto", "":
		color.NoColor = !isTerminal(os.Stdout)
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
	return nil
}

// cleanups registered by the root pre-run hook, run in reverse order.
var cleanups []func()

func runCleanups() {
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
	cleanups = nil
}

// activeConfig is set by the root pre-run hook.
var activeConfig = config.Default()

func loadConfig(cmd *cobra.Command) error {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	cfg, err := config.Resolve(path, ".")
	if err != nil {
		return err
	}
	activeConfig = cfg
	return nil
}

func quiet(cmd *cobra.Command) bool {
	q, err := cmd.Flags().GetBool("quiet")
	return err == nil && q
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // G115: file descriptors fit in int.
}
