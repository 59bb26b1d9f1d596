package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HidekiAI/hairev-utils/internal/cache"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the search result cache",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every cached search result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dc, err := cache.Open(cacheApp)
			if err != nil {
				return err
			}
			if err := dc.DropAll(); err != nil {
				return fmt.Errorf("failed to clear %s: %w", dc.Dir(), err)
			}
			if !quiet(cmd) {
				fmt.Fprintf(cmd.OutOrStdout(), "cleared %s\n", dc.Dir())
			}
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dc, err := cache.Open(cacheApp)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dc.Dir())
			return nil
		},
	})
	return cmd
}
