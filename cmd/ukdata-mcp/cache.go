package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var pruneMaxAge time.Duration

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Maintain the response cache",
}

var cachePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete cache entries older than --max-age (default cache.prune_after)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		maxAge := pruneMaxAge
		if maxAge <= 0 {
			maxAge = cfg.Cache.GetPruneAfter()
		}
		if maxAge <= 0 {
			return fmt.Errorf("no max age: pass --max-age or set cache.prune_after")
		}
		// Startup pruning would race the explicit run.
		cfg.Cache.PruneAfter = ""

		application, err := newAppFromConfig(cfg)
		if err != nil {
			return err
		}
		defer application.Close()

		removed, err := application.PruneCache(cmd.Context(), maxAge)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "removed %d cache entries older than %s\n", removed, maxAge)
		return nil
	},
}

func init() {
	cachePruneCmd.Flags().DurationVar(&pruneMaxAge, "max-age", 0, "Remove entries at least this old, e.g. 72h")
	cacheCmd.AddCommand(cachePruneCmd)
	rootCmd.AddCommand(cacheCmd)
}
