package main

import (
	"fmt"

	"techsync/internal/app"
	"techsync/internal/config"
	"techsync/internal/pipeline"

	"github.com/spf13/cobra"
)

var rescoreCmd = &cobra.Command{
	Use:   "rescore",
	Short: "Recompute stored project matches for every user",
	RunE:  runRescore,
}

var (
	rescoreWorkers int
	rescoreLimit   int
	rescoreRPS     float64
)

func init() {
	rescoreCmd.Flags().IntVar(&rescoreWorkers, "workers", 10, "Concurrent users scored")
	rescoreCmd.Flags().IntVar(&rescoreLimit, "limit", 0, "Maximum users to rescore (0 = all)")
	rescoreCmd.Flags().Float64Var(&rescoreRPS, "rps", 0, "Users started per second (0 = unthrottled)")

	rootCmd.AddCommand(rescoreCmd)
}

func runRescore(cmd *cobra.Command, _ []string) error {
	if rescoreLimit < 0 {
		return fmt.Errorf("--limit must be >= 0")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	c, err := app.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to init container: %w", err)
	}
	defer func() {
		_ = c.Close()
	}()

	summary, err := c.Rescore.Run(cmd.Context(), pipeline.RescoreParams{
		Workers: rescoreWorkers,
		Limit:   rescoreLimit,
		RPS:     rescoreRPS,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "rescored users=%d projects=%d pairs=%d failed=%d duration=%s\n",
		summary.Users, summary.Projects, summary.Pairs, summary.Failed, summary.Duration)
	return nil
}
