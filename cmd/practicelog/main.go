package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dbPath string

	root := &cobra.Command{
		Use:   "practicelog",
		Short: "Log and review SQL practice sessions",
		Long: `practicelog records SQL practice sessions into the tracker database
so the dashboard can chart accuracy and time spent per platform.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&dbPath, "db", defaultDBPath(), "path to the tracker database")

	root.AddCommand(newLogCmd(&dbPath))
	root.AddCommand(newRecentCmd(&dbPath))
	root.AddCommand(newStatsCmd(&dbPath))
	return root
}

func defaultDBPath() string {
	if dir := os.Getenv("JOBTRACK_DATA_DIR"); dir != "" {
		return dir + "/jobtrack.db"
	}
	return "jobtrack.db"
}
