package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"jobtrack-engine/internal/store"
)

func openStore(path string) (*store.DB, error) {
	db, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(db.Pool); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func newRecentCmd(dbPath *string) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Show the most recent practice sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openStore(*dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			sessions, err := store.RecentPractice(context.Background(), db.Pool, limit)
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				fmt.Println("No sessions logged yet.")
				return nil
			}

			for _, s := range sessions {
				mark := "✗"
				if s.IsCorrect {
					mark = "✓"
				}
				fmt.Printf("[%s] %s %-18s %-6s %3dm  %s\n",
					s.PracticeDate, mark, s.Platform, s.Difficulty,
					s.TimeSpentMinutes, truncate(s.QuestionText, 60))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of sessions to show")
	return cmd
}

func newStatsCmd(dbPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate practice statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openStore(*dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			st, err := store.SQLPracticeStats(context.Background(), db.Pool)
			if err != nil {
				return err
			}

			fmt.Printf("Sessions:   %d\n", st.TotalSessions)
			fmt.Printf("Correct:    %d (%.1f%%)\n", st.CorrectCount, st.AccuracyPercentage)
			fmt.Printf("Time spent: %dm\n", st.TotalMinutes)
			fmt.Printf("Platforms:  %d\n", st.PlatformsUsed)
			fmt.Printf("Difficulty: %d easy / %d medium / %d hard\n",
				st.EasyCount, st.MediumCount, st.HardCount)
			return nil
		},
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
