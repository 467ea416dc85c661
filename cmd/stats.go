package cmd

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/weblearn/weblearn/internal/quizbank"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		tr := e.tracker()
		snap, err := tr.Snapshot(ctx)
		if err != nil {
			return fmt.Errorf("read progress: %w", err)
		}
		sums, err := tr.Summaries(ctx)
		if err != nil {
			return fmt.Errorf("read results: %w", err)
		}

		fmt.Printf("Overall progress: %d%%\n\n", snap.Overall)
		fmt.Printf("%-12s  %8s  %6s  %6s  %7s\n", "Quiz", "Attempts", "Latest", "Best", "Average")
		fmt.Println(strings.Repeat("─", 47))
		for _, s := range sums {
			if s.Attempts == 0 {
				fmt.Printf("%-12s  %8d  %6s  %6s  %7s\n", s.Category.DisplayName(), 0, "-", "-", "-")
				continue
			}
			fmt.Printf("%-12s  %8d  %5d%%  %5d%%  %6d%%\n",
				s.Category.DisplayName(), s.Attempts, s.Latest, s.Best, s.Average)
		}
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history [category]",
	Short: "List past quiz attempts",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cats := quizbank.AllCategories()
		if len(args) == 1 {
			c, err := quizbank.ParseCategory(args[0])
			if err != nil {
				return err
			}
			cats = []quizbank.Category{c}
		}

		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		tr := e.tracker()
		shown := 0
		for _, c := range cats {
			hist, err := tr.History(cmd.Context(), c)
			if err != nil {
				return fmt.Errorf("read %s history: %w", c, err)
			}
			if len(hist) == 0 {
				continue
			}
			fmt.Println(c.DisplayName())
			for i := len(hist) - 1; i >= 0; i-- {
				r := hist[i]
				fmt.Printf("  %-16s  %d/%d  %3d%%\n", humanize.Time(r.Timestamp), r.Correct, r.Total, r.Percentage)
			}
			shown++
		}
		if shown == 0 {
			fmt.Println("No quiz attempts yet. Run `weblearn quiz` to take one.")
		}
		return nil
	},
}
