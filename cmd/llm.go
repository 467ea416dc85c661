package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/weblearn/weblearn/internal/llm"
	"github.com/weblearn/weblearn/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect assistant model requests",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM events",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		e, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		events, err := e.events.QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit, Purpose: purpose})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		if len(events) == 0 {
			fmt.Println("No LLM events found.")
			return nil
		}

		fmt.Printf("%-5s  %-19s  %-10s  %-28s  %-6s  %-6s  %-7s  %s\n",
			"ID", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK")
		fmt.Println(strings.Repeat("─", 96))

		for _, ev := range events {
			ok := "✓"
			if !ev.Success {
				ok = "✗"
			}
			fmt.Printf("%-5d  %-19s  %-10s  %-28s  %-6d  %-6d  %-7d  %s\n",
				ev.ID,
				ev.Timestamp.Local().Format("2006-01-02 15:04:05"),
				ev.Purpose,
				truncate(ev.Model, 28),
				ev.InputTokens,
				ev.OutputTokens,
				ev.LatencyMs,
				ok,
			)
		}
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "View full request/response for an LLM event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		e, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ev, err := e.events.GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if ev == nil {
			return fmt.Errorf("event %d not found", id)
		}

		sep := strings.Repeat("─", 60)

		fmt.Printf("ID:        %d\n", ev.ID)
		fmt.Printf("Time:      %s\n", ev.Timestamp.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("Provider:  %s\n", ev.Provider)
		fmt.Printf("Model:     %s\n", ev.Model)
		fmt.Printf("Purpose:   %s\n", ev.Purpose)
		fmt.Printf("Tokens:    %d in / %d out\n", ev.InputTokens, ev.OutputTokens)
		fmt.Printf("Latency:   %dms\n", ev.LatencyMs)
		fmt.Printf("Success:   %v\n", ev.Success)
		if ev.ErrorMessage != "" {
			fmt.Printf("Error:     %s\n", ev.ErrorMessage)
		}

		for _, part := range []struct{ name, body string }{
			{"REQUEST", ev.RequestBody},
			{"RESPONSE", ev.ResponseBody},
		} {
			fmt.Println()
			fmt.Println(sep)
			fmt.Println(part.name)
			fmt.Println(sep)
			if part.body != "" {
				fmt.Println(part.body)
			} else {
				fmt.Println("(not captured)")
			}
		}
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated LLM token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		usage, err := e.events.LLMUsageByModel(cmd.Context())
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		if len(usage) == 0 {
			fmt.Println("No LLM usage recorded yet.")
			return nil
		}

		fmt.Println("Estimated Cost (USD)")
		fmt.Println(strings.Repeat("─", 82))
		fmt.Printf("%-32s  %6s  %10s  %10s  %8s  %10s\n",
			"Model", "Calls", "Input", "Output", "Avg Ms", "Cost")
		fmt.Println(strings.Repeat("─", 82))

		var totalCost float64
		var totalCalls, totalIn, totalOut int
		var unknownModels []string
		for _, mu := range usage {
			totalCalls += mu.Calls
			totalIn += mu.InputTokens
			totalOut += mu.OutputTokens

			cost := "?"
			if mc := llm.LookupCost(mu.Model); mc != nil {
				c := mc.Cost(mu.InputTokens, mu.OutputTokens)
				totalCost += c
				cost = formatCost(c)
			} else {
				unknownModels = append(unknownModels, mu.Model)
			}
			fmt.Printf("%-32s  %6d  %10d  %10d  %8d  %10s\n",
				truncate(mu.Model, 32), mu.Calls, mu.InputTokens, mu.OutputTokens, mu.AvgLatencyMs, cost)
		}

		fmt.Println(strings.Repeat("─", 82))
		label := "TOTAL"
		if len(unknownModels) > 0 {
			label = "TOTAL (partial)"
		}
		fmt.Printf("%-32s  %6d  %10d  %10d  %8s  %10s\n",
			label, totalCalls, totalIn, totalOut, "", formatCost(totalCost))

		if len(unknownModels) > 0 {
			fmt.Printf("\nPricing unavailable for: %s\n", strings.Join(unknownModels, ", "))
		}
		return nil
	},
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (e.g. assistant)")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
