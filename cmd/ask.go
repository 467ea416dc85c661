package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/weblearn/weblearn/internal/assistant"
	"github.com/weblearn/weblearn/internal/search"
)

var askCmd = &cobra.Command{
	Use:   "ask <question...>",
	Short: "Ask the learning assistant",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		ans, err := e.assistant(cmd.Context()).Ask(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Println(ans.Text)
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			switch ans.Source {
			case assistant.SourceRule:
				fmt.Printf("\n(matched %q)\n", ans.Keyword)
			default:
				fmt.Printf("\n(%s)\n", ans.Source)
			}
		}
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Find lesson pages",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		q := strings.Join(args, " ")
		results := search.Default().Search(q)
		if len(results) == 0 {
			if len([]rune(strings.TrimSpace(q))) < search.MinQueryLen {
				return fmt.Errorf("query must be at least %d characters", search.MinQueryLen)
			}
			fmt.Println("No results found.")
			return nil
		}
		for _, r := range results {
			fmt.Printf("%-24s  %s\n", r.Title, r.URL)
		}
		return nil
	},
}

func init() {
	askCmd.Flags().BoolP("verbose", "v", false, "Show where the answer came from")
}
