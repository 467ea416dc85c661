package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/weblearn/weblearn/internal/pages"
)

var pagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "Browse the lesson pages",
}

var pagesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List lesson pages",
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := pages.List()
		if err != nil {
			return err
		}
		fmt.Printf("%-12s  %s\n", "Slug", "Title")
		fmt.Println(strings.Repeat("─", 40))
		for _, m := range list {
			fmt.Printf("%-12s  %s\n", m.Slug, m.Title)
		}
		return nil
	},
}

var pagesExamplesCmd = &cobra.Command{
	Use:   "examples <slug>",
	Short: "Print the code examples of a page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := pages.Render(args[0])
		if err != nil {
			return err
		}
		runnable, _ := cmd.Flags().GetBool("runnable")

		shown := 0
		for _, b := range p.Blocks {
			if runnable && !b.Runnable() {
				continue
			}
			shown++
			fmt.Printf("── %d. %s (%s) ──\n%s\n", shown, b.Language, b.Kind, strings.TrimRight(b.Code, "\n"))
		}
		if shown == 0 {
			fmt.Println("No code examples.")
		}
		return nil
	},
}

func init() {
	pagesExamplesCmd.Flags().Bool("runnable", false, "Only show examples with a live preview")

	pagesCmd.AddCommand(pagesListCmd)
	pagesCmd.AddCommand(pagesExamplesCmd)
	rootCmd.AddCommand(pagesCmd)
}
