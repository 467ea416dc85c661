package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/weblearn/weblearn/internal/deploy"
)

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Deployment lesson helpers",
}

var deployCostsCmd = &cobra.Command{
	Use:   "costs [value...]",
	Short: "Total the yearly running costs",
	Long: `Without arguments, print the lesson's cost table and its yearly total.
With arguments, total the given values; only values written in 원 count,
e.g. weblearn deploy costs "15,000원" "96,000원" "Free".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			fmt.Println(deploy.FormatYearly(deploy.CostTotal(args)))
			return nil
		}

		items := deploy.DefaultCosts()
		for _, it := range items {
			mark := " "
			if !deploy.IsAmount(it.Value) {
				mark = "-"
			}
			fmt.Printf("%s %-26s  %s\n", mark, it.Label, it.Value)
		}
		fmt.Println(strings.Repeat("─", 44))
		fmt.Printf("  %-26s  %s\n", "Total", deploy.FormatYearly(deploy.ItemsTotal(items)))
		return nil
	},
}

func init() {
	deployCmd.AddCommand(deployCostsCmd)
}
