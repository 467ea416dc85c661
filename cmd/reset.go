package cmd

import (
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/weblearn/weblearn/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset learner data",
	Long: `Forget quiz scores and progress. With --all, bookmarks, notes, saved
playground code and the theme preference are cleared too.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		yes, _ := cmd.Flags().GetBool("yes")

		if !yes {
			label := "Reset all quiz scores"
			if all {
				label = "Delete ALL saved data"
			}
			p := promptui.Prompt{Label: label, IsConfirm: true}
			if _, err := p.Run(); err != nil {
				if errors.Is(err, promptui.ErrAbort) || errors.Is(err, promptui.ErrInterrupt) {
					fmt.Println("Nothing was changed.")
					return nil
				}
				return err
			}
		}

		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		if all {
			err = store.Clear(cmd.Context(), e.blobs)
		} else {
			err = e.tracker().Reset(cmd.Context())
		}
		if err != nil {
			return fmt.Errorf("reset: %w", err)
		}
		fmt.Println("Done.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("all", false, "Also clear bookmarks, notes, saved code and preferences")
	resetCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}
