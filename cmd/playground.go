package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/weblearn/weblearn/internal/playground"
)

var playgroundCmd = &cobra.Command{
	Use:   "playground",
	Short: "Edit HTML, CSS and JavaScript in a workspace directory",
	Long: `A playground workspace is a directory holding index.html, style.css and
script.js. Edit them with any editor; "run" or "watch" writes preview.html
next to them for a browser to open.`,
}

var playgroundRunCmd = &cobra.Command{
	Use:   "run [dir]",
	Short: "Write the preview for a workspace",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := workspaceArg(args)
		s, err := playground.ReadDir(dir)
		if err != nil {
			return err
		}
		if s.Empty() {
			fmt.Println("The workspace is empty; try `weblearn playground example basic`.")
		}
		p, err := playground.WritePreview(dir, s)
		if err != nil {
			return err
		}
		fmt.Println(p)
		return nil
	},
}

var playgroundSaveCmd = &cobra.Command{
	Use:   "save [dir]",
	Short: "Save a workspace as the stored playground code",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := playground.ReadDir(workspaceArg(args))
		if err != nil {
			return err
		}
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := playground.SaveCode(cmd.Context(), e.blobs, s, time.Now()); err != nil {
			return err
		}
		fmt.Println("Code saved.")
		return nil
	},
}

var playgroundLoadCmd = &cobra.Command{
	Use:   "load [dir]",
	Short: "Write the stored playground code into a workspace",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		saved, ok, err := playground.LoadCode(cmd.Context(), e.blobs, e.log)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no saved code")
		}
		dir := workspaceArg(args)
		if err := playground.WriteDir(dir, saved.Snippet); err != nil {
			return err
		}
		fmt.Printf("Loaded code saved %s into %s\n", humanize.Time(saved.Timestamp), dir)
		return nil
	},
}

var playgroundExampleCmd = &cobra.Command{
	Use:   "example [name] [dir]",
	Short: "Write a built-in example into a workspace",
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			fmt.Println("Examples:", strings.Join(playground.Examples(), ", "))
			return nil
		}
		s, err := playground.Example(args[0])
		if err != nil {
			return err
		}
		dir := workspaceArg(args[1:])
		if err := playground.WriteDir(dir, s); err != nil {
			return err
		}
		fmt.Printf("Wrote %s example into %s\n", args[0], dir)
		return nil
	},
}

var playgroundWatchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Rebuild the preview whenever a workspace file changes",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		dir := workspaceArg(args)
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		fmt.Printf("Watching %s (Ctrl+C to stop)\n", dir)
		return playground.Watch(ctx, dir, e.cfg.Playground.Debounce, e.log.Named("playground"), func(p string, err error) {
			if err != nil {
				fmt.Fprintln(os.Stderr, "rebuild failed:", err)
				return
			}
			fmt.Printf("%s  rebuilt %s\n", time.Now().Format("15:04:05"), p)
		})
	},
}

func workspaceArg(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return "."
}

func init() {
	playgroundCmd.AddCommand(playgroundRunCmd)
	playgroundCmd.AddCommand(playgroundSaveCmd)
	playgroundCmd.AddCommand(playgroundLoadCmd)
	playgroundCmd.AddCommand(playgroundExampleCmd)
	playgroundCmd.AddCommand(playgroundWatchCmd)
}
