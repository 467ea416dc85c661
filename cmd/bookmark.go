package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var bookmarkCmd = &cobra.Command{
	Use:   "bookmark",
	Short: "Manage bookmarked pages",
}

var bookmarkAddCmd = &cobra.Command{
	Use:   "add <url> [title...]",
	Short: "Bookmark a page",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		title := strings.Join(args[1:], " ")
		b, err := e.shelf().Add(cmd.Context(), title, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Bookmarked %q (%s)\n", b.Title, b.URL)
		return nil
	},
}

var bookmarkListCmd = &cobra.Command{
	Use:   "list",
	Short: "List bookmarks",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		list, err := e.shelf().List(cmd.Context())
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Println("No bookmarks yet.")
			return nil
		}
		for i, b := range list {
			fmt.Printf("%3d  %-28s  %-26s  %s\n", i, b.Title, b.URL, humanize.Time(b.Date))
		}
		return nil
	},
}

var bookmarkRmCmd = &cobra.Command{
	Use:   "rm <index>",
	Short: "Remove a bookmark by its list index",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		i, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid index %q: %w", args[0], err)
		}
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		b, err := e.shelf().Remove(cmd.Context(), i)
		if err != nil {
			return err
		}
		fmt.Printf("Removed %q\n", b.Title)
		return nil
	},
}

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage page notes",
}

var noteAddCmd = &cobra.Command{
	Use:   "add <page> <text...>",
	Short: "Attach a note to a page",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		n, err := e.shelf().AddNote(cmd.Context(), args[0], strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		fmt.Printf("Saved note %s\n", n.ID)
		return nil
	},
}

var noteListCmd = &cobra.Command{
	Use:   "list [page]",
	Short: "List notes, optionally for one page",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		page := ""
		if len(args) == 1 {
			page = args[0]
		}
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		notes, err := e.shelf().Notes(cmd.Context(), page)
		if err != nil {
			return err
		}
		if len(notes) == 0 {
			fmt.Println("No notes yet.")
			return nil
		}
		for _, n := range notes {
			fmt.Printf("%s  [%s] %s  (%s)\n", shortID(n.ID), n.Page, n.Text, humanize.Time(n.CreatedAt))
		}
		return nil
	},
}

var noteRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a note; a unique ID prefix is enough",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		sh := e.shelf()
		notes, err := sh.Notes(cmd.Context(), "")
		if err != nil {
			return err
		}
		var matches []string
		for _, n := range notes {
			if strings.HasPrefix(n.ID, args[0]) {
				matches = append(matches, n.ID)
			}
		}
		switch len(matches) {
		case 0:
			return fmt.Errorf("no note matches %q", args[0])
		case 1:
		default:
			return fmt.Errorf("%q matches %d notes; give more of the ID", args[0], len(matches))
		}
		if err := sh.DeleteNote(cmd.Context(), matches[0]); err != nil {
			return err
		}
		fmt.Println("Deleted note", matches[0])
		return nil
	},
}

func init() {
	bookmarkCmd.AddCommand(bookmarkAddCmd)
	bookmarkCmd.AddCommand(bookmarkListCmd)
	bookmarkCmd.AddCommand(bookmarkRmCmd)

	noteCmd.AddCommand(noteAddCmd)
	noteCmd.AddCommand(noteListCmd)
	noteCmd.AddCommand(noteRmCmd)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
