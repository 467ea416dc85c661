package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/weblearn/weblearn/internal/quiz"
	"github.com/weblearn/weblearn/internal/quizbank"
)

var quizCmd = &cobra.Command{
	Use:   "quiz [category]",
	Short: "Take a quiz without the full-screen UI",
	Long: `Answer one quiz (html, css or javascript) at the prompt.

The score is saved like a quiz taken in the full-screen UI. Use --plain
when stdin is not a terminal, e.g. to pipe answers in.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runQuiz,
}

func init() {
	quizCmd.Flags().Bool("plain", false, "Read numbered answers from stdin instead of arrow-key menus")
}

// errInputClosed ends a plain quiz when stdin runs out.
var errInputClosed = errors.New("input closed")

// chooser picks an option index for a question.
type chooser interface {
	Category(bank *quizbank.Bank) (quizbank.Category, error)
	Choose(q quiz.QuestionView) (int, error)
}

func runQuiz(cmd *cobra.Command, args []string) error {
	plain, _ := cmd.Flags().GetBool("plain")

	e, err := openEnv(cmd, false)
	if err != nil {
		return err
	}
	defer e.Close()

	bank := quizbank.Default()
	ctrl := quiz.NewController(bank, e.tracker(), quiz.WithLogger(e.log.Named("quiz")))

	var ch chooser = promptChooser{}
	if plain {
		ch = &plainChooser{in: bufio.NewScanner(os.Stdin), out: os.Stdout}
	}

	return takeQuiz(cmd.Context(), ctrl, bank, args, ch, os.Stdout)
}

// takeQuiz picks the category from args or the chooser, plays it and
// prints the share line. Interrupts at any prompt abandon the attempt.
func takeQuiz(ctx context.Context, ctrl *quiz.Controller, bank *quizbank.Bank, args []string, ch chooser, out io.Writer) error {
	var (
		category quizbank.Category
		err      error
	)
	if len(args) == 1 {
		category, err = quizbank.ParseCategory(args[0])
	} else {
		category, err = ch.Category(bank)
	}
	if abandoned(err) {
		fmt.Fprintln(out, "\nQuiz abandoned; nothing was saved.")
		return nil
	}
	if err != nil {
		return err
	}

	rec, err := playQuiz(ctx, ctrl, category, ch, out)
	if abandoned(err) {
		fmt.Fprintln(out, "\nQuiz abandoned; nothing was saved.")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(out, quiz.ShareText(*rec))
	return nil
}

func abandoned(err error) bool {
	return errors.Is(err, errInputClosed) || errors.Is(err, promptui.ErrInterrupt)
}

// playQuiz runs category to completion and prints the review. The score is
// recorded by the controller.
func playQuiz(ctx context.Context, ctrl *quiz.Controller, category quizbank.Category, ch chooser, out io.Writer) (*quiz.ScoreRecord, error) {
	if err := ctrl.Start(ctx, category); err != nil {
		return nil, err
	}

	var rec *quiz.ScoreRecord
	for ctrl.State() == quiz.StateInProgress {
		pick, err := ch.Choose(ctrl.View().Question)
		if err != nil {
			ctrl.Exit()
			return nil, err
		}
		ctrl.Choose(pick)
		r, err := ctrl.Next(ctx)
		if err != nil {
			// The attempt is finished even when saving fails.
			fmt.Fprintln(out, "warning:", err)
		}
		if r != nil {
			rec = r
		}
	}
	if rec == nil {
		return nil, fmt.Errorf("quiz ended without a result")
	}

	printReview(out, ctrl.View().Result)
	return rec, nil
}

func printReview(out io.Writer, rv quiz.ResultView) {
	fmt.Fprintf(out, "\n── %s: %d/%d correct (%d%%) ──\n\n",
		rv.Category.DisplayName(), rv.Score.Correct, rv.Score.Total, rv.Score.Percentage)
	for i, q := range rv.Questions {
		chosen := quiz.Unanswered
		if i < len(rv.Answers) {
			chosen = rv.Answers[i]
		}
		if chosen == q.Correct {
			fmt.Fprintf(out, "\033[32m✓\033[0m %d. %s\n", i+1, q.Prompt)
		} else {
			fmt.Fprintf(out, "\033[31m✗\033[0m %d. %s\n   Answer: %s\n", i+1, q.Prompt, q.CorrectOption())
		}
		if q.Explanation != "" {
			fmt.Fprintf(out, "   %s\n", q.Explanation)
		}
	}
	fmt.Fprintln(out)
}

// promptChooser uses arrow-key menus.
type promptChooser struct{}

func (promptChooser) Category(bank *quizbank.Bank) (quizbank.Category, error) {
	cats := bank.Categories()
	titles := make([]string, len(cats))
	for i, c := range cats {
		titles[i] = bank.Title(c)
	}
	p := promptui.Select{Label: "Choose a quiz", Items: titles}
	i, _, err := p.Run()
	if err != nil {
		return "", err
	}
	return cats[i], nil
}

func (promptChooser) Choose(q quiz.QuestionView) (int, error) {
	p := promptui.Select{
		Label:     fmt.Sprintf("[%d/%d] %s", q.Index+1, q.Total, q.Question.Prompt),
		Items:     q.Question.Options,
		CursorPos: max(q.Selected, 0),
		HideHelp:  true,
	}
	i, _, err := p.Run()
	return i, err
}

// plainChooser reads "2" or "b" style answers line by line.
type plainChooser struct {
	in  *bufio.Scanner
	out io.Writer
}

func (p *plainChooser) Category(bank *quizbank.Bank) (quizbank.Category, error) {
	cats := bank.Categories()
	for i, c := range cats {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, bank.Title(c))
	}
	for {
		fmt.Fprint(p.out, "Quiz: ")
		line, err := p.line()
		if err != nil {
			return "", err
		}
		if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(cats) {
			return cats[n-1], nil
		}
		if c, err := quizbank.ParseCategory(line); err == nil {
			return c, nil
		}
		fmt.Fprintln(p.out, "Enter a number or a category name.")
	}
}

func (p *plainChooser) Choose(q quiz.QuestionView) (int, error) {
	fmt.Fprintf(p.out, "── Question %d/%d ──\n%s\n", q.Index+1, q.Total, q.Question.Prompt)
	for j, o := range q.Question.Options {
		fmt.Fprintf(p.out, "  %d) %s\n", j+1, o)
	}
	for {
		fmt.Fprint(p.out, "Your answer: ")
		line, err := p.line()
		if err != nil {
			return 0, err
		}
		if i, ok := parseChoice(line, len(q.Question.Options)); ok {
			fmt.Fprintln(p.out)
			return i, nil
		}
		fmt.Fprintf(p.out, "Enter 1-%d.\n", len(q.Question.Options))
	}
}

func (p *plainChooser) line() (string, error) {
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", errInputClosed
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// parseChoice accepts a 1-based number or a letter.
func parseChoice(s string, n int) (int, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) == 1 && s[0] >= 'a' && s[0] <= 'z' {
		i := int(s[0] - 'a')
		return i, i < n
	}
	i, err := strconv.Atoi(s)
	if err != nil || i < 1 || i > n {
		return 0, false
	}
	return i - 1, true
}
