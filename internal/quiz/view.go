package quiz

import (
	"slices"

	"github.com/weblearn/weblearn/internal/quizbank"
)

// ViewKind selects which part of View is populated.
type ViewKind int

const (
	ViewSelect ViewKind = iota
	ViewQuestion
	ViewResult
)

// QuestionView describes the question currently on screen.
type QuestionView struct {
	Category quizbank.Category
	Question quizbank.Question
	Index    int // zero-based
	Total    int
	Selected int // Unanswered when nothing is picked yet
	IsFirst  bool
	IsLast   bool
}

// ResultView describes a finished attempt.
type ResultView struct {
	Category  quizbank.Category
	Score     Score
	Questions []quizbank.Question
	Answers   []int
}

// View is what a renderer needs to draw the session.
type View struct {
	Kind     ViewKind
	Question QuestionView
	Result   ResultView
}

// View derives the view description from the session state alone.
func (s *Session) View() View {
	switch s.state {
	case StateInProgress:
		return View{
			Kind: ViewQuestion,
			Question: QuestionView{
				Category: s.category,
				Question: s.questions[s.current],
				Index:    s.current,
				Total:    len(s.questions),
				Selected: s.answers[s.current],
				IsFirst:  s.current == 0,
				IsLast:   s.current == len(s.questions)-1,
			},
		}
	case StateCompleted:
		return View{
			Kind: ViewResult,
			Result: ResultView{
				Category:  s.category,
				Score:     s.Score(),
				Questions: slices.Clone(s.questions),
				Answers:   slices.Clone(s.answers),
			},
		}
	}
	return View{Kind: ViewSelect}
}
