package quiz

import (
	"errors"
	"slices"

	"github.com/weblearn/weblearn/internal/quizbank"
)

// State is the quiz session phase.
type State int

const (
	StateSelecting  State = iota // No quiz running; waiting for a category
	StateInProgress              // Answering questions
	StateCompleted               // Showing results
)

func (s State) String() string {
	switch s {
	case StateSelecting:
		return "selecting"
	case StateInProgress:
		return "in-progress"
	case StateCompleted:
		return "completed"
	}
	return "unknown"
}

// Unanswered marks a question the learner has not picked an option for.
const Unanswered = -1

var (
	ErrNotSelecting = errors.New("quiz already running")
	ErrNoQuestions  = errors.New("quiz has no questions")
	ErrNotStarted   = errors.New("no quiz to restart")
)

// Session is the quiz state machine. The zero value is a session in
// StateSelecting.
type Session struct {
	state     State
	category  quizbank.Category
	questions []quizbank.Question
	current   int
	answers   []int
}

// NewSession returns a session waiting for a category.
func NewSession() *Session {
	return &Session{}
}

// Start enters StateInProgress at the first question with every answer unset.
func (s *Session) Start(category quizbank.Category, questions []quizbank.Question) error {
	if s.state != StateSelecting {
		return ErrNotSelecting
	}
	if len(questions) == 0 {
		return ErrNoQuestions
	}
	s.category = category
	s.questions = slices.Clone(questions)
	s.reset()
	return nil
}

func (s *Session) reset() {
	s.state = StateInProgress
	s.current = 0
	s.answers = make([]int, len(s.questions))
	for i := range s.answers {
		s.answers[i] = Unanswered
	}
}

// RecordAnswer stores choice for the current question without moving.
// It reports false, changing nothing, outside StateInProgress or when
// choice is not a valid option index.
func (s *Session) RecordAnswer(choice int) bool {
	if s.state != StateInProgress {
		return false
	}
	if choice < 0 || choice >= len(s.questions[s.current].Options) {
		return false
	}
	s.answers[s.current] = choice
	return true
}

// Advance moves to the next question, or completes the quiz when the
// current question is the last one. It reports whether the quiz completed.
func (s *Session) Advance() bool {
	if s.state != StateInProgress {
		return false
	}
	if s.current < len(s.questions)-1 {
		s.current++
		return false
	}
	s.state = StateCompleted
	return true
}

// Retreat moves to the previous question. It is a no-op on the first one.
func (s *Session) Retreat() {
	if s.state != StateInProgress || s.current == 0 {
		return
	}
	s.current--
}

// Exit discards the running quiz from any state.
func (s *Session) Exit() {
	*s = Session{}
}

// Restart re-enters StateInProgress on the same questions with the answers
// cleared.
func (s *Session) Restart() error {
	if s.state == StateSelecting {
		return ErrNotStarted
	}
	s.reset()
	return nil
}

// State returns the current phase.
func (s *Session) State() State { return s.state }

// Category returns the running category, empty while selecting.
func (s *Session) Category() quizbank.Category { return s.category }

// Current returns the zero-based index of the current question.
func (s *Session) Current() int { return s.current }

// Total returns the number of questions in the running quiz.
func (s *Session) Total() int { return len(s.questions) }

// Answers returns a copy of the recorded answers.
func (s *Session) Answers() []int { return slices.Clone(s.answers) }

// Score grades the recorded answers. Unanswered questions count as wrong.
func (s *Session) Score() Score {
	return Grade(s.questions, s.answers)
}
