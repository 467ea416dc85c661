package quiz

import (
	"time"

	"github.com/weblearn/weblearn/internal/quizbank"
)

// Score is the graded outcome of one attempt.
type Score struct {
	Correct    int
	Total      int
	Percentage int
	Results    []bool // per-question correctness
}

// Grade compares answers against each question's correct option.
func Grade(questions []quizbank.Question, answers []int) Score {
	sc := Score{
		Total:   len(questions),
		Results: make([]bool, len(questions)),
	}
	for i, q := range questions {
		if i < len(answers) && answers[i] == q.Correct {
			sc.Correct++
			sc.Results[i] = true
		}
	}
	sc.Percentage = Percentage(sc.Correct, sc.Total)
	return sc
}

// Percentage returns round(100*correct/total) with halves rounded up,
// or 0 when total is 0.
func Percentage(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return (200*correct + total) / (2 * total)
}

// ScoreRecord is one completed attempt as kept in the score history.
type ScoreRecord struct {
	ID         string            `json:"id,omitempty"`
	Category   quizbank.Category `json:"category,omitempty"`
	Correct    int               `json:"score"`
	Total      int               `json:"total"`
	Percentage int               `json:"percentage"`
	Timestamp  time.Time         `json:"date"`
}
