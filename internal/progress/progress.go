package progress

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/weblearn/weblearn/internal/quiz"
	"github.com/weblearn/weblearn/internal/quizbank"
	"github.com/weblearn/weblearn/internal/store"
)

// overallKey is the entry in the progress blob holding the overall average.
const overallKey = "overall"

// Snapshot is the latest percentage per category plus the overall average.
type Snapshot struct {
	Categories map[quizbank.Category]int
	Overall    int
}

// Latest returns the latest percentage for c and whether one exists.
func (s Snapshot) Latest(c quizbank.Category) (int, bool) {
	p, ok := s.Categories[c]
	return p, ok
}

// Overall averages the latest percentages over every category, counting a
// category without a score as 0, rounding halves up.
func Overall(latest map[quizbank.Category]int) int {
	cats := quizbank.AllCategories()
	sum := 0
	for _, c := range cats {
		sum += latest[c]
	}
	n := len(cats)
	return (2*sum + n) / (2 * n)
}

// Summary condenses a category's attempt history.
type Summary struct {
	Category quizbank.Category `json:"category"`
	Attempts int               `json:"attempts"`
	Latest   int               `json:"latest"`
	Best     int               `json:"best"`
	Average  int               `json:"average"`
}

// Tracker persists scores and derives progress from them.
type Tracker struct {
	blobs store.Blobs
	log   *zap.Logger
}

var _ quiz.Recorder = (*Tracker)(nil)

// NewTracker creates a Tracker over blobs.
func NewTracker(blobs store.Blobs, log *zap.Logger) *Tracker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Tracker{blobs: blobs, log: log}
}

// RecordScore appends rec to its category history and updates the progress
// blob, both inside one atomic store operation.
func (t *Tracker) RecordScore(ctx context.Context, rec quiz.ScoreRecord) error {
	if !slices.Contains(quizbank.AllCategories(), rec.Category) {
		return fmt.Errorf("%w: %q", quizbank.ErrUnknownCategory, rec.Category)
	}
	if rec.Total <= 0 || rec.Correct < 0 || rec.Correct > rec.Total {
		return fmt.Errorf("invalid score %d/%d", rec.Correct, rec.Total)
	}
	rec.Percentage = quiz.Percentage(rec.Correct, rec.Total)

	err := t.blobs.Atomic(ctx, func(kv store.KV) error {
		results, err := t.readResults(ctx, kv)
		if err != nil {
			return err
		}
		results[string(rec.Category)] = append(results[string(rec.Category)], rec)
		if err := store.WriteJSON(ctx, kv, store.KeyQuizResults, results); err != nil {
			return err
		}

		snap, err := t.readSnapshot(ctx, kv)
		if err != nil {
			return err
		}
		snap.Categories[rec.Category] = rec.Percentage
		snap.Overall = Overall(snap.Categories)
		return store.WriteJSON(ctx, kv, store.KeyProgress, encodeSnapshot(snap))
	})
	if err != nil {
		return fmt.Errorf("record %s score: %w", rec.Category, err)
	}

	t.log.Info("score recorded",
		zap.String("category", string(rec.Category)),
		zap.Int("percentage", rec.Percentage),
	)
	return nil
}

// Snapshot returns the stored progress.
func (t *Tracker) Snapshot(ctx context.Context) (Snapshot, error) {
	return t.readSnapshot(ctx, t.blobs)
}

// History returns the attempts for category, oldest first.
func (t *Tracker) History(ctx context.Context, category quizbank.Category) ([]quiz.ScoreRecord, error) {
	results, err := t.readResults(ctx, t.blobs)
	if err != nil {
		return nil, err
	}
	return results[string(category)], nil
}

// Summaries condenses the history of every category, in category order.
func (t *Tracker) Summaries(ctx context.Context) ([]Summary, error) {
	results, err := t.readResults(ctx, t.blobs)
	if err != nil {
		return nil, err
	}

	out := make([]Summary, 0, len(quizbank.AllCategories()))
	for _, c := range quizbank.AllCategories() {
		recs := results[string(c)]
		s := Summary{Category: c, Attempts: len(recs)}
		if len(recs) > 0 {
			total := 0
			for _, r := range recs {
				total += r.Percentage
				s.Best = max(s.Best, r.Percentage)
			}
			s.Latest = recs[len(recs)-1].Percentage
			s.Average = (2*total + len(recs)) / (2 * len(recs))
		}
		out = append(out, s)
	}
	return out, nil
}

// Reset forgets all scores and progress.
func (t *Tracker) Reset(ctx context.Context) error {
	return t.blobs.Atomic(ctx, func(kv store.KV) error {
		if err := kv.Delete(ctx, store.KeyQuizResults); err != nil {
			return err
		}
		return kv.Delete(ctx, store.KeyProgress)
	})
}

func (t *Tracker) readResults(ctx context.Context, kv store.KV) (map[string][]quiz.ScoreRecord, error) {
	results, err := store.ReadJSON[map[string][]quiz.ScoreRecord](ctx, kv, store.KeyQuizResults, t.log)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = make(map[string][]quiz.ScoreRecord)
	}
	// Older entries carry the category only as their map key.
	for cat, recs := range results {
		for i := range recs {
			if recs[i].Category == "" {
				recs[i].Category = quizbank.Category(cat)
			}
		}
	}
	return results, nil
}

func (t *Tracker) readSnapshot(ctx context.Context, kv store.KV) (Snapshot, error) {
	raw, err := store.ReadJSON[map[string]int](ctx, kv, store.KeyProgress, t.log)
	if err != nil {
		return Snapshot{}, err
	}
	snap := Snapshot{Categories: make(map[quizbank.Category]int)}
	for _, c := range quizbank.AllCategories() {
		if p, ok := raw[string(c)]; ok {
			snap.Categories[c] = p
		}
	}
	snap.Overall = Overall(snap.Categories)
	return snap, nil
}

func encodeSnapshot(s Snapshot) map[string]int {
	out := make(map[string]int, len(s.Categories)+1)
	for c, p := range s.Categories {
		out[string(c)] = p
	}
	out[overallKey] = s.Overall
	return out
}
