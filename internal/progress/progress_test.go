package progress

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weblearn/weblearn/internal/quiz"
	"github.com/weblearn/weblearn/internal/quizbank"
	"github.com/weblearn/weblearn/internal/store"
)

func record(c quizbank.Category, correct, total int) quiz.ScoreRecord {
	return quiz.ScoreRecord{
		Category:  c,
		Correct:   correct,
		Total:     total,
		Timestamp: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestOverall(t *testing.T) {
	tests := []struct {
		name   string
		latest map[quizbank.Category]int
		want   int
	}{
		{"empty", nil, 0},
		{"two of three", map[quizbank.Category]int{quizbank.HTML: 80, quizbank.CSS: 100}, 60},
		{"all full", map[quizbank.Category]int{quizbank.HTML: 100, quizbank.CSS: 100, quizbank.JavaScript: 100}, 100},
		{"rounds half up", map[quizbank.Category]int{quizbank.HTML: 67, quizbank.CSS: 100}, 56}, // 55.67
		{"exact half", map[quizbank.Category]int{quizbank.HTML: 100, quizbank.CSS: 0, quizbank.JavaScript: 50}, 50},
	}
	for _, tt := range tests {
		if got := Overall(tt.latest); got != tt.want {
			t.Errorf("%s: Overall = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestRecordScoreUpdatesProgressAndHistory(t *testing.T) {
	blobs := store.NewMemory()
	tr := NewTracker(blobs, nil)
	ctx := context.Background()

	require.NoError(t, tr.RecordScore(ctx, record(quizbank.HTML, 3, 3)))
	require.NoError(t, tr.RecordScore(ctx, record(quizbank.HTML, 2, 3)))

	snap, err := tr.Snapshot(ctx)
	require.NoError(t, err)
	got, ok := snap.Latest(quizbank.HTML)
	assert.True(t, ok)
	assert.Equal(t, 67, got)
	assert.Equal(t, 22, snap.Overall) // 67/3

	hist, err := tr.History(ctx, quizbank.HTML)
	require.NoError(t, err)
	require.Len(t, hist, 2)
	assert.Equal(t, 100, hist[0].Percentage)
	assert.Equal(t, 67, hist[1].Percentage)
}

func TestRecordScorePersistsCompatibleBlobs(t *testing.T) {
	blobs := store.NewMemory()
	tr := NewTracker(blobs, nil)
	ctx := context.Background()

	require.NoError(t, tr.RecordScore(ctx, record(quizbank.HTML, 4, 5)))
	require.NoError(t, tr.RecordScore(ctx, record(quizbank.CSS, 3, 3)))

	raw, _ := blobs.Get(ctx, store.KeyProgress)
	var prog map[string]int
	require.NoError(t, json.Unmarshal(raw, &prog))
	assert.Equal(t, map[string]int{"html": 80, "css": 100, "overall": 60}, prog)

	raw, _ = blobs.Get(ctx, store.KeyQuizResults)
	var results map[string][]map[string]any
	require.NoError(t, json.Unmarshal(raw, &results))
	require.Len(t, results["html"], 1)
	entry := results["html"][0]
	assert.EqualValues(t, 4, entry["score"])
	assert.EqualValues(t, 5, entry["total"])
	assert.EqualValues(t, 80, entry["percentage"])
	assert.Contains(t, entry, "date")
}

func TestRecordScoreRecomputesPercentage(t *testing.T) {
	tr := NewTracker(store.NewMemory(), nil)
	ctx := context.Background()

	rec := record(quizbank.CSS, 1, 3)
	rec.Percentage = 99
	require.NoError(t, tr.RecordScore(ctx, rec))

	hist, _ := tr.History(ctx, quizbank.CSS)
	assert.Equal(t, 33, hist[0].Percentage)
}

func TestRecordScoreRejectsInvalid(t *testing.T) {
	tr := NewTracker(store.NewMemory(), nil)
	ctx := context.Background()

	err := tr.RecordScore(ctx, record(quizbank.Category("python"), 1, 1))
	assert.True(t, errors.Is(err, quizbank.ErrUnknownCategory))

	assert.Error(t, tr.RecordScore(ctx, record(quizbank.HTML, 0, 0)))
	assert.Error(t, tr.RecordScore(ctx, record(quizbank.HTML, 4, 3)))
}

func TestMalformedBlobsFallBackToEmpty(t *testing.T) {
	blobs := store.NewMemory()
	ctx := context.Background()
	blobs.Set(ctx, store.KeyProgress, []byte(`not json`))
	blobs.Set(ctx, store.KeyQuizResults, []byte(`[1,2`))

	tr := NewTracker(blobs, nil)
	snap, err := tr.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, snap.Categories)
	assert.Equal(t, 0, snap.Overall)

	require.NoError(t, tr.RecordScore(ctx, record(quizbank.JavaScript, 3, 3)))
	snap, _ = tr.Snapshot(ctx)
	assert.Equal(t, 33, snap.Overall)
}

func TestLegacyResultsWithoutCategory(t *testing.T) {
	blobs := store.NewMemory()
	ctx := context.Background()
	blobs.Set(ctx, store.KeyQuizResults,
		[]byte(`{"css":[{"score":2,"total":3,"percentage":67,"date":"2025-01-02T03:04:05.000Z"}]}`))

	hist, err := NewTracker(blobs, nil).History(ctx, quizbank.CSS)
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Equal(t, quizbank.CSS, hist[0].Category)
	assert.Equal(t, 67, hist[0].Percentage)
}

func TestSummaries(t *testing.T) {
	tr := NewTracker(store.NewMemory(), nil)
	ctx := context.Background()
	require.NoError(t, tr.RecordScore(ctx, record(quizbank.HTML, 1, 3)))
	require.NoError(t, tr.RecordScore(ctx, record(quizbank.HTML, 3, 3)))
	require.NoError(t, tr.RecordScore(ctx, record(quizbank.HTML, 2, 3)))

	sums, err := tr.Summaries(ctx)
	require.NoError(t, err)
	require.Len(t, sums, 3)

	html := sums[0]
	assert.Equal(t, quizbank.HTML, html.Category)
	assert.Equal(t, 3, html.Attempts)
	assert.Equal(t, 67, html.Latest)
	assert.Equal(t, 100, html.Best)
	assert.Equal(t, 67, html.Average) // (33+100+67)/3 = 66.67

	assert.Equal(t, 0, sums[1].Attempts)
}

func TestResetKeepsOtherKeys(t *testing.T) {
	blobs := store.NewMemory()
	ctx := context.Background()
	blobs.Set(ctx, store.KeyTheme, []byte(`"dark"`))

	tr := NewTracker(blobs, nil)
	require.NoError(t, tr.RecordScore(ctx, record(quizbank.HTML, 3, 3)))
	require.NoError(t, tr.Reset(ctx))

	snap, _ := tr.Snapshot(ctx)
	assert.Empty(t, snap.Categories)
	theme, _ := blobs.Get(ctx, store.KeyTheme)
	assert.Equal(t, `"dark"`, string(theme))
}

// A controller wired to a tracker reproduces the retake scenario end to end.
func TestControllerWithTracker(t *testing.T) {
	tr := NewTracker(store.NewMemory(), nil)
	c := quiz.NewController(quizbank.Default(), tr)
	ctx := context.Background()

	play := func(choices []int) {
		for _, ch := range choices {
			c.Choose(ch)
			_, err := c.Next(ctx)
			require.NoError(t, err)
		}
	}

	require.NoError(t, c.Start(ctx, quizbank.HTML))
	play([]int{0, 1, 2})
	require.NoError(t, c.Restart())
	play([]int{0, 1, 0})

	snap, err := tr.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 67, snap.Categories[quizbank.HTML])

	hist, _ := tr.History(ctx, quizbank.HTML)
	require.Len(t, hist, 2)
	assert.Equal(t, 2, hist[1].Correct)
}

func TestRecordScorePersistsToSQLite(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "weblearn.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	ctx := context.Background()
	tr := NewTracker(st, nil)
	require.NoError(t, tr.RecordScore(ctx, record(quizbank.HTML, 0, 3)))
	require.NoError(t, tr.RecordScore(ctx, record(quizbank.HTML, 2, 3)))

	raw, err := st.Get(ctx, store.KeyProgress)
	require.NoError(t, err)
	assert.JSONEq(t, `{"html":67,"overall":22}`, string(raw))

	hist, err := tr.History(ctx, quizbank.HTML)
	require.NoError(t, err)
	require.Len(t, hist, 2)
	assert.Equal(t, 0, hist[0].Percentage)
	assert.Equal(t, 67, hist[1].Percentage)
}
