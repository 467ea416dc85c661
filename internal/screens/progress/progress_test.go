package progress

import (
	"context"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	prog "github.com/weblearn/weblearn/internal/progress"
	"github.com/weblearn/weblearn/internal/quiz"
	"github.com/weblearn/weblearn/internal/quizbank"
	"github.com/weblearn/weblearn/internal/router"
	"github.com/weblearn/weblearn/internal/screen"
	"github.com/weblearn/weblearn/internal/store"
)

func trackerWithScores(t *testing.T) *prog.Tracker {
	t.Helper()
	tr := prog.NewTracker(store.NewMemory(), nil)
	ctx := context.Background()
	at := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, tr.RecordScore(ctx, quiz.ScoreRecord{Category: quizbank.HTML, Correct: 4, Total: 5, Timestamp: at}))
	require.NoError(t, tr.RecordScore(ctx, quiz.ScoreRecord{Category: quizbank.CSS, Correct: 3, Total: 3, Timestamp: at}))
	return tr
}

func TestProgressScreen_View(t *testing.T) {
	s := New(trackerWithScores(t))
	v := s.View(100, 40)

	assert.Contains(t, v, "80%")
	assert.Contains(t, v, "60%") // overall
	assert.Contains(t, v, "not taken yet")
	assert.Contains(t, v, "1 attempts · best 100% · average 100%")
}

func TestProgressScreen_ResetNeedsConfirmation(t *testing.T) {
	tr := trackerWithScores(t)
	s := New(tr)

	s.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	assert.Contains(t, s.View(100, 40), "Erase all quiz results?")
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'n', Text: "n"})
	assert.Nil(t, cmd)
	assert.Equal(t, 60, s.snap.Overall)

	s.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	_, cmd = s.Update(tea.KeyPressMsg{Code: 'y', Text: "y"})
	require.NotNil(t, cmd)
	assert.Equal(t, screen.ProgressMsg{Overall: 0}, cmd())

	snap, err := tr.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.Categories)
}

func TestProgressScreen_Reveal(t *testing.T) {
	tr := prog.NewTracker(store.NewMemory(), nil)
	s := New(tr)
	assert.Equal(t, 0, s.snap.Overall)

	require.NoError(t, tr.RecordScore(context.Background(),
		quiz.ScoreRecord{Category: quizbank.JavaScript, Correct: 3, Total: 3, Timestamp: time.Now()}))
	s.Reveal()
	assert.Equal(t, 33, s.snap.Overall)
}

func TestProgressScreen_OpensHistory(t *testing.T) {
	s := New(trackerWithScores(t))
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'h', Text: "h"})
	require.NotNil(t, cmd)
	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "History", push.Screen.Title())
}
