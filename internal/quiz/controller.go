package quiz

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/weblearn/weblearn/internal/quizbank"
)

// Recorder receives one ScoreRecord per completed attempt.
type Recorder interface {
	RecordScore(ctx context.Context, rec ScoreRecord) error
}

// Controller owns a Session together with the question bank it draws
// from and the recorder completed attempts are sent to.
type Controller struct {
	bank     *quizbank.Bank
	session  *Session
	recorder Recorder
	log      *zap.Logger
	now      func() time.Time
	newID    func() string
	last     *ScoreRecord
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the controller's logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithClock overrides the time source used for record timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithIDs overrides the record ID generator.
func WithIDs(newID func() string) Option {
	return func(c *Controller) { c.newID = newID }
}

// NewController creates a controller in StateSelecting. recorder may be nil,
// in which case scores are computed but not persisted.
func NewController(bank *quizbank.Bank, recorder Recorder, opts ...Option) *Controller {
	c := &Controller{
		bank:     bank,
		session:  NewSession(),
		recorder: recorder,
		log:      zap.NewNop(),
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start begins a quiz for category. Unknown categories leave the state
// untouched and return an error wrapping quizbank.ErrUnknownCategory.
func (c *Controller) Start(ctx context.Context, category quizbank.Category) error {
	questions, err := c.bank.Questions(category)
	if err != nil {
		c.log.Warn("quiz category not available", zap.String("category", string(category)))
		return err
	}
	if err := c.session.Start(category, questions); err != nil {
		return err
	}
	c.last = nil
	c.log.Info("quiz started",
		zap.String("category", string(category)),
		zap.Int("questions", len(questions)),
	)
	return nil
}

// Choose records choice for the current question.
func (c *Controller) Choose(choice int) bool {
	ok := c.session.RecordAnswer(choice)
	if !ok {
		c.log.Debug("answer rejected",
			zap.Int("choice", choice),
			zap.Stringer("state", c.session.State()),
		)
	}
	return ok
}

// Next advances the session. When that completes the quiz, the attempt is
// scored and handed to the recorder exactly once; the returned record is
// nil otherwise. A recorder failure is returned alongside the record, and
// the session stays completed.
func (c *Controller) Next(ctx context.Context) (*ScoreRecord, error) {
	if !c.session.Advance() {
		return nil, nil
	}

	score := c.session.Score()
	rec := ScoreRecord{
		ID:         c.newID(),
		Category:   c.session.Category(),
		Correct:    score.Correct,
		Total:      score.Total,
		Percentage: score.Percentage,
		Timestamp:  c.now().UTC(),
	}
	c.last = &rec

	c.log.Info("quiz completed",
		zap.String("category", string(rec.Category)),
		zap.Int("correct", rec.Correct),
		zap.Int("total", rec.Total),
		zap.Int("percentage", rec.Percentage),
	)

	if c.recorder == nil {
		return &rec, nil
	}
	if err := c.recorder.RecordScore(ctx, rec); err != nil {
		c.log.Error("record score", zap.Error(err))
		return &rec, fmt.Errorf("record score: %w", err)
	}
	return &rec, nil
}

// Back moves to the previous question.
func (c *Controller) Back() {
	c.session.Retreat()
}

// Exit discards the running quiz.
func (c *Controller) Exit() {
	c.session.Exit()
	c.last = nil
}

// Restart replays the current category from the first question.
func (c *Controller) Restart() error {
	if err := c.session.Restart(); err != nil {
		return err
	}
	c.last = nil
	return nil
}

// State returns the session phase.
func (c *Controller) State() State {
	return c.session.State()
}

// View returns the renderer's view of the session.
func (c *Controller) View() View {
	return c.session.View()
}

// LastRecord returns the record produced by the most recent completion,
// or nil if the current attempt has not completed.
func (c *Controller) LastRecord() *ScoreRecord {
	return c.last
}

// Bank returns the question bank the controller draws from.
func (c *Controller) Bank() *quizbank.Bank {
	return c.bank
}

// ShareText is the message offered when a learner shares a result.
func ShareText(rec ScoreRecord) string {
	return fmt.Sprintf("I just finished the WebLearn %s quiz: %d/%d (%d%%)!",
		rec.Category.DisplayName(), rec.Correct, rec.Total, rec.Percentage)
}
