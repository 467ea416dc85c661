package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	From    time.Time // timestamp >= From
	Purpose string    // exact purpose match when set
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLMRequestEventData row.
type LLMRequestEvent struct {
	LLMRequestEventData
	ID        int64
	Sequence  int64
	Timestamp time.Time
}

// LLMUsage aggregates token usage for one model.
type LLMUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to logged LLM requests.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns one event by ID, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int64) (*LLMRequestEvent, error)

	// LLMUsageByModel aggregates calls and tokens per model.
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)
}
