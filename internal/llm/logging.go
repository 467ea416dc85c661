package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/weblearn/weblearn/internal/store"
)

// LoggingProvider is a decorator that records every request in the event
// log and on the application logger.
type LoggingProvider struct {
	inner    Provider
	provider string
	events   store.EventRepo
	log      *zap.Logger
}

// WithLogging wraps a Provider with event logging. A nil events repo only
// logs to log.
func WithLogging(p Provider, provider string, events store.EventRepo, log *zap.Logger) Provider {
	if log == nil {
		log = zap.NewNop()
	}
	return &LoggingProvider{inner: p, provider: provider, events: events, log: log}
}

func (l *LoggingProvider) Complete(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Complete(ctx, req)
	latency := time.Since(start)

	data := store.LLMRequestEventData{
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   latency.Milliseconds(),
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
		data.ResponseBody = resp.Text
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	fields := []zap.Field{
		zap.String("provider", data.Provider),
		zap.String("model", data.Model),
		zap.String("purpose", data.Purpose),
		zap.Duration("latency", latency),
		zap.Int("input_tokens", data.InputTokens),
		zap.Int("output_tokens", data.OutputTokens),
	}
	if err != nil {
		l.log.Warn("llm request failed", append(fields, zap.Error(err))...)
	} else {
		l.log.Debug("llm request", fields...)
	}

	// A failed write must not fail the learner's question.
	if l.events != nil {
		if logErr := l.events.AppendLLMRequest(ctx, data); logErr != nil {
			l.log.Warn("record llm request", zap.Error(logErr))
		}
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// serializeRequest builds a readable transcript of the request.
func serializeRequest(req Request) string {
	var b strings.Builder
	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}
	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", m.Role, m.Content)
	}
	return strings.TrimRight(b.String(), "\n")
}
