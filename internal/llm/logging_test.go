package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/weblearn/weblearn/internal/store"
)

type fakeEvents struct {
	store.EventRepo
	appended []store.LLMRequestEventData
	err      error
}

func (f *fakeEvents) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	f.appended = append(f.appended, data)
	return f.err
}

func TestLogging_RecordsSuccess(t *testing.T) {
	events := &fakeEvents{}
	mock := NewMockProvider(MockResponse{Text: "answer", Usage: Usage{InputTokens: 12, OutputTokens: 7}})
	p := WithLogging(mock, "mock", events, nil)

	ctx := WithPurpose(context.Background(), PurposeAssistant)
	if _, err := p.Complete(ctx, Ask("be brief", "what is css?", 64)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(events.appended) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events.appended))
	}
	ev := events.appended[0]
	if !ev.Success || ev.Purpose != "assistant" || ev.Provider != "mock" || ev.Model != "mock" {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if ev.InputTokens != 12 || ev.OutputTokens != 7 || ev.ResponseBody != "answer" {
		t.Fatalf("usage not recorded: %+v", ev)
	}
	if !strings.Contains(ev.RequestBody, "[system]\nbe brief") || !strings.Contains(ev.RequestBody, "[user]\nwhat is css?") {
		t.Fatalf("request body = %q", ev.RequestBody)
	}
}

func TestLogging_RecordsFailureAndWarns(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	events := &fakeEvents{err: errors.New("db locked")}
	p := WithLogging(NewMockProvider(), "mock", events, zap.New(core))

	_, err := p.Complete(context.Background(), Ask("", "q", 8))
	if err == nil {
		t.Fatal("expected provider error")
	}
	if events.appended[0].Success || events.appended[0].ErrorMessage == "" {
		t.Fatalf("failure not recorded: %+v", events.appended[0])
	}
	if logs.FilterMessage("llm request failed").Len() != 1 {
		t.Error("missing failure log")
	}
	if logs.FilterMessage("record llm request").Len() != 1 {
		t.Error("missing event write warning")
	}
}

func TestLogging_NilEventsOnlyLogs(t *testing.T) {
	p := WithLogging(NewMockProvider(MockResponse{Text: "ok"}), "mock", nil, nil)
	if _, err := p.Complete(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
