package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "weblearn.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)

	for _, table := range []string{blobsTable, llmRequestsTable, "global_sequence"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("query sqlite_master for %s: %v", table, err)
		}
		if name != table {
			t.Errorf("table name = %q, want %q", name, table)
		}
	}
}

func TestReopenKeepsBlobs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weblearn.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Set(ctx, KeyProgress, []byte(`{"html":67,"overall":22}`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	got, err := s.Get(ctx, KeyProgress)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `{"html":67,"overall":22}` {
		t.Errorf("progress = %s after reopen", got)
	}
}

func TestGetAbsentKey(t *testing.T) {
	s := openTestStore(t)

	got, err := s.Get(context.Background(), KeyProgress)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Errorf("get absent = %q, want nil", got)
	}
}

func TestSetOverwrites(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Set(ctx, KeyTheme, []byte(`"light"`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set(ctx, KeyTheme, []byte(`"dark"`)); err != nil {
		t.Fatalf("set again: %v", err)
	}

	got, err := s.Get(ctx, KeyTheme)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `"dark"` {
		t.Errorf("theme = %s, want \"dark\"", got)
	}
}

func TestUnknownKeyRejected(t *testing.T) {
	s := openTestStore(t)

	err := s.Set(context.Background(), Key("passwords"), []byte("x"))
	if !errors.Is(err, ErrUnknownKey) {
		t.Errorf("set unknown key err = %v, want ErrUnknownKey", err)
	}
}

func TestAtomicRollsBackOnError(t *testing.T) {
	blobs := map[string]Blobs{
		"sqlite": openTestStore(t),
		"memory": NewMemory(),
	}

	for name, b := range blobs {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if err := b.Set(ctx, KeyNotes, []byte(`[]`)); err != nil {
				t.Fatalf("seed: %v", err)
			}

			boom := errors.New("boom")
			err := b.Atomic(ctx, func(kv KV) error {
				if err := kv.Set(ctx, KeyNotes, []byte(`[{"id":"1"}]`)); err != nil {
					return err
				}
				return boom
			})
			if !errors.Is(err, boom) {
				t.Fatalf("atomic err = %v, want boom", err)
			}

			got, _ := b.Get(ctx, KeyNotes)
			if string(got) != `[]` {
				t.Errorf("notes after rollback = %s, want []", got)
			}
		})
	}
}

func TestAtomicCommits(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	err := s.Atomic(ctx, func(kv KV) error {
		if err := kv.Set(ctx, KeyProgress, []byte(`{"html":80}`)); err != nil {
			return err
		}
		got, err := kv.Get(ctx, KeyProgress)
		if err != nil {
			return err
		}
		if string(got) != `{"html":80}` {
			t.Errorf("read-own-write = %s", got)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("atomic: %v", err)
	}

	got, _ := s.Get(ctx, KeyProgress)
	if string(got) != `{"html":80}` {
		t.Errorf("progress = %s, want {\"html\":80}", got)
	}
}

func TestReadJSONMalformedFallsBackToZero(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	m.Set(ctx, KeyBookmarks, []byte(`{not json`))

	got, err := ReadJSON[[]string](ctx, m, KeyBookmarks, nil)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got != nil {
		t.Errorf("got %v, want nil slice", got)
	}
}

func TestReadWriteJSON(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if err := WriteJSON(ctx, m, KeyProgress, map[string]int{"css": 100}); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadJSON[map[string]int](ctx, m, KeyProgress, nil)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got["css"] != 100 {
		t.Errorf("css = %d, want 100", got["css"])
	}
}

func TestClear(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, k := range Keys() {
		if err := s.Set(ctx, k, []byte(`1`)); err != nil {
			t.Fatalf("set %s: %v", k, err)
		}
	}
	if err := Clear(ctx, s); err != nil {
		t.Fatalf("clear: %v", err)
	}
	for _, k := range Keys() {
		got, _ := s.Get(ctx, k)
		if got != nil {
			t.Errorf("%s = %s after clear, want nil", k, got)
		}
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "mock", Model: "mock", Purpose: "assistant", InputTokens: 10, OutputTokens: 5, LatencyMs: 100, Success: true},
		{Provider: "mock", Model: "mock", Purpose: "assistant", InputTokens: 20, OutputTokens: 15, LatencyMs: 300, Success: false, ErrorMessage: "down"},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "lesson", InputTokens: 7, OutputTokens: 3, LatencyMs: 50, Success: true},
	}
	for i, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	got, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Model != "gpt-4o-mini" {
		t.Errorf("newest model = %q, want gpt-4o-mini", got[0].Model)
	}
	if got[1].Success || got[1].ErrorMessage != "down" {
		t.Errorf("second event = %+v, want failed with 'down'", got[1])
	}

	filtered, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "assistant"})
	if err != nil {
		t.Fatalf("query purpose: %v", err)
	}
	if len(filtered) != 2 {
		t.Errorf("assistant events = %d, want 2", len(filtered))
	}

	one, err := repo.GetLLMEvent(ctx, got[1].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if one == nil || one.Sequence != got[1].Sequence {
		t.Errorf("get returned %+v, want sequence %d", one, got[1].Sequence)
	}

	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing event")
	}

	usage, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	if len(usage) != 2 {
		t.Fatalf("usage rows = %d, want 2", len(usage))
	}
	// Ordered by model name: gpt-4o-mini, mock.
	if usage[1].Model != "mock" || usage[1].Calls != 2 || usage[1].InputTokens != 30 {
		t.Errorf("mock usage = %+v", usage[1])
	}
	if usage[1].AvgLatencyMs != 200 {
		t.Errorf("mock avg latency = %d, want 200", usage[1].AvgLatencyMs)
	}
}
