package playground

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weblearn/weblearn/internal/store"
)

func TestWriteAndReadDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "ws")
	s := Snippet{HTML: "<p>x</p>", CSS: "p{}", JavaScript: "let a = 1"}
	require.NoError(t, WriteDir(dir, s))

	got, err := ReadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, s, got)

	p, err := WritePreview(dir, got)
	require.NoError(t, err)
	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, Compose(s), string(data))
}

func TestReadDirMissingFilesAreEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, CSSFile), []byte("body{}"), 0o644))

	got, err := ReadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, Snippet{CSS: "body{}"}, got)
}

func TestSaveAndLoadCode(t *testing.T) {
	kv := store.NewMemory()
	ctx := context.Background()

	_, ok, err := LoadCode(ctx, kv, nil)
	require.NoError(t, err)
	assert.False(t, ok)

	at := time.Date(2026, 5, 1, 8, 0, 0, 0, time.FixedZone("KST", 9*3600))
	s := Snippet{HTML: "<h1>hi</h1>", JavaScript: "alert(1)"}
	require.NoError(t, SaveCode(ctx, kv, s, at))

	raw, _ := kv.Get(ctx, store.KeySavedCode)
	assert.JSONEq(t, `{"html":"<h1>hi</h1>","css":"","javascript":"alert(1)","timestamp":"2026-04-30T23:00:00Z"}`, string(raw))

	saved, ok, err := LoadCode(ctx, kv, nil)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, s, saved.Snippet)
	assert.True(t, saved.Timestamp.Equal(at))
}

func TestLoadCodeMalformed(t *testing.T) {
	kv := store.NewMemory()
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, store.KeySavedCode, []byte("{")))

	_, ok, err := LoadCode(ctx, kv, nil)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDebouncerCoalesces(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var mu sync.Mutex
	calls := 0
	done := make(chan struct{}, 1)
	fn := func() {
		mu.Lock()
		calls++
		mu.Unlock()
		done <- struct{}{}
	}

	for range 5 {
		d.Trigger(fn)
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("debounced call never ran")
	}
	time.Sleep(40 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, calls)
}

func TestDebouncerStop(t *testing.T) {
	d := NewDebouncer(time.Hour)
	assert.False(t, d.Stop())
	d.Trigger(func() { t.Error("stopped call ran") })
	assert.True(t, d.Stop())
}

func TestWatchRebuildsPreview(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteDir(dir, Snippet{HTML: "<p>one</p>"}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	built := make(chan string, 4)
	errc := make(chan error, 1)
	go func() {
		errc <- Watch(ctx, dir, 10*time.Millisecond, nil, func(p string, err error) {
			if err == nil {
				built <- p
			}
		})
	}()

	// Give the watcher time to register before editing.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, HTMLFile), []byte("<p>two</p>"), 0o644))

	select {
	case p := <-built:
		data, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.Contains(t, string(data), "<p>two</p>")
	case <-time.After(2 * time.Second):
		t.Fatal("preview was not rebuilt")
	}

	cancel()
	assert.NoError(t, <-errc)
}

func TestIsEditorFile(t *testing.T) {
	assert.True(t, isEditorFile("/tmp/ws/style.css"))
	assert.False(t, isEditorFile("/tmp/ws/preview.html"))
}
