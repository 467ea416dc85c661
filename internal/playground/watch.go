package playground

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch rebuilds the workspace preview whenever one of its editor files
// changes, waiting for delay of quiet first. onBuild receives each preview
// path or error. It blocks until ctx is cancelled.
func Watch(ctx context.Context, dir string, delay time.Duration, log *zap.Logger, onBuild func(string, error)) error {
	if log == nil {
		log = zap.NewNop()
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	build := func() {
		s, err := ReadDir(dir)
		if err == nil {
			var p string
			p, err = WritePreview(dir, s)
			if err == nil {
				log.Debug("preview rebuilt", zap.String("path", p))
				onBuild(p, nil)
				return
			}
		}
		log.Warn("preview rebuild failed", zap.Error(err))
		onBuild("", err)
	}

	d := NewDebouncer(delay)
	defer d.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if isEditorFile(ev.Name) && ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
				d.Trigger(build)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", zap.Error(err))
		}
	}
}

func isEditorFile(name string) bool {
	switch filepath.Base(name) {
	case HTMLFile, CSSFile, JSFile:
		return true
	}
	return false
}
