package playground

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Workspace file names. A workspace directory holds one file per editor
// plus the generated preview.
const (
	HTMLFile    = "index.html"
	CSSFile     = "style.css"
	JSFile      = "script.js"
	PreviewFile = "preview.html"
)

// ReadDir loads a snippet from a workspace directory. Missing files read
// as empty editors.
func ReadDir(dir string) (Snippet, error) {
	return readSnippet(os.DirFS(dir))
}

func readSnippet(fsys fs.FS) (Snippet, error) {
	read := func(name string) (string, error) {
		data, err := fs.ReadFile(fsys, name)
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		if err != nil {
			return "", fmt.Errorf("read %s: %w", name, err)
		}
		return string(data), nil
	}

	var s Snippet
	var err error
	if s.HTML, err = read(HTMLFile); err != nil {
		return Snippet{}, err
	}
	if s.CSS, err = read(CSSFile); err != nil {
		return Snippet{}, err
	}
	if s.JavaScript, err = read(JSFile); err != nil {
		return Snippet{}, err
	}
	return s, nil
}

// WriteDir writes s into a workspace directory, creating it if needed.
func WriteDir(dir string, s Snippet) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create workspace: %w", err)
	}
	files := map[string]string{HTMLFile: s.HTML, CSSFile: s.CSS, JSFile: s.JavaScript}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	return nil
}

// WritePreview composes s and writes it to the workspace preview file,
// returning its path.
func WritePreview(dir string, s Snippet) (string, error) {
	p := filepath.Join(dir, PreviewFile)
	if err := os.WriteFile(p, []byte(Compose(s)), 0o644); err != nil {
		return "", fmt.Errorf("write preview: %w", err)
	}
	return p, nil
}
