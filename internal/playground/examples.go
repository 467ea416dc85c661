package playground

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
)

//go:embed examples
var examplesFS embed.FS

// ErrUnknownExample is returned by Example for names not in Examples.
var ErrUnknownExample = errors.New("unknown example")

var exampleOrder = []string{"basic", "css-styling", "counter"}

// Examples lists the bundled example names.
func Examples() []string {
	return append([]string(nil), exampleOrder...)
}

// Example returns the bundled example called name.
func Example(name string) (Snippet, error) {
	sub, err := fs.Sub(examplesFS, path.Join("examples", name))
	if err != nil {
		return Snippet{}, fmt.Errorf("%w: %q", ErrUnknownExample, name)
	}
	s, err := readSnippet(sub)
	if err != nil || s.Empty() {
		return Snippet{}, fmt.Errorf("%w: %q", ErrUnknownExample, name)
	}
	return s, nil
}
