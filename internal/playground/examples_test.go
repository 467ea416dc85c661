package playground

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExamplesAreComplete(t *testing.T) {
	names := Examples()
	assert.Equal(t, []string{"basic", "css-styling", "counter"}, names)

	for _, name := range names {
		s, err := Example(name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, s.HTML, name)
		assert.NotEmpty(t, s.CSS, name)
		assert.NotEmpty(t, s.JavaScript, name)
	}
}

func TestBasicExampleGreets(t *testing.T) {
	s, err := Example("basic")
	require.NoError(t, err)
	assert.Contains(t, s.HTML, `onclick="greet()"`)
	assert.Contains(t, s.JavaScript, "function greet()")
}

func TestUnknownExample(t *testing.T) {
	for _, name := range []string{"nope", "../examples", ""} {
		_, err := Example(name)
		assert.True(t, errors.Is(err, ErrUnknownExample), "name %q: %v", name, err)
	}
}
