package spinner

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpinnerNotATerminal(t *testing.T) {
	var buf bytes.Buffer
	s, err := Start(&buf, "backup")
	require.NoError(t, err)
	s.Messagef("copying %d files", 3)
	require.NoError(t, s.Done(nil))

	out := buf.String()
	assert.Contains(t, out, "backup: ")
	assert.True(t, strings.Contains(out, "✓"), out)
	assert.Contains(t, out, "done")
}

func TestSpinnerFailure(t *testing.T) {
	var buf bytes.Buffer
	s, err := Start(&buf, "backup")
	require.NoError(t, err)
	require.NoError(t, s.Done(errors.New("disk full")))
	assert.Contains(t, buf.String(), "✗")
	assert.Contains(t, buf.String(), "disk full")
}
