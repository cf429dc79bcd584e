package scripting

import (
	"bytes"
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRunner(t *testing.T) (*Runner, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	if _, err := exec.LookPath("bash"); err != nil {
		t.Skip("bash not available")
	}
	var stdout, stderr bytes.Buffer
	return New(&stdout, &stderr), &stdout, &stderr
}

func TestSh0(t *testing.T) {
	r, stdout, _ := newTestRunner(t)
	require.NoError(t, r.Sh0(context.Background(), "echo hello"))
	assert.Equal(t, "hello\n", stdout.String())
}

func TestSh1(t *testing.T) {
	r, _, stderr := newTestRunner(t)
	out, err := r.Sh1(context.Background(), "printf '%s' abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", out)

	_, err = r.Sh1(context.Background(), "echo oops >&2; exit 3")
	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, exitErr.ExitCode())
	assert.Equal(t, "oops\n", stderr.String())
}

func TestSh2NoCheck(t *testing.T) {
	r, _, _ := newTestRunner(t)
	r.Check = false
	stdout, stderr, err := r.Sh2(context.Background(), "echo out; echo err >&2; false")
	require.NoError(t, err)
	assert.Equal(t, "out\n", stdout)
	assert.Equal(t, "err\n", stderr)
}

func TestLog(t *testing.T) {
	r, _, stderr := newTestRunner(t)
	r.now = func() time.Time { return time.Date(2025, 3, 4, 9, 5, 0, 0, time.UTC) }
	r.Log("backing up", 3, "files")
	assert.Equal(t, "[09:05] backing up 3 files\n", stderr.String())
}

func TestSpin(t *testing.T) {
	r, _, stderr := newTestRunner(t)
	out, err := r.Spin(context.Background(), "counting", "echo one; echo two")
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", out)
	assert.Contains(t, stderr.String(), "counting")
}
