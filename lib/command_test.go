package svnlook

import (
	"io"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requireShell skips tests that need a POSIX shell to stand in for svnlook.
func requireShell(t *testing.T) string {
	t.Helper()
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available, skipping process test")
	}
	return sh
}

func TestSpawnMissingExecutable(t *testing.T) {
	_, err := Spawn("/nonexistent/svnlook-binary", nil, StderrSuppress)
	assert.Error(t, err)
}

func TestReadToCleanEOF(t *testing.T) {
	sh := requireShell(t)

	cmd, err := Spawn(sh, []string{"-c", "printf 'hello'"}, StderrSuppress)
	require.NoError(t, err)
	defer cmd.Close()

	out, err := io.ReadAll(cmd)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(out))

	status, err := cmd.Finish()
	require.NoError(t, err)
	assert.Equal(t, 0, status)
}

func TestReadConvertsExitFailure(t *testing.T) {
	sh := requireShell(t)

	cmd, err := Spawn(sh, []string{"-c", "printf 'partial'; exit 2"}, StderrSuppress)
	require.NoError(t, err)
	defer cmd.Close()

	out, err := io.ReadAll(cmd)
	assert.Equal(t, "partial", string(out))

	// The zero-byte read must not surface as a clean end-of-stream.
	require.Error(t, err)
	exit := &ExitError{}
	require.ErrorAs(t, err, &exit)
	assert.Equal(t, 2, exit.Status)
}

func TestReadAfterFinishReportsEOF(t *testing.T) {
	sh := requireShell(t)

	cmd, err := Spawn(sh, []string{"-c", "printf 'x'"}, StderrSuppress)
	require.NoError(t, err)

	_, err = cmd.Finish()
	require.NoError(t, err)

	n, err := cmd.Read(make([]byte, 8))
	assert.Zero(t, n)
	assert.Equal(t, io.EOF, err)
}

func TestFinishIsIdempotent(t *testing.T) {
	sh := requireShell(t)

	cmd, err := Spawn(sh, []string{"-c", "exit 3"}, StderrSuppress)
	require.NoError(t, err)

	status, err := cmd.Finish()
	require.NoError(t, err)
	assert.Equal(t, 3, status)

	// Repeat calls return the cached result rather than waiting again.
	for i := 0; i < 3; i++ {
		status, err = cmd.Finish()
		require.NoError(t, err)
		assert.Equal(t, 3, status)
	}
}

func TestCloseReapsProcess(t *testing.T) {
	sh := requireShell(t)

	// The child tries to write far more than the pipe can hold; Close
	// must still reap it without deadlocking, because the pipe handle is
	// released before the wait.
	cmd, err := Spawn(sh, []string{"-c", "yes 2>/dev/null | head -c 1000000; exit 0"}, StderrSuppress)
	require.NoError(t, err)

	require.NoError(t, cmd.Close())
	require.NotNil(t, cmd.cmd.ProcessState, "process not reaped after Close")
	assert.True(t, cmd.cmd.ProcessState.Exited())
}
