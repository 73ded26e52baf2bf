package svnlook

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// StderrPolicy selects what happens to the spawned tool's stderr.
type StderrPolicy int

const (
	// StderrSuppress discards anything the tool writes to stderr.
	StderrSuppress StderrPolicy = iota
	// StderrInherit forwards the tool's stderr to our own.
	StderrInherit
)

// Command wraps one spawned svnlook process and its stdout pipe. Reads
// forward to the pipe; a genuine zero-byte read reaps the process and
// surfaces a failing exit status as an *ExitError rather than io.EOF, so
// a crashed producer is never mistaken for clean completion.
//
// A Command owns exactly one OS process. Callers that do not drain the
// stream to its end must still arrange for Close to run, typically with
// a defer, so the process is reaped on every exit path.
type Command struct {
	cmd    *exec.Cmd
	stdout io.ReadCloser

	finished bool
	status   int
	waitErr  error
}

// Spawn launches an executable with the given arguments, stdout piped,
// and stderr handled per policy.
func Spawn(executable string, args []string, stderr StderrPolicy) (*Command, error) {
	cmd := exec.Command(executable, args...)
	if stderr == StderrInherit {
		cmd.Stderr = os.Stderr
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("piping %s: %w", executable, err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting %s: %w", executable, err)
	}

	return &Command{cmd: cmd, stdout: stdout}, nil
}

// Read forwards to the stdout pipe. On true end-of-data the process is
// finished first; if its exit status is non-zero the io.EOF becomes an
// *ExitError. After Finish has run, Read reports io.EOF without touching
// the pipe again.
func (c *Command) Read(p []byte) (n int, err error) {
	if c.finished {
		return 0, io.EOF
	}

	n, err = c.stdout.Read(p)
	if n == 0 && err == io.EOF {
		status, ferr := c.Finish()
		if ferr != nil {
			return 0, ferr
		}
		if status != 0 {
			return 0, &ExitError{Status: status}
		}
	}

	return n, err
}

// Finish closes the stdout pipe and then blocks until the process exits.
// The pipe must be released before the wait: a child blocked writing into
// a full, unread pipe would otherwise deadlock against us. The first
// result is cached and returned on repeat calls; the process is never
// waited on twice.
//
// A non-zero exit status is not an error here: it is returned as the
// status with a nil error. The error covers spawn-level failures only.
func (c *Command) Finish() (int, error) {
	if c.finished {
		return c.status, c.waitErr
	}
	c.finished = true

	_ = c.stdout.Close()

	if err := c.cmd.Wait(); err != nil {
		var exit *exec.ExitError
		if errors.As(err, &exit) {
			c.status = exit.ExitCode()
		} else {
			c.status = -1
			c.waitErr = fmt.Errorf("waiting for %s: %w", c.cmd.Path, err)
		}
	}

	return c.status, c.waitErr
}

// Close finishes the process and discards its exit status, so abandoning
// callers can `defer cmd.Close()` and still guarantee the process is
// reaped exactly once. Safe to call repeatedly.
func (c *Command) Close() error {
	_, err := c.Finish()
	return err
}
