package svnlook

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// DefaultExecutable is the svnlook binary used when a Repos does not
// name one explicitly.
const DefaultExecutable = "svnlook"

// Repos is a handle on one Subversion repository, inspected by driving
// the svnlook tool as a subprocess.
//
// A Repos itself holds no OS resources; each operation spawns its own
// process, so independent Repos values (or repeated operations on one)
// may run concurrently. The streams and iterators an operation returns
// are single-owner and not safe for shared use.
type Repos struct {
	// Path of the repository on disk.
	Path string
	// Executable overrides the svnlook binary to invoke.
	Executable string
	// Stderr selects what happens to the tool's stderr output.
	Stderr StderrPolicy
}

// NewRepos returns a Repos for the repository at path, using the default
// executable and suppressed stderr.
func NewRepos(path string) *Repos {
	return &Repos{Path: path}
}

func (r *Repos) executable() string {
	if r.Executable == "" {
		return DefaultExecutable
	}
	return r.Executable
}

// spawn launches one svnlook subcommand against this repository.
func (r *Repos) spawn(args ...string) (*Command, error) {
	return Spawn(r.executable(), args, r.Stderr)
}

// capture runs one svnlook subcommand to completion and returns its
// entire stdout. A non-zero exit is reported as an *ExitError.
func (r *Repos) capture(args ...string) ([]byte, error) {
	cmd, err := r.spawn(args...)
	if err != nil {
		return nil, err
	}
	defer cmd.Close()

	return io.ReadAll(cmd)
}

// Youngest returns the head revision number of the repository.
func (r *Repos) Youngest() (int, error) {
	out, err := r.capture("youngest", r.Path)
	if err != nil {
		return 0, err
	}

	text := strings.TrimSpace(string(out))
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("%w: youngest revision %q", ErrParse, text)
	}
	return n, nil
}

// Info returns the committer, timestamp and log message of one revision.
func (r *Repos) Info(revision int) (*Info, error) {
	out, err := r.capture("info", "-r", strconv.Itoa(revision), r.Path)
	if err != nil {
		return nil, err
	}
	return ParseInfo(revision, out)
}

// Changed spawns `svnlook changed --copy-info` for one revision and
// returns an iterator over its change records. Ownership of the spawned
// process passes to the iterator; callers must Close it even when
// abandoning the sequence early.
func (r *Repos) Changed(revision int) (*ChangedIter, error) {
	cmd, err := r.spawn("--copy-info", "changed", "-r", strconv.Itoa(revision), r.Path)
	if err != nil {
		return nil, err
	}
	return NewChangedIter(cmd), nil
}

// Diff returns a builder for one `svnlook diff` invocation. The output
// is a raw byte stream; no parsing is applied.
func (r *Repos) Diff(revision int) *DiffBuilder {
	return &DiffBuilder{repos: r, revision: revision}
}

// Cat streams the contents of path as of the given revision. The
// returned Command is a raw byte stream the caller must Close.
func (r *Repos) Cat(revision int, path string) (*Command, error) {
	return r.spawn("cat", "-r", strconv.Itoa(revision), r.Path, path)
}
