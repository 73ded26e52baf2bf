package svnlook

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Status says how a path was affected by a revision.
type Status int

const (
	Added Status = iota
	Copied
	Deleted
	Updated
	PropChange
)

func (s Status) String() string {
	switch s {
	case Added:
		return "Added"
	case Copied:
		return "Copied"
	case Deleted:
		return "Deleted"
	case Updated:
		return "Updated"
	case PropChange:
		return "PropChange"
	default:
		return "Unknown"
	}
}

// From names the source of a copied path.
type From struct {
	Path     string
	Revision int
}

// Change is one record from `svnlook changed`: a path and how it changed.
// From is populated only for Copied records, and is always fully resolved
// by the time a Change is handed out; no caller ever sees a Copied record
// with placeholder source data.
type Change struct {
	Path   string
	Status Status
	From   *From
}

// lossyString decodes bytes as UTF-8, substituting anything invalid.
// svnlook emits paths in whatever encoding the repository holds; this is
// best-effort only, per the tool's own behavior.
func lossyString(b []byte) string {
	return strings.ToValidUTF8(string(b), "�")
}

// chomp strips the trailing newline, failing if it is absent. A line
// without its delimiter means the producer stopped mid-record.
func chomp(line []byte) ([]byte, error) {
	if !bytes.HasSuffix(line, []byte{'\n'}) {
		return nil, fmt.Errorf("%w: missing newline on %q", ErrParse, line)
	}
	return line[:len(line)-1], nil
}

// statusFor maps the exact three-byte code at the front of a changed line.
func statusFor(code []byte) (Status, error) {
	switch string(code) {
	case "A  ":
		return Added, nil
	case "A +":
		return Copied, nil
	case "D  ":
		return Deleted, nil
	case "U  ", "UU ":
		return Updated, nil
	case "_U ":
		return PropChange, nil
	}
	return 0, fmt.Errorf("%w: unknown status code %q", ErrParse, code)
}

// parseChange parses one changed line: a three-byte status code, one
// separator byte, then the path.
func parseChange(line []byte) (*Change, error) {
	line, err := chomp(line)
	if err != nil {
		return nil, err
	}
	if len(line) < 4 {
		return nil, fmt.Errorf("%w: short changed line %q", ErrParse, line)
	}

	status, err := statusFor(line[:3])
	if err != nil {
		return nil, err
	}

	return &Change{Path: lossyString(line[4:]), Status: status}, nil
}

const fromPrefix = "    (from "

// parseFrom parses the copied-from continuation line:
//
//	    (from <path>:r<revision>)
//
// The colon is searched from the right because the path may itself
// contain one.
func parseFrom(line []byte) (*From, error) {
	line, err := chomp(line)
	if err != nil {
		return nil, err
	}
	if !bytes.HasPrefix(line, []byte(fromPrefix)) || !bytes.HasSuffix(line, []byte{')'}) {
		return nil, fmt.Errorf("%w: malformed copy-info line %q", ErrParse, line)
	}

	inner := line[len(fromPrefix) : len(line)-1]
	colon := bytes.LastIndexByte(inner, ':')
	if colon == -1 || len(inner)-colon < 3 || inner[colon+1] != 'r' {
		return nil, fmt.Errorf("%w: malformed copy-info revision in %q", ErrParse, line)
	}

	digits := inner[colon+2:]
	for _, b := range digits {
		if b < '0' || b > '9' {
			return nil, fmt.Errorf("%w: non-numeric copy-info revision %q", ErrParse, digits)
		}
	}
	revision, err := strconv.Atoi(string(digits))
	if err != nil {
		return nil, fmt.Errorf("%w: copy-info revision %q", ErrParse, digits)
	}

	return &From{Path: lossyString(inner[:colon]), Revision: revision}, nil
}

// ChangedIter incrementally parses `svnlook changed` output, one Change
// per logical record (one line, or two for Copied records). It owns the
// Command it was built from, if any.
type ChangedIter struct {
	cmd      *Command
	lines    *bufio.Reader
	pending  error
	finished bool
}

// NewChangedIter wraps a spawned changed command. Ownership of cmd passes
// to the iterator: Close reaps the process even when iteration stops
// early, so callers should `defer it.Close()`.
func NewChangedIter(cmd *Command) *ChangedIter {
	return &ChangedIter{cmd: cmd, lines: bufio.NewReader(cmd)}
}

// NewChangedReader parses change records from an already-captured byte
// stream, with no process attached.
func NewChangedReader(r io.Reader) *ChangedIter {
	return &ChangedIter{lines: bufio.NewReader(r)}
}

// Next returns the next change record, or io.EOF once the sequence has
// ended. A process that exited non-zero is reported exactly once, as an
// *ExitError after its final record, and then the sequence ends.
//
// A parse failure only poisons the one record it was found in: the
// iterator remains usable and the caller decides whether to continue
// with the next call or abandon the sequence.
func (it *ChangedIter) Next() (*Change, error) {
	if it.finished {
		return nil, io.EOF
	}
	if it.pending != nil {
		err := it.pending
		it.pending = nil
		it.finished = true
		return nil, err
	}

	line, err := it.lines.ReadBytes('\n')
	if len(line) == 0 {
		// True end-of-data. The Command has already reaped the process
		// and rewritten io.EOF as an *ExitError if the exit status was
		// a failure; either way the sequence is over.
		it.finished = true
		if err == nil || err == io.EOF {
			return nil, io.EOF
		}
		return nil, err
	}
	if err != nil && err != io.EOF {
		// The producer died mid-line. The partial record below reports
		// as a parse failure; the stream error itself must still
		// surface, once, before the sequence ends.
		it.pending = err
	}

	change, err := parseChange(line)
	if err != nil {
		return nil, err
	}

	if change.Status == Copied {
		cont, cerr := it.lines.ReadBytes('\n')
		if len(cont) == 0 && cerr != nil && cerr != io.EOF {
			it.finished = true
			return nil, cerr
		}
		if cerr != nil && cerr != io.EOF {
			it.pending = cerr
		}
		from, err := parseFrom(cont)
		if err != nil {
			return nil, err
		}
		change.From = from
	}

	return change, nil
}

// Close finishes the underlying command, discarding its exit status.
// Safe to call at any point and more than once.
func (it *ChangedIter) Close() error {
	it.finished = true
	if it.cmd == nil {
		return nil
	}
	return it.cmd.Close()
}
