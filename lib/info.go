package svnlook

import (
	"bytes"
	"fmt"
	"strconv"
	"time"
)

// Info holds the parsed output of `svnlook info` for one revision. The
// revision number is supplied by the caller; svnlook does not repeat it.
type Info struct {
	Revision  int
	Committer string
	Date      time.Time
	Message   string
}

// infoDateLayout matches the fixed 25-byte window at the front of the
// date line, e.g. "2020-01-02 03:04:05 +0000". svnlook appends a
// human-readable rendering after it which we ignore.
const infoDateLayout = "2006-01-02 15:04:05 -0700"

// ParseInfo parses the complete, already-captured output of one
// `svnlook info` invocation.
//
// The output has four sections: committer, date, message byte count, and
// the message itself. Only the first three newlines act as separators;
// the log message is framed by the declared byte count precisely because
// it may contain newlines of its own. Bytes beyond the count are ignored.
func ParseInfo(revision int, output []byte) (*Info, error) {
	sections := bytes.SplitN(output, []byte{'\n'}, 4)
	if len(sections) < 4 {
		return nil, fmt.Errorf("%w: info output has %d of 4 sections", ErrParse, len(sections))
	}

	committer := lossyString(sections[0])

	if len(sections[1]) <= 25 {
		return nil, fmt.Errorf("%w: short info date %q", ErrParse, sections[1])
	}
	date, err := time.Parse(infoDateLayout, string(sections[1][:25]))
	if err != nil {
		return nil, fmt.Errorf("%w: info date %q", ErrParse, sections[1][:25])
	}

	size, err := strconv.Atoi(string(sections[2]))
	if err != nil || size < 0 {
		return nil, fmt.Errorf("%w: info message length %q", ErrParse, sections[2])
	}

	if len(sections[3]) <= size {
		return nil, fmt.Errorf("%w: info message shorter than declared %d bytes", ErrParse, size)
	}

	return &Info{
		Revision:  revision,
		Committer: committer,
		Date:      date,
		Message:   lossyString(sections[3][:size]),
	}, nil
}
