package svnlook

import (
	"errors"
	"fmt"
)

// ErrParse reports output that did not match the format svnlook is
// expected to produce.
var ErrParse = errors.New("parse error")

// ExitError reports that svnlook ran to completion but returned a
// non-zero exit status. It is only detectable once the output stream
// has been exhausted.
type ExitError struct {
	Status int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("non-zero exit from command: %d", e.Status)
}
