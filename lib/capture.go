package svnlook

import (
	"bytes"
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
)

// Capture is a previously recorded `svnlook changed` output file, mapped
// into memory so revisions can be replayed without the tool or the
// repository present.
type Capture struct {
	Path string
	Data mmap.MMap
}

// checkCaptureSource rejects files that have been through CRLF newline
// translation. The record grammar is byte-exact; a capture rewritten by
// a windows console or transfer tool would misparse every line.
func checkCaptureSource(source []byte) error {
	if lf := bytes.IndexByte(source, '\n'); lf > 0 && source[lf-1] == '\r' {
		return fmt.Errorf("%w: CRLF line endings, capture was rewritten in transit?", ErrParse)
	}
	return nil
}

// OpenCapture maps a capture file into memory and returns it ready for
// replay. The caller must Close it to release the mapping.
func OpenCapture(path string) (*Capture, error) {
	file, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mapping %s: %w", path, err)
	}

	if err := checkCaptureSource(data); err != nil {
		_ = data.Unmap()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &Capture{Path: path, Data: data}, nil
}

// Changed returns an iterator over the change records in the capture.
func (c *Capture) Changed() *ChangedIter {
	return NewChangedReader(bytes.NewReader(c.Data))
}

// Close releases the mapping. Note: this invalidates any slices still
// referencing the data, including outstanding iterators.
func (c *Capture) Close() error {
	if c.Data == nil {
		return nil
	}
	err := c.Data.Unmap()
	c.Data = nil
	return err
}
