// Package dictionary writes ranked vocabularies and reads them back.
package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/teatak/vocab/vocab"
)

// Writer emits vocabulary entries as "word count" lines.
type Writer struct {
	w   *bufio.Writer
	buf []byte
}

// NewWriter returns a buffered writer on w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriterSize(w, 1024*1024)}
}

// Write emits entries in the given order and flushes. It returns the number of lines written.
func (w *Writer) Write(entries []vocab.Entry) (int, error) {
	for i, e := range entries {
		w.buf = append(w.buf[:0], e.Word...)
		w.buf = append(w.buf, ' ')
		w.buf = strconv.AppendInt(w.buf, e.Count, 10)
		w.buf = append(w.buf, '\n')
		if _, err := w.w.Write(w.buf); err != nil {
			return i, fmt.Errorf("%w: write vocabulary: %v", vocab.ErrIOUnavailable, err)
		}
	}
	if err := w.w.Flush(); err != nil {
		return len(entries), fmt.Errorf("%w: flush vocabulary: %v", vocab.ErrIOUnavailable, err)
	}
	return len(entries), nil
}
