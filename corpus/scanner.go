// Package corpus reads whitespace-delimited tokens from a corpus stream.
package corpus

import (
	"bufio"
	"fmt"
	"io"

	"github.com/teatak/vocab/vocab"
)

// DefaultMaxTokenLength is the longest token, in bytes, the scanner returns.
const DefaultMaxTokenLength = 1000

const bufferSize = 1024 * 1024

// Scanner splits a byte stream into tokens separated by ASCII whitespace.
//
// A run of non-whitespace bytes longer than the token limit is returned as
// consecutive tokens of at most that many bytes.
type Scanner struct {
	s *bufio.Scanner
}

// NewScanner returns a scanner reading from r. A non-positive maxLen selects DefaultMaxTokenLength.
func NewScanner(r io.Reader, maxLen int) *Scanner {
	if maxLen <= 0 {
		maxLen = DefaultMaxTokenLength
	}
	size := bufferSize
	if maxLen+1 > size {
		size = maxLen + 1
	}
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, size), size)
	s.Split(splitTokens(maxLen))
	return &Scanner{s: s}
}

// Scan advances to the next token.
func (s *Scanner) Scan() bool {
	return s.s.Scan()
}

// Bytes returns the current token. The slice is only valid until the next call to Scan.
func (s *Scanner) Bytes() []byte {
	return s.s.Bytes()
}

// Text returns a copy of the current token.
func (s *Scanner) Text() string {
	return s.s.Text()
}

// Err returns the first read error.
func (s *Scanner) Err() error {
	if err := s.s.Err(); err != nil {
		return fmt.Errorf("%w: read corpus: %v", vocab.ErrIOUnavailable, err)
	}
	return nil
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func splitTokens(maxLen int) bufio.SplitFunc {
	return func(data []byte, atEOF bool) (int, []byte, error) {
		start := 0
		for start < len(data) && isSpace(data[start]) {
			start++
		}
		for i := start; i < len(data); i++ {
			if i-start == maxLen {
				return i, data[start:i], nil
			}
			if isSpace(data[i]) {
				return i + 1, data[start:i], nil
			}
		}
		if len(data)-start >= maxLen {
			return start + maxLen, data[start : start+maxLen], nil
		}
		if atEOF && len(data) > start {
			return len(data), data[start:], nil
		}
		// skip leading whitespace and ask for more
		return start, nil, nil
	}
}
