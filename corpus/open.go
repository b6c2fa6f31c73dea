package corpus

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/teatak/vocab/vocab"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// Stdin is the path that selects standard input.
const Stdin = "-"

type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (r *readCloser) Close() error {
	var errs []error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Open opens a corpus file, or standard input for "" and "-".
// gzip and zstd streams are detected by their magic bytes and decoded.
func Open(path string) (io.ReadCloser, error) {
	if path == "" || path == Stdin {
		return Decode(io.NopCloser(os.Stdin))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open corpus: %v", vocab.ErrIOUnavailable, err)
	}
	rc, err := Decode(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return rc, nil
}

// Decode wraps src with a decompressor when it starts with a gzip or zstd header.
// Closing the result closes src.
func Decode(src io.ReadCloser) (io.ReadCloser, error) {
	br := bufio.NewReaderSize(src, 64*1024)
	head, err := br.Peek(len(zstdMagic))
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("%w: read corpus header: %v", vocab.ErrIOUnavailable, err)
	}

	switch {
	case bytes.HasPrefix(head, gzipMagic):
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("%w: open gzip corpus: %v", vocab.ErrIOUnavailable, err)
		}
		return &readCloser{Reader: zr, closers: []io.Closer{src, zr}}, nil
	case bytes.HasPrefix(head, zstdMagic):
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("%w: open zstd corpus: %v", vocab.ErrIOUnavailable, err)
		}
		return &readCloser{Reader: zr, closers: []io.Closer{src, zr.IOReadCloser()}}, nil
	default:
		return &readCloser{Reader: br, closers: []io.Closer{src}}, nil
	}
}
