package record

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vmihailenco/msgpack/v5"
)

// Reader iterates the frames of a recording
type Reader struct {
	Header Header

	closer io.Closer
	dec    *msgpack.Decoder
}

// Open reads the header of the recording at path
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open recording: %w", err)
	}
	r, err := NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.closer = f
	return r, nil
}

// NewReader decodes and checks the header from src
func NewReader(src io.Reader) (*Reader, error) {
	dec := msgpack.NewDecoder(bufio.NewReader(src))
	var h Header
	if err := dec.Decode(&h); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFormat, err)
	}
	if h.Format != FormatVersion {
		return nil, fmt.Errorf("%w: format %q", ErrBadFormat, h.Format)
	}
	return &Reader{Header: h, dec: dec}, nil
}

// Next returns the next frame, io.EOF after the last one
func (r *Reader) Next() (Frame, error) {
	var f Frame
	if err := r.dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return Frame{}, io.EOF
		}
		return Frame{}, fmt.Errorf("read frame: %w", err)
	}
	return f, nil
}

// Close releases the underlying file, if any
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}
