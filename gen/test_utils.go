package gen

import (
	"bytes"
	"io"
)

// TestCtx is a noop closer, which wraps an io.Writer
// and only meant to be used for tests.
type TestCtx struct {
	io.Writer
}

// Open returns the underlying io.Writer.
func (ctx TestCtx) Open(filename string) (io.WriteCloser, error) { return ctx, nil }

// Close always returns nil.
func (ctx TestCtx) Close() error { return nil }

// MapCtx collects opened files into per-name buffers. It is only meant
// to be used for tests that produce more than one file.
type MapCtx map[string]*bytes.Buffer

// Open returns a buffer for the given filename.
func (ctx MapCtx) Open(filename string) (io.WriteCloser, error) {
	b, ok := ctx[filename]
	if !ok {
		b = new(bytes.Buffer)
		ctx[filename] = b
	}
	return nopCloser{b}, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
