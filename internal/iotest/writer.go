// Package iotest provides io helpers for tests.
package iotest

import (
	"bytes"
	"io"
	"sync"
	"testing"
)

// Writer builds an io.Writer that writes to the given testing.TB.
// Each line written to it is logged separately.
// A trailing partial line is logged when the test finishes.
func Writer(t testing.TB) io.Writer {
	w := &writer{t: t}
	t.Cleanup(w.flush)
	return w
}

type writer struct {
	t testing.TB

	mu  sync.Mutex
	buf bytes.Buffer
}

func (w *writer) Write(b []byte) (int, error) {
	w.t.Helper()

	w.mu.Lock()
	defer w.mu.Unlock()

	n, _ := w.buf.Write(b)
	for {
		idx := bytes.IndexByte(w.buf.Bytes(), '\n')
		if idx < 0 {
			break
		}
		w.t.Logf("%s", w.buf.Next(idx+1)[:idx])
	}
	return n, nil
}

func (w *writer) flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.buf.Len() > 0 {
		w.t.Logf("%s", w.buf.Bytes())
		w.buf.Reset()
	}
}
