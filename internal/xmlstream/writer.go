// Package xmlstream writes XML documents one token at a time.
//
// Unlike [encoding/xml.Encoder], attributes may be added
// after an element has been started,
// as long as no content has been written to it yet.
// The writer tracks open elements
// so callers only need to say when to close one.
//
// Errors are sticky: the first error is recorded,
// all further writes are ignored,
// and the error is reported by [Writer.Err] and [Writer.Close].
package xmlstream

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Writer writes an XML document as a stream.
type Writer struct {
	enc    *xml.Encoder
	prefix string

	pending *xml.StartElement
	// pendingEmpty is set if the pending element
	// must be closed as soon as it is flushed.
	pendingEmpty bool

	stack []xml.Name
	err   error

	opened, closed int
}

// New builds a Writer that writes to w.
//
// Element names passed to the writer without a prefix
// are placed under the given default prefix, if any.
func New(w io.Writer, defaultPrefix string) *Writer {
	return &Writer{
		enc:    xml.NewEncoder(w),
		prefix: defaultPrefix,
	}
}

// Declaration writes the XML declaration.
// It must be the first thing written.
func (w *Writer) Declaration() {
	w.encode(xml.ProcInst{
		Target: "xml",
		Inst:   []byte(`version="1.0" encoding="UTF-8"`),
	})
}

func (w *Writer) name(local string) xml.Name {
	if w.prefix != "" && !strings.Contains(local, ":") {
		local = w.prefix + ":" + local
	}
	return xml.Name{Local: local}
}

// Start opens a new element.
// Attributes may be added to it with [Writer.Attr]
// until content is written.
func (w *Writer) Start(name string) {
	w.flush()
	w.pending = &xml.StartElement{Name: w.name(name)}
	w.pendingEmpty = false
}

// Empty writes an element without content.
// Attributes may be added to it with [Writer.Attr]
// until anything else is written.
func (w *Writer) Empty(name string) {
	w.Start(name)
	w.pendingEmpty = true
}

// Attr adds an attribute to the element started last.
// Attribute names are used verbatim:
// use prefixes like "xml:" or "xlink:" explicitly.
func (w *Writer) Attr(name, value string) {
	if w.err != nil {
		return
	}
	if w.pending == nil {
		w.err = fmt.Errorf("attribute %q written outside of a start element", name)
		return
	}
	w.pending.Attr = append(w.pending.Attr, xml.Attr{
		Name:  xml.Name{Local: name},
		Value: value,
	})
}

// End closes the element opened last.
func (w *Writer) End() {
	w.flush()
	if w.err != nil {
		return
	}
	if len(w.stack) == 0 {
		w.err = errors.New("end element without a matching start element")
		return
	}

	name := w.stack[len(w.stack)-1]
	w.stack = w.stack[:len(w.stack)-1]
	w.encode(xml.EndElement{Name: name})
	w.closed++
}

// Text writes character data, escaping it as needed.
func (w *Writer) Text(s string) {
	if s == "" {
		return
	}
	w.flush()
	w.encode(xml.CharData(s))
}

// TextElement writes an element that holds only the given text.
func (w *Writer) TextElement(name, text string) {
	w.Start(name)
	w.Text(text)
	w.End()
}

// Newline writes a line break between elements.
func (w *Writer) Newline() {
	w.flush()
	w.encode(xml.CharData("\n"))
}

// Depth reports the number of elements that are currently open.
func (w *Writer) Depth() int {
	n := len(w.stack)
	if w.pending != nil && !w.pendingEmpty {
		n++
	}
	return n
}

// Balance reports the number of elements opened and closed so far,
// including empty elements.
func (w *Writer) Balance() (opened, closed int) {
	return w.opened, w.closed
}

// Err returns the first error encountered by the writer.
func (w *Writer) Err() error { return w.err }

// Flush writes buffered output to the underlying writer.
func (w *Writer) Flush() error {
	w.flush()
	if w.err == nil {
		w.err = w.enc.Flush()
	}
	return w.err
}

// Close flushes the document and verifies that it is complete:
// every element that was opened has been closed.
func (w *Writer) Close() error {
	if err := w.Flush(); err != nil {
		return err
	}
	if len(w.stack) > 0 {
		names := make([]string, len(w.stack))
		for i, n := range w.stack {
			names[i] = n.Local
		}
		w.err = fmt.Errorf("unclosed elements: %v", strings.Join(names, ", "))
		return w.err
	}
	w.err = w.enc.Close()
	return w.err
}

// flush writes the pending start element, if any.
func (w *Writer) flush() {
	if w.pending == nil {
		return
	}
	start := *w.pending
	empty := w.pendingEmpty
	w.pending = nil
	w.pendingEmpty = false

	w.encode(start)
	w.opened++
	if empty {
		w.encode(start.End())
		w.closed++
	} else {
		w.stack = append(w.stack, start.Name)
	}
}

func (w *Writer) encode(tok xml.Token) {
	if w.err != nil {
		return
	}
	if err := w.enc.EncodeToken(tok); err != nil {
		w.err = err
	}
}
