// Package atom defines the rich-text representation of documentation:
// a forward-linked stream of atoms, each holding a kind and its payload.
//
// Atoms are immutable once they belong to a [Text].
// Generators walk the stream with [Atom.Next]
// and never modify it.
package atom

import "strings"

// Atom is a single element of a documentation text.
type Atom struct {
	kind Kind
	strs []string
	next *Atom
}

// New builds a detached atom with the given payload.
func New(kind Kind, strs ...string) *Atom {
	return &Atom{kind: kind, strs: strs}
}

// Kind reports the kind of this atom.
func (a *Atom) Kind() Kind { return a.kind }

// Next returns the atom following this one,
// or nil if this is the last atom of its text.
func (a *Atom) Next() *Atom { return a.next }

// String returns the first payload string,
// or an empty string if the atom has no payload.
func (a *Atom) String() string {
	return a.StringAt(0)
}

// StringAt returns the payload string at index i,
// or an empty string if there is no such payload.
func (a *Atom) StringAt(i int) string {
	if i < 0 || i >= len(a.strs) {
		return ""
	}
	return a.strs[i]
}

// Strings returns a copy of all payload strings.
func (a *Atom) Strings() []string {
	return append([]string(nil), a.strs...)
}

// Count reports the number of payload strings.
func (a *Atom) Count() int { return len(a.strs) }

// Text is an ordered sequence of atoms.
//
// The zero value is an empty text.
type Text struct {
	first, last *Atom
}

// NewText builds a text from the given atoms.
// The atoms are copied so callers may reuse them.
func NewText(atoms ...*Atom) Text {
	var t Text
	for _, a := range atoms {
		t.Append(a.kind, a.strs...)
	}
	return t
}

// Append adds a new atom to the end of the text.
func (t *Text) Append(kind Kind, strs ...string) *Text {
	a := &Atom{kind: kind, strs: append([]string(nil), strs...)}
	if t.last == nil {
		t.first = a
	} else {
		t.last.next = a
	}
	t.last = a
	return t
}

// AppendString adds a String atom to the end of the text.
func (t *Text) AppendString(s string) *Text {
	return t.Append(String, s)
}

// AppendText adds copies of all atoms of other to the end of the text.
func (t *Text) AppendText(other Text) *Text {
	for a := other.first; a != nil; a = a.next {
		t.Append(a.kind, a.strs...)
	}
	return t
}

// Clone returns a deep copy of the text.
func (t Text) Clone() Text {
	var c Text
	c.AppendText(t)
	return c
}

// First returns the first atom, or nil for an empty text.
func (t Text) First() *Atom { return t.first }

// Last returns the last atom, or nil for an empty text.
func (t Text) Last() *Atom { return t.last }

// IsEmpty reports whether the text has no atoms.
func (t Text) IsEmpty() bool { return t.first == nil }

// Len reports the number of atoms in the text.
func (t Text) Len() int {
	var n int
	for a := t.first; a != nil; a = a.next {
		n++
	}
	return n
}

// PlainText concatenates the textual payloads of the text,
// dropping all markup.
func (t Text) PlainText() string {
	var sb strings.Builder
	for a := t.first; a != nil; a = a.next {
		switch a.kind {
		case String, AutoLink, C:
			sb.WriteString(a.String())
		}
	}
	return sb.String()
}

// SectionHeading returns the heading of the section
// started by the given SectionLeft atom.
// This is the text between the SectionHeadingLeft and SectionHeadingRight
// atoms that follow it.
func SectionHeading(sectionLeft *Atom) Text {
	var heading Text
	if sectionLeft == nil {
		return heading
	}

	a := sectionLeft.next
	for a != nil && a.kind != SectionHeadingLeft {
		if a.kind == SectionRight {
			return heading
		}
		a = a.next
	}
	if a == nil {
		return heading
	}

	for a = a.next; a != nil && a.kind != SectionHeadingRight; a = a.next {
		heading.Append(a.kind, a.strs...)
	}
	return heading
}
