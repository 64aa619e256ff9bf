// Package pathtree provides a data structure
// that stores values organized under a tree-like hierarchy
// where values from higher levels cascade down to lower levels
// unless the lower levels define their own values.
//
// It's used to map example directories to the URL templates
// that their files are published under.
// If 'widgets' is given a template X,
// every example under widgets/ uses it.
//
//	t.Set("widgets", X)
//	t.Lookup("widgets/clock")         // == X
//	t.Lookup("widgets/clock/main.cpp") // == X
//
// A deeper directory may override it with its own template Y.
//
//	t.Set("widgets",          X)
//	t.Set("widgets/calendar", Y)
//	t.Lookup("widgets/clock")             // == X
//	t.Lookup("widgets/calendar/main.cpp") // == Y
//
// The empty path holds the default for all examples.
package pathtree

import "strings"

const _sep = '/'

// Root is the starting point of the path tree.
// The zero-value of Root is an empty tree.
type Root[T any] struct {
	root node[T]
}

// Set adds a value to the tree under the given path.
// All descendants of this path that do not have an explicit value
// will inherit this value.
// If this path already had a value specified, it will be overwritten.
func (r *Root[T]) Set(p string, v T) {
	r.root.Set(p, &v)
}

// Lookup retrieves the value for the given path,
// inheriting values specified for parents of this path
// if it didn't get its own value.
//
// Lookup reports true if a value was found--even if it was inherited.
func (r *Root[T]) Lookup(p string) (v T, ok bool) {
	if got := r.root.Get(p, nil); got != nil {
		v = *got
		ok = true
	}
	return v, ok
}

type node[T any] struct {
	value *T
	// TODO: children should be a sorted list that we binary search inside.
	children map[string]*node[T]
}

func (n *node[T]) ensurechild(name string) *node[T] {
	if n.children == nil {
		n.children = make(map[string]*node[T])
	}

	c, ok := n.children[name]
	if !ok {
		c = new(node[T])
		n.children[name] = c
	}
	return c
}

func (n *node[T]) Set(p string, v *T) {
	if len(p) == 0 {
		n.value = v
		return
	}

	head, tail := split(p)
	n.ensurechild(head).Set(tail, v)
}

func (n *node[T]) Get(p string, current *T) (final *T) {
	if n == nil {
		return current
	}

	if n.value != nil {
		current = n.value
	}

	head, tail := split(p)
	return n.children[head].Get(tail, current)
}

func split(p string) (head, tail string) {
	head, tail = p, ""
	if idx := strings.IndexByte(p, _sep); idx >= 0 {
		head, tail = p[:idx], p[idx+1:]
	}
	// If tail has any extra slashes, at the start, get rid of them.
	for len(tail) > 0 && tail[0] == _sep {
		tail = tail[1:]
	}
	return head, tail
}
