package flagvalue

import "flag"

// String is a plain string flag value.
// Use it with [ListOf] to accept a flag more than once.
//
//	var dirs []flagvalue.String
//	flag.Var(flagvalue.ListOf(&dirs), "dir", ...)
type String string

var _ flag.Getter = (*String)(nil)

// Get returns the string.
func (s *String) Get() any { return string(*s) }

// String returns the string.
func (s *String) String() string { return string(*s) }

// Set receives a command line value.
func (s *String) Set(v string) error {
	*s = String(v)
	return nil
}
