package flagvalue

import (
	"fmt"
	"strings"

	"braces.dev/errtrace"
)

// List collects every occurrence of a repeatable flag,
// in command line order.
type List[T any, PT Getter[T]] []T

// ListOf adapts a slice so that the flag it's registered under
// may be passed more than once.
//
//	var dirs []flagvalue.String
//	flag.Var(flagvalue.ListOf(&dirs), "image-dir", ...)
func ListOf[T any, PT Getter[T]](vs *[]T) *List[T, PT] {
	return (*List[T, PT])(vs)
}

// Get returns the collected values as a []T.
func (lv *List[T, PT]) Get() any { return []T(*lv) }

// String lists the collected values separated by commas.
func (lv *List[T, PT]) String() string {
	parts := make([]string, len(*lv))
	for i, v := range *lv {
		parts[i] = fmt.Sprint(PT(&v))
	}
	return strings.Join(parts, ", ")
}

// Set parses one occurrence of the flag and appends it.
// The value is named in the error if it can't be parsed.
func (lv *List[T, PT]) Set(s string) error {
	var v T
	if err := PT(&v).Set(s); err != nil {
		return errtrace.Wrap(fmt.Errorf("%q: %w", s, err))
	}
	*lv = append(*lv, v)
	return nil
}
