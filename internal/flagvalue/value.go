// Package flagvalue holds the flag.Value types
// behind docbookgen's repeatable and optional-value flags.
package flagvalue

import "flag"

// Getter constrains PT to be a pointer to T
// that implements flag.Getter.
// It lets List create values of T and set them through PT.
type Getter[T any] interface {
	*T
	flag.Getter
}
