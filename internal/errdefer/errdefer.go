// Package errdefer joins errors from deferred cleanup
// into the error returned by the surrounding function.
//
// Generated documents are only complete once their files are closed,
// so a failed Close must not be lost.
package errdefer

import (
	"errors"
	"io"
)

// Close closes c and joins its error, if any, into *err.
// An error already stored in *err is kept.
//
//	f, err := os.Create(name)
//	if err != nil {
//		return err
//	}
//	defer errdefer.Close(&err, f)
func Close(err *error, c io.Closer) {
	if cerr := c.Close(); cerr != nil {
		*err = errors.Join(*err, cerr)
	}
}
