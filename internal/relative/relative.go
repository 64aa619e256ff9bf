// Package relative computes relative links between generated documents
// with string manipulation exclusively.
package relative

import (
	"fmt"
	"path"
	"strings"

	"go.abhg.dev/docbookgen/internal/sliceutil"
)

// Path returns a path to dst, relative to the directory src.
// Both paths must be relative or both paths must be absolute,
// and they must both be /-separated.
//
// An empty src is the output root.
func Path(src, dst string) string {
	if path.IsAbs(src) != path.IsAbs(dst) {
		panic(fmt.Sprintf("Path(%q, %q): both must be absolute, or both must be relative", src, dst))
	}
	src = strings.TrimSuffix(src, "/")

	var srcParts, dstParts []string
	if len(src) > 0 {
		srcParts = strings.Split(src, "/")
	}
	if len(dst) > 0 {
		dstParts = strings.Split(dst, "/")
	}

	srcParts, dstParts = sliceutil.RemoveCommonPrefix(srcParts, dstParts)

	parts := make([]string, 0, len(srcParts)+len(dstParts))
	for range srcParts {
		parts = append(parts, "..")
	}
	parts = append(parts, dstParts...)
	return strings.Join(parts, "/")
}
