package sliceutil

// RemoveCommonPrefix drops the elements that a and b share at the start
// and returns what is left of each.
// A slice with nothing left is returned as nil.
//
// It's used on path segments to find
// where two output paths diverge.
func RemoveCommonPrefix[T comparable](a, b []T) (restA, restB []T) {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return nilIfEmpty(a[n:]), nilIfEmpty(b[n:])
}

func nilIfEmpty[T any](s []T) []T {
	if len(s) == 0 {
		return nil
	}
	return s
}
