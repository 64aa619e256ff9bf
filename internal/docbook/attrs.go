package docbook

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// attr is an attribute of a table element.
type attr struct {
	Key, Value string
}

var (
	errOddQuotes   = errors.New("unbalanced quotes")
	errBadAttrName = errors.New("invalid attribute name")
)

// parseRowAttrs parses the attributes of a table row.
// They're written as they are in HTML:
//
//	bgcolor="#ffffff" valign="top"
//
// Rows without attributes are aligned to the top.
// An unbalanced input returns the attributes parsed so far
// along with errOddQuotes.
// Attributes with invalid names are dropped and reported with errBadAttrName.
func parseRowAttrs(s string) ([]attr, error) {
	if s == "" {
		return []attr{{Key: "valign", Value: "top"}}, nil
	}

	var parts []string
	for _, p := range strings.Split(s, `"`) {
		if p != "" {
			parts = append(parts, p)
		}
	}

	var errs []error
	attrs := make([]attr, 0, len(parts)/2)
	for i := 0; i+1 < len(parts); i += 2 {
		key := strings.TrimSpace(parts[i])
		key = strings.TrimSuffix(key, "=")
		if !isAttrName(key) {
			errs = append(errs, fmt.Errorf("%w: %q", errBadAttrName, key))
			continue
		}
		attrs = append(attrs, attr{Key: key, Value: parts[i+1]})
	}

	if len(parts)%2 != 0 {
		errs = append(errs, errOddQuotes)
	}
	return attrs, errors.Join(errs...)
}

// parseCellAttrs parses the payloads of a table cell.
// Payloads are either "key=value" attributes
// or "colspan,rowspan" spans where spans of 1 are left out.
func parseCellAttrs(payloads []string) ([]attr, error) {
	var (
		attrs []attr
		errs  []error
	)
	for _, p := range payloads {
		if key, value, ok := strings.Cut(p, "="); ok {
			if !isAttrName(key) {
				errs = append(errs, fmt.Errorf("%w: %q", errBadAttrName, key))
				continue
			}
			attrs = append(attrs, attr{Key: key, Value: value})
			continue
		}

		cols, rows, ok := strings.Cut(p, ",")
		if !ok || strings.Contains(rows, ",") {
			errs = append(errs, fmt.Errorf("bad cell span %q: want colspan,rowspan", p))
			continue
		}
		if cols != "1" {
			attrs = append(attrs, attr{Key: "colspan", Value: cols})
		}
		if rows != "1" {
			attrs = append(attrs, attr{Key: "rowspan", Value: rows})
		}
	}
	return attrs, errors.Join(errs...)
}

// isAttrName reports whether s can be used as an XML attribute name.
// Namespace prefixes are not allowed.
func isAttrName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && (r == '-' || r == '.' || unicode.IsDigit(r)):
		default:
			return false
		}
	}
	return true
}

// tableStyle returns the width and style of a table
// from the payloads of its TableLeft atom.
func tableStyle(payloads []string) (width, style string) {
	style = "generic"
	for _, p := range payloads[:min(len(payloads), 2)] {
		switch {
		case p == "borderless":
			style = p
		case strings.Contains(p, "%"):
			width = p
		}
	}
	return width, style
}
