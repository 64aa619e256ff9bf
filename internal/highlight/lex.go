package highlight

import (
	"path"
	"strings"

	chroma "github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// PlainText is the language of files that no lexer recognizes.
const PlainText = "text"

// _languages maps the names of Chroma lexers
// to the languages used in program listings
// where the two disagree.
var _languages = map[string]string{
	"c++":        "cpp",
	"qml":        "qml",
	"javascript": "js",
	"plaintext":  PlainText,
}

// Language returns the language of the source file with the given name,
// suitable for the language attribute of a program listing.
func Language(filename string) string {
	l := Lexer(filename)
	if l == nil {
		return PlainText
	}
	cfg := l.Config()

	name := strings.ToLower(cfg.Name)
	if lang, ok := _languages[name]; ok {
		return lang
	}
	if len(cfg.Aliases) > 0 {
		return cfg.Aliases[0]
	}
	return name
}

// Lexer returns the Chroma lexer for the file with the given name,
// or nil if there isn't one.
func Lexer(filename string) chroma.Lexer {
	base := path.Base(filename)
	if l := lexers.Match(base); l != nil {
		return l
	}
	// Chroma matches on the full name,
	// so project files like "foo.pro" are looked up by extension.
	if ext := path.Ext(base); ext != "" {
		return lexers.Get(strings.TrimPrefix(ext, "."))
	}
	return nil
}
