package flagvalue

import (
	"flag"
	"io"
	"os"

	"braces.dev/errtrace"
)

// FileSwitch is an optional-value flag for log output
// like -debug and -debug=debug.log.
//
// Without a value, output goes to a fallback writer.
// With a value, it goes to the named file.
type FileSwitch string

var _ flag.Getter = (*FileSwitch)(nil)

// IsBoolFlag allows the flag to be passed without a value.
func (*FileSwitch) IsBoolFlag() bool { return true }

// Get returns the file name, "-" for the fallback,
// or an empty string if the flag wasn't passed.
func (fs *FileSwitch) Get() any { return string(*fs) }

func (fs *FileSwitch) String() string { return string(*fs) }

// Set records the value of the flag.
// The flag package passes "true" when no value is given.
func (fs *FileSwitch) Set(v string) error {
	if v == "true" {
		v = "-"
	}
	*fs = FileSwitch(v)
	return nil
}

// Bool reports whether the flag was passed.
func (fs *FileSwitch) Bool() bool { return *fs != "" }

// Create opens the output selected by the flag.
// It discards output if the flag wasn't passed,
// writes to fallback if it was passed without a value,
// and creates the named file otherwise.
//
// The returned function closes the output.
func (fs *FileSwitch) Create(fallback io.Writer) (w io.Writer, done func() error, err error) {
	switch *fs {
	case "":
		return io.Discard, nopClose, nil
	case "-":
		return fallback, nopClose, nil
	}

	f, err := os.Create(string(*fs))
	if err != nil {
		return nil, nil, errtrace.Wrap(err)
	}
	return f, f.Close, nil
}

func nopClose() error { return nil }
