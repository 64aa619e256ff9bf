package errdefer_test

import (
	"io"
	"os"

	"go.abhg.dev/docbookgen/internal/errdefer"
)

func readModel(name string) (_ []byte, err error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer errdefer.Close(&err, f)
	// NOTE: err must be a named return.

	return io.ReadAll(f)
}

func ExampleClose() {
	_, err := readModel("example_test.go")
	if err != nil {
		panic(err)
	}
}
