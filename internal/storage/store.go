// Package storage persists the characterization dataset. Two formats
// are supported: a delimited text table with a header row ("csv") and
// a binary columnar store holding the ordered column manifest and the
// column-major data matrix ("bin"). Anything else is rejected before
// a single job runs.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/arvid-k/charsweep/internal/dataset"
)

// ErrUnsupportedFormat indicates an output format no writer handles.
var ErrUnsupportedFormat = errors.New("storage: unsupported output format")

// SupportedFormat reports whether Write knows the format.
func SupportedFormat(format string) bool {
	switch format {
	case "csv", "bin":
		return true
	}
	return false
}

// Write persists the table to path in the given format.
func Write(path, format string, t *dataset.Table) error {
	var write func(io.Writer, *dataset.Table) error
	switch format {
	case "csv":
		write = WriteCSV
	case "bin":
		write = WriteBin
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f, t); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Read loads a table previously persisted by Write.
func Read(path, format string) (*dataset.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch format {
	case "csv":
		return ReadCSV(f)
	case "bin":
		return ReadBin(f)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}
