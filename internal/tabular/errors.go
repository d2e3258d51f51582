// internal/tabular/errors.go
package tabular

import "fmt"

// UnsupportedFormatError is returned when a file's extension is not in the
// reader registry.
type UnsupportedFormatError struct {
	Ext string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("file type %q is not supported", e.Ext)
}

// MalformedDataError is returned when a recognized format fails to parse.
type MalformedDataError struct {
	FileName string
	Err      error
}

func (e *MalformedDataError) Error() string {
	return fmt.Sprintf("failed to parse %q: %v", e.FileName, e.Err)
}

func (e *MalformedDataError) Unwrap() error {
	return e.Err
}
