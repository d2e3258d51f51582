// internal/archive/errors.go
package archive

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyArchive is returned when the uploaded zip contains no entries.
var ErrEmptyArchive = errors.New("the archive contains no data")

// StructureError reports a violation of the one-folder layout. Either Paths
// holds the entries with a wrong nesting depth, or Roots holds the conflicting
// top-level folder names when more than one product was packed.
type StructureError struct {
	Paths []string
	Roots []string
}

func (e *StructureError) Error() string {
	if len(e.Roots) > 0 {
		return fmt.Sprintf("expected a single top-level folder, found %d: %s",
			len(e.Roots), strings.Join(e.Roots, ", "))
	}
	return fmt.Sprintf("entries do not match the required layout (one folder containing only files): %s",
		strings.Join(e.Paths, ", "))
}

// DuplicateNameError reports repeated leaf names inside the product folder.
type DuplicateNameError struct {
	Names []string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("the archive contains duplicated item names: %s", strings.Join(e.Names, ", "))
}
