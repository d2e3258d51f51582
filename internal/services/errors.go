// internal/services/errors.go
package services

import "fmt"

// NameMismatchError reports a disagreement between the declared product name
// and the archive's root folder name. The comparison is case-sensitive and the
// pipeline never auto-corrects it.
type NameMismatchError struct {
	Declared string
	Derived  string
}

func (e *NameMismatchError) Error() string {
	return fmt.Sprintf("declared product name %q does not match the archive folder name %q",
		e.Declared, e.Derived)
}

// AlreadyRegisteredError reports that a product with the same name (compared
// lower-cased) already exists in the blob store.
type AlreadyRegisteredError struct {
	Name string
}

func (e *AlreadyRegisteredError) Error() string {
	return fmt.Sprintf("data product %q is already registered", e.Name)
}

// HTTPError reports a non-2xx response from one of the catalog endpoints.
type HTTPError struct {
	URL    string
	Status int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("post to %s failed with status %d", e.URL, e.Status)
}
