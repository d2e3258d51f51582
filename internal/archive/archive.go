// internal/archive/archive.go

// Package archive checks the structural integrity of an uploaded data product
// zip file and extracts its members. The required shape is a single top-level
// folder holding only files: every entry path has exactly one separator, all
// entries share one root segment, and no leaf name repeats.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Member is one file inside the validated archive: its full path, its leaf
// name and its raw bytes.
type Member struct {
	Path string
	Name string
	Data []byte
}

// Archive is the validated view of an uploaded zip: the product name derived
// from the single root folder and the members in listing order.
type Archive struct {
	ProductName string
	Members     []Member
}

// Validate opens the zip data and enforces the required layout. Checks run in
// order: empty archive, per-entry separator count, root-folder uniqueness,
// duplicate leaf names. Any violation rejects the whole archive.
func Validate(data []byte) (*Archive, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	if len(zr.File) == 0 {
		return nil, ErrEmptyArchive
	}

	var badPaths []string
	for _, f := range zr.File {
		if strings.Count(f.Name, "/") != 1 {
			badPaths = append(badPaths, f.Name)
		}
	}
	if len(badPaths) > 0 {
		return nil, &StructureError{Paths: badPaths}
	}

	roots := make(map[string]bool)
	for _, f := range zr.File {
		roots[strings.SplitN(f.Name, "/", 2)[0]] = true
	}
	if len(roots) > 1 {
		names := make([]string, 0, len(roots))
		for name := range roots {
			names = append(names, name)
		}
		sort.Strings(names)
		return nil, &StructureError{Roots: names}
	}

	var productName string
	for name := range roots {
		productName = name
	}

	seen := make(map[string]bool)
	var duplicates []string
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		parts := strings.Split(f.Name, "/")
		leaf := parts[len(parts)-1]
		if seen[leaf] && !contains(duplicates, leaf) {
			duplicates = append(duplicates, leaf)
		}
		seen[leaf] = true
	}
	if len(duplicates) > 0 {
		sort.Strings(duplicates)
		return nil, &DuplicateNameError{Names: duplicates}
	}

	members := make([]Member, 0, len(zr.File))
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("read member %q: %w", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read member %q: %w", f.Name, err)
		}

		parts := strings.Split(f.Name, "/")
		members = append(members, Member{
			Path: f.Name,
			Name: parts[len(parts)-1],
			Data: content,
		})
	}

	return &Archive{
		ProductName: productName,
		Members:     members,
	}, nil
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
