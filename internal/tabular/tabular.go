// internal/tabular/tabular.go

// Package tabular reads supported tabular file formats into a lightweight
// table description (ordered column names plus an inferred type per column).
// The format is picked from the file extension; the set of supported formats
// is closed and dispatched through a fixed registry.
package tabular

import (
	"strings"
)

// Type is the inferred primitive type label of a column. String-like columns
// are reported as "object" and normalized downstream.
type Type string

const (
	TypeObject   Type = "object"
	TypeInteger  Type = "integer"
	TypeFloat    Type = "float"
	TypeBoolean  Type = "boolean"
	TypeDatetime Type = "datetime"
)

type Column struct {
	Name string
	Type Type
}

// Table is the parsed view of one tabular file: its columns in source order
// and the number of data rows (header excluded).
type Table struct {
	Columns []Column
	Rows    int
}

type Format string

const (
	FormatCSV     Format = "csv"
	FormatXLS     Format = "xls"
	FormatXLSX    Format = "xlsx"
	FormatXLSM    Format = "xlsm"
	FormatParquet Format = "parquet"
)

type readerFunc func(data []byte) (*Table, error)

// readers is the closed dispatch table from format to parser. The three Excel
// variants share one strategy.
var readers = map[Format]readerFunc{
	FormatCSV:     readCSV,
	FormatXLS:     readXLS,
	FormatXLSX:    readXLSX,
	FormatXLSM:    readXLSX,
	FormatParquet: readParquet,
}

// Read parses the raw bytes of the named file. The extension is matched
// case-insensitively; an unknown extension yields *UnsupportedFormatError and
// a parse failure on a recognized extension yields *MalformedDataError.
func Read(fileName string, data []byte) (*Table, error) {
	ext := extension(fileName)

	reader, ok := readers[Format(ext)]
	if !ok {
		return nil, &UnsupportedFormatError{Ext: ext}
	}

	table, err := reader(data)
	if err != nil {
		return nil, &MalformedDataError{FileName: fileName, Err: err}
	}
	return table, nil
}

// extension returns the substring after the last dot, lower-cased.
func extension(fileName string) string {
	parts := strings.Split(strings.ToLower(fileName), ".")
	return parts[len(parts)-1]
}
