// internal/tabular/infer.go
package tabular

import (
	"strconv"
	"time"
)

// datetimeLayouts are the formats tried during cell-based type inference.
var datetimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// inferColumns builds the column list for text-based formats (CSV, Excel)
// where cell values arrive as strings. Each column's type is the narrowest
// label every non-empty cell in that column satisfies; mixed or textual
// columns fall back to "object".
func inferColumns(header []string, rows [][]string) []Column {
	columns := make([]Column, len(header))
	for i, name := range header {
		var values []string
		for _, row := range rows {
			if i < len(row) && row[i] != "" {
				values = append(values, row[i])
			}
		}
		columns[i] = Column{Name: name, Type: inferType(values)}
	}
	return columns
}

func inferType(values []string) Type {
	if len(values) == 0 {
		return TypeObject
	}

	candidates := []struct {
		typ   Type
		match func(string) bool
	}{
		{TypeInteger, isInteger},
		{TypeFloat, isFloat},
		{TypeBoolean, isBoolean},
		{TypeDatetime, isDatetime},
	}

	for _, candidate := range candidates {
		all := true
		for _, v := range values {
			if !candidate.match(v) {
				all = false
				break
			}
		}
		if all {
			return candidate.typ
		}
	}
	return TypeObject
}

func isInteger(v string) bool {
	_, err := strconv.ParseInt(v, 10, 64)
	return err == nil
}

func isFloat(v string) bool {
	_, err := strconv.ParseFloat(v, 64)
	return err == nil
}

func isBoolean(v string) bool {
	switch v {
	case "true", "false", "True", "False", "TRUE", "FALSE":
		return true
	}
	return false
}

func isDatetime(v string) bool {
	for _, layout := range datetimeLayouts {
		if _, err := time.Parse(layout, v); err == nil {
			return true
		}
	}
	return false
}
