// internal/tabular/csv.go
package tabular

import (
	"bytes"
	"encoding/csv"
	"errors"
	"strings"
)

// readCSV parses comma-delimited UTF-8 data with the header in the first row.
// No delimiter sniffing, no configuration overrides.
func readCSV(data []byte) (*Table, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = ','
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New("missing header row")
	}

	header := make([]string, len(records[0]))
	for i, name := range records[0] {
		header[i] = strings.TrimSpace(name)
	}

	rows := records[1:]
	for i, row := range rows {
		for j, cell := range row {
			rows[i][j] = strings.TrimSpace(cell)
		}
	}

	return &Table{
		Columns: inferColumns(header, rows),
		Rows:    len(rows),
	}, nil
}
