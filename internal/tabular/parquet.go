// internal/tabular/parquet.go
package tabular

import (
	"bytes"

	"github.com/parquet-go/parquet-go"
)

// readParquet reads the column names and types from the file's own embedded
// schema. Nothing is inferred from row data.
func readParquet(data []byte) (*Table, error) {
	f, err := parquet.OpenFile(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	fields := f.Schema().Fields()
	columns := make([]Column, len(fields))
	for i, field := range fields {
		columns[i] = Column{
			Name: field.Name(),
			Type: parquetType(field.Type()),
		}
	}

	return &Table{
		Columns: columns,
		Rows:    int(f.NumRows()),
	}, nil
}

func parquetType(t parquet.Type) Type {
	if lt := t.LogicalType(); lt != nil {
		switch {
		case lt.UTF8 != nil, lt.Enum != nil, lt.Json != nil, lt.UUID != nil:
			return TypeObject
		case lt.Date != nil, lt.Timestamp != nil:
			return TypeDatetime
		case lt.Integer != nil:
			return TypeInteger
		}
	}

	switch t.Kind() {
	case parquet.Boolean:
		return TypeBoolean
	case parquet.Int32, parquet.Int64:
		return TypeInteger
	case parquet.Float, parquet.Double:
		return TypeFloat
	case parquet.Int96:
		return TypeDatetime
	default:
		return TypeObject
	}
}
