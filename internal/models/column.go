// internal/models/column.go
package models

import (
	"github.com/google/uuid"

	"github.com/datashop/ingest-backend/internal/tabular"
)

// columnSchemaVersion is fixed at 1 for every column, independent of the
// parent table's schema version. Intentional; do not inherit the parent
// version without product-owner confirmation.
const columnSchemaVersion = 1

// Column is the catalog view of one field of a table. The parent table is
// referenced by id. Apart from the deferred sample-data registration a column
// never changes after construction.
type Column struct {
	ID            string
	Name          string
	DataType      string
	SchemaVersion int
	TableID       string

	sampleData []string
}

func newColumn(name string, dataType tabular.Type, tableID string) *Column {
	return &Column{
		ID:            uuid.NewString(),
		Name:          name,
		DataType:      normalizeType(dataType),
		SchemaVersion: columnSchemaVersion,
		TableID:       tableID,
	}
}

// normalizeType maps the parser's string-like "object" label to "string";
// every other label passes through unchanged.
func normalizeType(t tabular.Type) string {
	if t == tabular.TypeObject {
		return "string"
	}
	return string(t)
}

// RegisterSampleData stores a sample-value sequence for later publication.
// Sample data is not part of the catalog record yet.
func (c *Column) RegisterSampleData(data []string) {
	c.sampleData = data
}

// SampleData returns the registered sample values, or nil when none are set.
func (c *Column) SampleData() []string {
	return c.sampleData
}

// Record returns the column's flat catalog record.
func (c *Column) Record() Record {
	return Record{
		"column_name":    c.Name,
		"id":             c.ID,
		"data_type":      c.DataType,
		"schema_version": c.SchemaVersion,
		"table_id":       c.TableID,
		"object_type":    string(ObjectTypeColumn),
	}
}
