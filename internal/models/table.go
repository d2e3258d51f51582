// internal/models/table.go
package models

import (
	"github.com/google/uuid"

	"github.com/datashop/ingest-backend/internal/tabular"
)

// Table is the catalog view of one archive member. It holds its parent
// product by id rather than by pointer and owns the columns derived from the
// member's parsed data. Tables are immutable once constructed.
type Table struct {
	ID            string
	Name          string
	SchemaVersion int
	ProductID     string
	Columns       []*Column
}

// NewTable derives a table and its columns from a parsed tabular file. The
// table name is the member's file name including its extension, and the schema
// version is copied from the parent product.
func NewTable(fileName string, schemaVersion int, productID string, src *tabular.Table) *Table {
	table := &Table{
		ID:            uuid.NewString(),
		Name:          fileName,
		SchemaVersion: schemaVersion,
		ProductID:     productID,
	}

	table.Columns = make([]*Column, len(src.Columns))
	for i, column := range src.Columns {
		table.Columns[i] = newColumn(column.Name, column.Type, table.ID)
	}
	return table
}

// ColumnIDs returns the ids of the table's columns in field order.
func (t *Table) ColumnIDs() []string {
	ids := make([]string, len(t.Columns))
	for i, column := range t.Columns {
		ids[i] = column.ID
	}
	return ids
}

// Record returns the table's flat catalog record. Columns are referenced by
// id, not inlined.
func (t *Table) Record() Record {
	return Record{
		"id":              t.ID,
		"name":            t.Name,
		"schema_version":  t.SchemaVersion,
		"data_product_id": t.ProductID,
		"object_type":     string(ObjectTypeTable),
		"columns":         t.ColumnIDs(),
	}
}
