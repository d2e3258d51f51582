// internal/models/common.go
package models

// Record is the flat serialized form of one catalog entity. Values are
// primitives or lists of primitives; child entities are referenced by id,
// never nested.
type Record map[string]interface{}

// ObjectType discriminates the record kinds the catalog sinks receive.
type ObjectType string

const (
	ObjectTypeProduct ObjectType = "DATA_PRODUCT_DETAILS"
	ObjectTypeTable   ObjectType = "DATA_PRODUCT_SAMPLE_DATA_TABLE"
	ObjectTypeColumn  ObjectType = "DATA_PRODUCT_SAMPLE_DATA_COLUMN"
)

type RestrictionType string

const (
	RestrictionTypePrivate RestrictionType = "private"
	RestrictionTypePublic  RestrictionType = "public"
)

func (r RestrictionType) Valid() bool {
	return r == RestrictionTypePrivate || r == RestrictionTypePublic
}
