// internal/models/product.go
package models

import (
	"strings"

	"github.com/google/uuid"
)

// defaultRequestAddress is the placeholder the catalog currently expects while
// the access-request flow is unfinished.
const defaultRequestAddress = "TBD. LATER"

// ProductMetadata carries the user-supplied fields a product is created from.
type ProductMetadata struct {
	Name            string
	SchemaVersion   int
	Domain          string
	Description     string
	DataOwner       string
	Language        []string
	DescriptionLong string
	BusinessOwner   string
	TechnicalLead   string
	Tags            []string
	RestrictionType RestrictionType
	RequestMode     string
	RequestAddress  string
}

// Information is the descriptive block of a product record.
type Information struct {
	Domain          string
	Description     string
	DataOwner       string
	Language        []string
	DescriptionLong string
	BusinessOwner   string
	TechnicalLead   string
}

// AccessDetails describes how consumers may request access to the product.
type AccessDetails struct {
	RestrictionType RestrictionType
	RequestMode     string
	RequestAddress  string
}

// Flags is the derived flag block. AccessRestriction always mirrors
// AccessDetails.RestrictionType; HasSampleData stays false until sample-data
// publication is implemented.
type Flags struct {
	HasSampleData     bool
	AccessRestriction RestrictionType
}

// Product is the root of one ingestion run's entity graph. It owns its tables
// and, through them, their columns. The graph is transient: it only lives
// until the run's records have been published.
type Product struct {
	ID            string
	Name          string
	SchemaVersion int
	Tags          []string
	Information   Information
	AccessDetails AccessDetails
	Flags         Flags

	tables     []*Table
	columns    []*Column
	registered bool
}

// NewProduct builds a product from user-supplied metadata. The surrounding
// form validates these fields too, but this constructor is the trust boundary
// and re-checks them.
func NewProduct(meta ProductMetadata) (*Product, error) {
	required := []struct {
		field string
		value string
	}{
		{"name", meta.Name},
		{"domain", meta.Domain},
		{"description", meta.Description},
		{"data_owner", meta.DataOwner},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return nil, &MissingRequiredFieldError{Field: r.field}
		}
	}
	if meta.SchemaVersion < 1 {
		return nil, &InvalidSchemaVersionError{Version: meta.SchemaVersion}
	}
	if !meta.RestrictionType.Valid() {
		return nil, &InvalidRestrictionTypeError{Value: meta.RestrictionType}
	}

	tags := meta.Tags
	if tags == nil {
		tags = []string{}
	}
	language := meta.Language
	if language == nil {
		language = []string{}
	}
	requestAddress := meta.RequestAddress
	if requestAddress == "" {
		requestAddress = defaultRequestAddress
	}

	return &Product{
		ID:            uuid.NewString(),
		Name:          meta.Name,
		SchemaVersion: meta.SchemaVersion,
		Tags:          tags,
		Information: Information{
			Domain:          meta.Domain,
			Description:     meta.Description,
			DataOwner:       meta.DataOwner,
			Language:        language,
			DescriptionLong: meta.DescriptionLong,
			BusinessOwner:   meta.BusinessOwner,
			TechnicalLead:   meta.TechnicalLead,
		},
		AccessDetails: AccessDetails{
			RestrictionType: meta.RestrictionType,
			RequestMode:     meta.RequestMode,
			RequestAddress:  requestAddress,
		},
		Flags: Flags{
			HasSampleData:     false,
			AccessRestriction: meta.RestrictionType,
		},
	}, nil
}

// RegisterTables attaches the derived tables as a single batch and flattens
// their columns into the product's column index. A product's table list can
// only be registered once.
func (p *Product) RegisterTables(tables []*Table) error {
	if p.registered {
		return ErrAlreadyRegistered
	}

	p.tables = append([]*Table(nil), tables...)
	for _, table := range p.tables {
		p.columns = append(p.columns, table.Columns...)
	}
	p.registered = true
	return nil
}

// Tables returns the registered tables in registration order.
func (p *Product) Tables() []*Table {
	return p.tables
}

// Columns returns all columns across all registered tables, grouped by table
// in registration order.
func (p *Product) Columns() []*Column {
	return p.columns
}

// TableByID resolves a table id within this run's index.
func (p *Product) TableByID(id string) (*Table, bool) {
	for _, table := range p.tables {
		if table.ID == id {
			return table, true
		}
	}
	return nil, false
}

// ColumnByID resolves a column id within this run's index.
func (p *Product) ColumnByID(id string) (*Column, bool) {
	for _, column := range p.columns {
		if column.ID == id {
			return column, true
		}
	}
	return nil, false
}

// Record returns the product's flat catalog record.
func (p *Product) Record() Record {
	return Record{
		"id":             p.ID,
		"name":           p.Name,
		"object_type":    string(ObjectTypeProduct),
		"schema_version": p.SchemaVersion,
		"tags":           p.Tags,
		"information": map[string]interface{}{
			"domain":           p.Information.Domain,
			"description":      p.Information.Description,
			"data_owner":       p.Information.DataOwner,
			"language":         p.Information.Language,
			"description_long": optional(p.Information.DescriptionLong),
			"business_owner":   optional(p.Information.BusinessOwner),
			"technical_lead":   optional(p.Information.TechnicalLead),
		},
		"flags": map[string]interface{}{
			"has_sample_data":    p.Flags.HasSampleData,
			"access_restriction": string(p.Flags.AccessRestriction),
		},
		"access_details": map[string]interface{}{
			"restriction_type": string(p.AccessDetails.RestrictionType),
			"request_mode":     p.AccessDetails.RequestMode,
			"request_address":  p.AccessDetails.RequestAddress,
		},
	}
}

// Serialize flattens the whole product graph into an ordered record sequence:
// the product first, then every table in registration order, then every column
// grouped by its owning table in field order. Downstream sinks rely on parents
// appearing before their children.
func (p *Product) Serialize() []Record {
	records := make([]Record, 0, 1+len(p.tables)+len(p.columns))
	records = append(records, p.Record())
	for _, table := range p.tables {
		records = append(records, table.Record())
	}
	for _, column := range p.columns {
		records = append(records, column.Record())
	}
	return records
}

// SummaryRecord is the minimal product description posted to the backend
// store, authenticated with the admin password.
func (p *Product) SummaryRecord(password string) Record {
	return Record{
		"name":             p.Name,
		"data_owner":       p.Information.DataOwner,
		"schema_version":   p.SchemaVersion,
		"restriction_type": string(p.AccessDetails.RestrictionType),
		"data_product_id":  p.ID,
		"password":         password,
	}
}

func optional(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
