// internal/services/ingestion_service.go
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/datashop/ingest-backend/internal/archive"
	"github.com/datashop/ingest-backend/internal/models"
	"github.com/datashop/ingest-backend/internal/tabular"
	"github.com/datashop/ingest-backend/internal/utils"
)

// RunState tracks where an ingestion run is in its lifecycle. Registered and
// Failed are terminal.
type RunState string

const (
	StateIdle          RunState = "idle"
	StateValidating    RunState = "validating"
	StateReading       RunState = "reading"
	StateDeriving      RunState = "deriving"
	StateStagingUpload RunState = "staging_upload"
	StateRegistered    RunState = "registered"
	StateFailed        RunState = "failed"
)

// IngestRequest carries the declared product metadata accompanying an archive
// upload.
type IngestRequest struct {
	ProductName     string   `json:"product_name" form:"product_name" validate:"required"`
	SchemaVersion   int      `json:"schema_version" form:"schema_version" validate:"required,min=1"`
	Domain          string   `json:"domain" form:"domain" validate:"required"`
	Description     string   `json:"description" form:"description" validate:"required"`
	DataOwner       string   `json:"data_owner" form:"data_owner" validate:"required"`
	Language        []string `json:"language,omitempty" form:"language"`
	DescriptionLong string   `json:"description_long,omitempty" form:"description_long"`
	BusinessOwner   string   `json:"business_owner,omitempty" form:"business_owner"`
	TechnicalLead   string   `json:"technical_lead,omitempty" form:"technical_lead"`
	Tags            []string `json:"tags,omitempty" form:"tags"`
	RestrictionType string   `json:"restriction_type" form:"restriction_type" validate:"required,oneof=private public"`
	RequestMode     string   `json:"request_mode,omitempty" form:"request_mode"`
}

// IngestionService runs the validate -> read -> derive -> upload -> register
// pipeline for one archive. It does not talk to the catalog; publication is
// the caller's responsibility so ingestion and publication stay decoupled.
//
// A run is strictly sequential and fail-fast: the first archive, parse or
// upload error aborts it with no retry and no compensation. Blobs uploaded
// before the failure stay in the store. Concurrent runs for the same product
// name are not coordinated; the duplicate-registration check is advisory only.
type IngestionService struct {
	store  BlobStore
	logger *logrus.Logger
}

func NewIngestionService(store BlobStore, logger *logrus.Logger) *IngestionService {
	return &IngestionService{
		store:  store,
		logger: logger,
	}
}

// Ingest validates the archive against the declared metadata, derives the
// product's tables and columns, uploads the raw member files to the blob
// store and returns the fully populated product.
func (s *IngestionService) Ingest(ctx context.Context, req *IngestRequest, archiveData []byte) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("invalid ingest request: %w", err)
	}

	run := newRun(s.logger, req.ProductName)

	run.transition(StateValidating)
	arc, err := archive.Validate(archiveData)
	if err != nil {
		return nil, run.fail(err)
	}
	if arc.ProductName != req.ProductName {
		return nil, run.fail(&NameMismatchError{
			Declared: req.ProductName,
			Derived:  arc.ProductName,
		})
	}

	registered, err := ProductNames(ctx, s.store)
	if err != nil {
		return nil, run.fail(err)
	}
	for _, name := range registered {
		if strings.EqualFold(name, arc.ProductName) {
			return nil, run.fail(&AlreadyRegisteredError{Name: arc.ProductName})
		}
	}

	product, err := models.NewProduct(models.ProductMetadata{
		Name:            req.ProductName,
		SchemaVersion:   req.SchemaVersion,
		Domain:          req.Domain,
		Description:     req.Description,
		DataOwner:       req.DataOwner,
		Language:        req.Language,
		DescriptionLong: req.DescriptionLong,
		BusinessOwner:   req.BusinessOwner,
		TechnicalLead:   req.TechnicalLead,
		Tags:            req.Tags,
		RestrictionType: models.RestrictionType(req.RestrictionType),
		RequestMode:     req.RequestMode,
	})
	if err != nil {
		return nil, run.fail(err)
	}

	run.transition(StateReading)
	tables := make([]*models.Table, 0, len(arc.Members))
	for _, member := range arc.Members {
		run.log.WithField("member", member.Name).Debug("reading data product item")

		run.transition(StateDeriving)
		src, err := tabular.Read(member.Name, member.Data)
		if err != nil {
			return nil, run.fail(err)
		}
		tables = append(tables, models.NewTable(member.Name, req.SchemaVersion, product.ID, src))
		run.transition(StateReading)
	}

	run.transition(StateStagingUpload)
	for _, member := range arc.Members {
		key := fmt.Sprintf("%s/%s", arc.ProductName, member.Name)
		if err := s.store.Put(ctx, key, member.Data); err != nil {
			return nil, run.fail(err)
		}
	}

	if err := product.RegisterTables(tables); err != nil {
		return nil, run.fail(err)
	}

	run.transition(StateRegistered)
	run.log.WithFields(logrus.Fields{
		"tables":  len(product.Tables()),
		"columns": len(product.Columns()),
	}).Info("data product ingested")
	return product, nil
}

// ingestionRun carries the state of one pipeline execution for logging.
type ingestionRun struct {
	state RunState
	log   *logrus.Entry
}

func newRun(logger *logrus.Logger, productName string) *ingestionRun {
	return &ingestionRun{
		state: StateIdle,
		log:   logger.WithField("product", productName),
	}
}

func (r *ingestionRun) transition(next RunState) {
	if r.state == next {
		return
	}
	r.log.WithFields(logrus.Fields{
		"from": r.state,
		"to":   next,
	}).Debug("pipeline state transition")
	r.state = next
}

func (r *ingestionRun) fail(err error) error {
	r.transition(StateFailed)
	r.log.WithError(err).Error("ingestion run aborted")
	return err
}
