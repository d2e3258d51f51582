// internal/handlers/ingestion.go
package handlers

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/datashop/ingest-backend/internal/archive"
	"github.com/datashop/ingest-backend/internal/models"
	"github.com/datashop/ingest-backend/internal/services"
	"github.com/datashop/ingest-backend/internal/tabular"
	"github.com/datashop/ingest-backend/internal/utils"
)

// Ingestor runs the ingestion pipeline for one uploaded archive.
type Ingestor interface {
	Ingest(ctx context.Context, req *services.IngestRequest, archiveData []byte) (*models.Product, error)
}

// Publisher pushes a populated product to the catalog and backend sinks.
type Publisher interface {
	Publish(ctx context.Context, product *models.Product) error
	PublishSummary(ctx context.Context, product *models.Product) error
}

type IngestionHandler struct {
	ingestion      Ingestor
	catalog        Publisher
	store          services.BlobStore
	maxArchiveSize int64
}

func NewIngestionHandler(ingestion Ingestor, catalog Publisher, store services.BlobStore, maxArchiveSize int64) *IngestionHandler {
	return &IngestionHandler{
		ingestion:      ingestion,
		catalog:        catalog,
		store:          store,
		maxArchiveSize: maxArchiveSize,
	}
}

// POST /v1/data-products
//
// Multipart form: the metadata fields plus the data product zip in the
// "archive" file part. On success the whole serialized record sequence is
// returned so the caller can render what was published.
func (h *IngestionHandler) UploadProduct(c *gin.Context) {
	req := &services.IngestRequest{
		ProductName:     strings.TrimSpace(c.PostForm("product_name")),
		Domain:          strings.TrimSpace(c.PostForm("domain")),
		Description:     strings.TrimSpace(c.PostForm("description")),
		DataOwner:       strings.TrimSpace(c.PostForm("data_owner")),
		DescriptionLong: strings.TrimSpace(c.PostForm("description_long")),
		BusinessOwner:   strings.TrimSpace(c.PostForm("business_owner")),
		TechnicalLead:   strings.TrimSpace(c.PostForm("technical_lead")),
		Language:        c.PostFormArray("language"),
		Tags:            c.PostFormArray("tags"),
		RestrictionType: c.PostForm("restriction_type"),
		RequestMode:     c.PostForm("request_mode"),
	}

	if versionStr := c.PostForm("schema_version"); versionStr != "" {
		version, err := strconv.Atoi(versionStr)
		if err != nil {
			utils.BadRequestResponse(c, "schema_version must be an integer", nil)
			return
		}
		req.SchemaVersion = version
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	file, header, err := c.Request.FormFile("archive")
	if err != nil {
		utils.BadRequestResponse(c, "archive file is required", nil)
		return
	}
	defer file.Close()

	if h.maxArchiveSize > 0 && header.Size > h.maxArchiveSize {
		utils.BadRequestResponse(c, "archive exceeds the maximum allowed size", nil)
		return
	}
	if !strings.EqualFold(filepath.Ext(header.Filename), ".zip") {
		utils.BadRequestResponse(c, "the data product must be uploaded as a zip file", nil)
		return
	}

	archiveData, err := io.ReadAll(file)
	if err != nil {
		utils.InternalErrorResponse(c, "failed to read uploaded archive")
		return
	}

	product, err := h.ingestion.Ingest(c.Request.Context(), req, archiveData)
	if err != nil {
		respondIngestError(c, err)
		return
	}

	if err := h.catalog.Publish(c.Request.Context(), product); err != nil {
		utils.BadGatewayResponse(c, err.Error())
		return
	}
	if err := h.catalog.PublishSummary(c.Request.Context(), product); err != nil {
		utils.BadGatewayResponse(c, err.Error())
		return
	}

	utils.CreatedResponse(c, gin.H{
		"product_id": product.ID,
		"name":       product.Name,
		"records":    product.Serialize(),
	})
}

// GET /v1/data-products
func (h *IngestionHandler) ListProducts(c *gin.Context) {
	names, err := services.ProductNames(c.Request.Context(), h.store)
	if err != nil {
		utils.BadGatewayResponse(c, err.Error())
		return
	}
	if names == nil {
		names = []string{}
	}

	utils.SuccessResponse(c, gin.H{"products": names})
}

// respondIngestError maps pipeline failures onto HTTP status codes. User
// errors (bad archive, bad data, bad metadata) are 400s; a name collision is
// a conflict; blob store trouble surfaces as a gateway error.
func respondIngestError(c *gin.Context, err error) {
	var (
		structureErr   *archive.StructureError
		duplicateErr   *archive.DuplicateNameError
		formatErr      *tabular.UnsupportedFormatError
		malformedErr   *tabular.MalformedDataError
		missingErr     *models.MissingRequiredFieldError
		versionErr     *models.InvalidSchemaVersionError
		restrictionErr *models.InvalidRestrictionTypeError
		mismatchErr    *services.NameMismatchError
		registeredErr  *services.AlreadyRegisteredError
	)

	switch {
	case errors.As(err, &registeredErr):
		utils.ConflictResponse(c, err.Error())
	case errors.Is(err, archive.ErrEmptyArchive),
		errors.As(err, &structureErr),
		errors.As(err, &duplicateErr),
		errors.As(err, &formatErr),
		errors.As(err, &malformedErr),
		errors.As(err, &missingErr),
		errors.As(err, &versionErr),
		errors.As(err, &restrictionErr),
		errors.As(err, &mismatchErr):
		utils.BadRequestResponse(c, err.Error(), nil)
	default:
		utils.BadGatewayResponse(c, err.Error())
	}
}
