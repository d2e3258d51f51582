// internal/services/catalog_service.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/datashop/ingest-backend/internal/config"
	"github.com/datashop/ingest-backend/internal/models"
)

// CatalogService posts a populated product graph to the Data Shop REST APIs.
// Product, table and column records go to three separate endpoints as
// independent calls; there is no batching and no transaction, so a failure
// mid-sequence leaves earlier records in place.
type CatalogService struct {
	client *http.Client
	cfg    config.CatalogConfig
	logger *logrus.Logger
}

func NewCatalogService(cfg config.CatalogConfig, logger *logrus.Logger) *CatalogService {
	return &CatalogService{
		client: &http.Client{Timeout: 30 * time.Second},
		cfg:    cfg,
		logger: logger,
	}
}

// Publish pushes the product record, then every table record, then every
// column record. The first sink failure aborts the sequence.
func (s *CatalogService) Publish(ctx context.Context, product *models.Product) error {
	s.logger.WithField("product", product.Name).Info("pushing data product details to the data shop store")
	if err := s.post(ctx, s.cfg.ProductEndpoint, product.Record()); err != nil {
		return err
	}

	s.logger.WithField("product", product.Name).Info("pushing data product table details to the data shop store")
	for _, table := range product.Tables() {
		if err := s.post(ctx, s.cfg.TableEndpoint, table.Record()); err != nil {
			return err
		}
	}

	s.logger.WithField("product", product.Name).Info("pushing data product column details to the data shop store")
	for _, column := range product.Columns() {
		if err := s.post(ctx, s.cfg.ColumnEndpoint, column.Record()); err != nil {
			return err
		}
	}

	return nil
}

// PublishSummary posts the minimal product record to the backend store,
// authenticated with the configured admin password.
func (s *CatalogService) PublishSummary(ctx context.Context, product *models.Product) error {
	s.logger.WithField("product", product.Name).Info("pushing data product summary to the backend store")
	return s.post(ctx, s.cfg.BackendEndpoint, product.SummaryRecord(s.cfg.AdminPassword))
}

func (s *CatalogService) post(ctx context.Context, url string, record models.Record) error {
	body, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post to %s: %w", url, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &HTTPError{URL: url, Status: resp.StatusCode}
	}
	return nil
}
