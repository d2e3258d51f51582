// internal/services/ingestion_service_test.go
package services

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/datashop/ingest-backend/internal/archive"
	"github.com/datashop/ingest-backend/internal/tabular"
)

type fakeBlobStore struct {
	objects map[string][]byte
	putErr  error
	listErr error
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: make(map[string][]byte)}
}

func (f *fakeBlobStore) Put(_ context.Context, key string, data []byte) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.objects[key] = data
	return nil
}

func (f *fakeBlobStore) List(_ context.Context, prefix string) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var keys []string
	for key := range f.objects {
		if len(prefix) == 0 || (len(key) >= len(prefix) && key[:len(prefix)] == prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func buildZip(t *testing.T, entries map[string][]byte, order []string) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, path := range order {
		f, err := w.Create(path)
		require.NoError(t, err)
		_, err = f.Write(entries[path])
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func buildItemsXLSX(t *testing.T) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetList()[0]
	rows := [][]interface{}{
		{"item", "price", "in_stock"},
		{"hammer", 9.99, "true"},
		{"nails", 2.49, "true"},
		{"saw", 24.99, "false"},
		{"tape", 4.99, "true"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func shopRequest() *IngestRequest {
	return &IngestRequest{
		ProductName:     "shop",
		SchemaVersion:   2,
		Domain:          "sales",
		Description:     "All shop order data",
		DataOwner:       "Jana Doe",
		RestrictionType: "private",
	}
}

var ordersCSV = []byte("order_id,item,amount,ordered_at\n1,hammer,2,2024-01-02\n2,nails,100,2024-01-03\n3,saw,1,2024-01-04\n")

func TestIngest(t *testing.T) {
	archiveData := buildZip(t, map[string][]byte{
		"shop/orders.csv": ordersCSV,
		"shop/items.xlsx": buildItemsXLSX(t),
	}, []string{"shop/orders.csv", "shop/items.xlsx"})

	store := newFakeBlobStore()
	service := NewIngestionService(store, testLogger())

	product, err := service.Ingest(context.Background(), shopRequest(), archiveData)
	require.NoError(t, err)

	assert.Equal(t, "shop", product.Name)
	require.Len(t, product.Tables(), 2)

	orders := product.Tables()[0]
	assert.Equal(t, "orders.csv", orders.Name)
	assert.Equal(t, 2, orders.SchemaVersion)
	assert.Len(t, orders.Columns, 4)

	items := product.Tables()[1]
	assert.Equal(t, "items.xlsx", items.Name)
	assert.Equal(t, 2, items.SchemaVersion)
	assert.Len(t, items.Columns, 3)

	for _, column := range product.Columns() {
		assert.Equal(t, 1, column.SchemaVersion)
	}

	// Raw member bytes are staged under "{productName}/{leafName}".
	assert.Equal(t, ordersCSV, store.objects["shop/orders.csv"])
	assert.Contains(t, store.objects, "shop/items.xlsx")
}

func TestIngestNameMismatch(t *testing.T) {
	archiveData := buildZip(t, map[string][]byte{
		"shop/orders.csv": ordersCSV,
	}, []string{"shop/orders.csv"})

	req := shopRequest()
	req.ProductName = "Shop" // case-sensitive, not auto-corrected

	service := NewIngestionService(newFakeBlobStore(), testLogger())
	_, err := service.Ingest(context.Background(), req, archiveData)

	var mismatchErr *NameMismatchError
	require.ErrorAs(t, err, &mismatchErr)
	assert.Equal(t, "Shop", mismatchErr.Declared)
	assert.Equal(t, "shop", mismatchErr.Derived)
}

func TestIngestAlreadyRegistered(t *testing.T) {
	archiveData := buildZip(t, map[string][]byte{
		"shop/orders.csv": ordersCSV,
	}, []string{"shop/orders.csv"})

	store := newFakeBlobStore()
	store.objects["SHOP/old.csv"] = []byte("a\n1\n") // compared lower-cased

	service := NewIngestionService(store, testLogger())
	_, err := service.Ingest(context.Background(), shopRequest(), archiveData)

	var registeredErr *AlreadyRegisteredError
	require.ErrorAs(t, err, &registeredErr)
	assert.Equal(t, "shop", registeredErr.Name)
}

func TestIngestMixedRootsAbortsBeforeDerivation(t *testing.T) {
	archiveData := buildZip(t, map[string][]byte{
		"shopA/orders.csv": ordersCSV,
		"shopB/items.csv":  []byte("a\n1\n"),
	}, []string{"shopA/orders.csv", "shopB/items.csv"})

	store := newFakeBlobStore()
	service := NewIngestionService(store, testLogger())

	_, err := service.Ingest(context.Background(), shopRequest(), archiveData)

	var structureErr *archive.StructureError
	require.ErrorAs(t, err, &structureErr)
	assert.Empty(t, store.objects)
}

func TestIngestUnsupportedMemberAbortsRun(t *testing.T) {
	archiveData := buildZip(t, map[string][]byte{
		"shop/orders.csv": ordersCSV,
		"shop/readme.txt": []byte("hello"),
	}, []string{"shop/orders.csv", "shop/readme.txt"})

	store := newFakeBlobStore()
	service := NewIngestionService(store, testLogger())

	_, err := service.Ingest(context.Background(), shopRequest(), archiveData)

	var formatErr *tabular.UnsupportedFormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "txt", formatErr.Ext)
	// Fail-fast: nothing was uploaded.
	assert.Empty(t, store.objects)
}

func TestIngestUploadFailureAbortsRun(t *testing.T) {
	archiveData := buildZip(t, map[string][]byte{
		"shop/orders.csv": ordersCSV,
	}, []string{"shop/orders.csv"})

	store := newFakeBlobStore()
	store.putErr = errors.New("bucket unavailable")

	service := NewIngestionService(store, testLogger())
	_, err := service.Ingest(context.Background(), shopRequest(), archiveData)

	assert.ErrorContains(t, err, "bucket unavailable")
}

func TestIngestInvalidRequest(t *testing.T) {
	req := shopRequest()
	req.Domain = ""

	service := NewIngestionService(newFakeBlobStore(), testLogger())
	_, err := service.Ingest(context.Background(), req, nil)

	assert.ErrorContains(t, err, "invalid ingest request")
}

func TestProductNames(t *testing.T) {
	store := newFakeBlobStore()
	store.objects["shop/orders.csv"] = nil
	store.objects["shop/items.csv"] = nil
	store.objects["warehouse/stock.csv"] = nil

	names, err := ProductNames(context.Background(), store)
	require.NoError(t, err)
	assert.Equal(t, []string{"shop", "warehouse"}, names)
}
