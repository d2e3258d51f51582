// internal/services/catalog_service_test.go
package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datashop/ingest-backend/internal/config"
	"github.com/datashop/ingest-backend/internal/models"
	"github.com/datashop/ingest-backend/internal/tabular"
)

type recordedPost struct {
	path   string
	record models.Record
}

type catalogRecorder struct {
	mtx      sync.Mutex
	posts    []recordedPost
	failPath string
}

func (r *catalogRecorder) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		body, _ := io.ReadAll(req.Body)

		var record models.Record
		json.Unmarshal(body, &record)

		r.mtx.Lock()
		fail := req.URL.Path == r.failPath
		if !fail {
			r.posts = append(r.posts, recordedPost{path: req.URL.Path, record: record})
		}
		r.mtx.Unlock()

		if fail {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusCreated)
	})
}

func testProduct(t *testing.T) *models.Product {
	t.Helper()

	product, err := models.NewProduct(models.ProductMetadata{
		Name:            "shop",
		SchemaVersion:   2,
		Domain:          "sales",
		Description:     "All shop order data",
		DataOwner:       "Jana Doe",
		RestrictionType: models.RestrictionTypePrivate,
	})
	require.NoError(t, err)

	src := &tabular.Table{Columns: []tabular.Column{
		{Name: "order_id", Type: tabular.TypeInteger},
		{Name: "item", Type: tabular.TypeObject},
	}}
	tables := []*models.Table{
		models.NewTable("orders.csv", 2, product.ID, src),
		models.NewTable("items.csv", 2, product.ID, src),
	}
	require.NoError(t, product.RegisterTables(tables))
	return product
}

func newTestCatalog(t *testing.T, recorder *catalogRecorder) (*CatalogService, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(recorder.handler())
	t.Cleanup(server.Close)

	cfg := config.CatalogConfig{
		ProductEndpoint: server.URL + "/products",
		TableEndpoint:   server.URL + "/tables",
		ColumnEndpoint:  server.URL + "/columns",
		BackendEndpoint: server.URL + "/backend",
		AdminPassword:   "secret",
	}
	return NewCatalogService(cfg, testLogger()), server
}

func TestPublish(t *testing.T) {
	recorder := &catalogRecorder{}
	catalog, _ := newTestCatalog(t, recorder)
	product := testProduct(t)

	err := catalog.Publish(context.Background(), product)
	require.NoError(t, err)

	require.Len(t, recorder.posts, 7) // 1 product + 2 tables + 4 columns

	assert.Equal(t, "/products", recorder.posts[0].path)
	assert.Equal(t, string(models.ObjectTypeProduct), recorder.posts[0].record["object_type"])
	assert.Equal(t, product.ID, recorder.posts[0].record["id"])

	for _, post := range recorder.posts[1:3] {
		assert.Equal(t, "/tables", post.path)
		assert.Equal(t, string(models.ObjectTypeTable), post.record["object_type"])
	}
	for _, post := range recorder.posts[3:] {
		assert.Equal(t, "/columns", post.path)
		assert.Equal(t, string(models.ObjectTypeColumn), post.record["object_type"])
	}
}

func TestPublishStopsOnSinkFailure(t *testing.T) {
	recorder := &catalogRecorder{failPath: "/tables"}
	catalog, server := newTestCatalog(t, recorder)
	product := testProduct(t)

	err := catalog.Publish(context.Background(), product)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.Equal(t, server.URL+"/tables", httpErr.URL)

	// The product record went through before the failure; no columns followed.
	require.Len(t, recorder.posts, 1)
	assert.Equal(t, "/products", recorder.posts[0].path)
}

func TestPublishSummary(t *testing.T) {
	recorder := &catalogRecorder{}
	catalog, _ := newTestCatalog(t, recorder)
	product := testProduct(t)

	err := catalog.PublishSummary(context.Background(), product)
	require.NoError(t, err)

	require.Len(t, recorder.posts, 1)
	assert.Equal(t, "/backend", recorder.posts[0].path)

	record := recorder.posts[0].record
	assert.Equal(t, "shop", record["name"])
	assert.Equal(t, "Jana Doe", record["data_owner"])
	assert.Equal(t, "private", record["restriction_type"])
	assert.Equal(t, product.ID, record["data_product_id"])
	assert.Equal(t, "secret", record["password"])
}
