package catalog

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helioretail/cartkit/pkg/config"
	pkgerrors "github.com/helioretail/cartkit/pkg/errors"
	"github.com/helioretail/cartkit/pkg/logger"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	client, err := NewClient(
		config.CatalogConfig{BaseURL: baseURL, Timeout: 2 * time.Second},
		logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
		nil,
	)
	require.NoError(t, err)
	return client
}

func TestListProducts(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/products", r.URL.Path)
		assert.Equal(t, "4", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[
			{"id":1,"title":"Backpack","price":109.95,"description":"d","category":"men's clothing","image":"https://img/1.jpg"},
			{"id":2,"title":"Shirt","price":22.3,"description":"d","category":"men's clothing","image":"https://img/2.jpg"}
		]`)
	}))
	defer srv.Close()

	products, err := newTestClient(t, srv.URL).ListProducts(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, 1, products[0].ID)
	assert.Equal(t, "Backpack", products[0].Title)
	assert.Equal(t, 109.95, products[0].Price)
	assert.Equal(t, "https://img/2.jpg", products[1].Image)
}

func TestListProductsNonSuccessStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	products, err := newTestClient(t, srv.URL).ListProducts(context.Background(), 4)
	require.Error(t, err)
	assert.Nil(t, products, "must not return partial data on failure")

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeDependency, typed.Code())
	assert.Equal(t, MsgFetchFailed, typed.Message())
}

func TestListProductsTransportError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	_, err := newTestClient(t, srv.URL).ListProducts(context.Background(), 4)
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeDependency, typed.Code())
	assert.Equal(t, MsgFetchFailed, typed.Message())
}

func TestListProductsUndecodableBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"not":"a list"`)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).ListProducts(context.Background(), 4)
	require.Error(t, err)
	require.NotNil(t, pkgerrors.As(err))
	assert.Equal(t, pkgerrors.CodeDependency, pkgerrors.As(err).Code())
}

func TestCreateProduct(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/products", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var input ProductInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&input))
		assert.Equal(t, 29.99, input.Price)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Product{
			ID:          21,
			Title:       input.Title,
			Price:       input.Price,
			Description: input.Description,
			Category:    input.Category,
			Image:       input.Image,
		})
	}))
	defer srv.Close()

	product, err := newTestClient(t, srv.URL).CreateProduct(context.Background(), ProductInput{
		Title:       "New Product",
		Price:       29.99,
		Description: "A wonderful new product",
		Category:    "electronics",
		Image:       "https://via.placeholder.com/300",
	})
	require.NoError(t, err)
	assert.Equal(t, 21, product.ID)
	assert.Equal(t, "New Product", product.Title)
}

func TestCreateProductFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).CreateProduct(context.Background(), ProductInput{Title: "x"})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeDependency, typed.Code())
	assert.Equal(t, MsgCreateFailed, typed.Message())
}

func TestNewClientRequiresLogger(t *testing.T) {
	t.Parallel()

	_, err := NewClient(config.CatalogConfig{BaseURL: "https://catalog"}, nil, nil)
	require.Error(t, err)
}
