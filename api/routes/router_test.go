package routes

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	cartsvc "github.com/helioretail/cartkit/internal/cart"
	"github.com/helioretail/cartkit/internal/catalog"
	"github.com/helioretail/cartkit/pkg/config"
	"github.com/helioretail/cartkit/pkg/logger"
	"github.com/helioretail/cartkit/pkg/money"
)

func newTestRouter(t *testing.T, gatherer prometheus.Gatherer) http.Handler {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			io.WriteString(w, `[{"id":1,"title":"Backpack","price":10,"image":"https://img/1.jpg"}]`)
		case http.MethodPost:
			io.WriteString(w, `{"id":2,"title":"New Product","price":29.99,"image":"https://via.placeholder.com/300"}`)
		}
	}))
	t.Cleanup(srv.Close)

	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})

	client, err := catalog.NewClient(
		config.CatalogConfig{BaseURL: srv.URL, Timeout: 2 * time.Second},
		logg,
		nil,
	)
	if err != nil {
		t.Fatalf("catalog client: %v", err)
	}
	loader, err := cartsvc.NewService(client, 4)
	if err != nil {
		t.Fatalf("cart service: %v", err)
	}
	store := cartsvc.NewStore(loader, cartsvc.StoreConfig{
		TaxRate: decimal.RequireFromString("0.2"),
	}, logg)

	formatter, err := money.New(config.FormatConfig{
		Currency:          "EUR",
		Locale:            "de-DE",
		MinFractionDigits: 2,
		MaxFractionDigits: 2,
	})
	if err != nil {
		t.Fatalf("formatter: %v", err)
	}

	cfg := &config.Config{App: config.AppConfig{Env: config.AppEnvDev}}
	return NewRouter(cfg, logg, store, formatter, gatherer)
}

func TestRouterHealthEndpoints(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, nil)

	for _, path := range []string{"/health/live", "/health/ready"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s returned %d", path, rec.Code)
		}
	}
}

func TestRouterMetricsEndpoint(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	router := newTestRouter(t, registry)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics returned %d", rec.Code)
	}

	withoutGatherer := newTestRouter(t, nil)
	rec = httptest.NewRecorder()
	withoutGatherer.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 without a gatherer, got %d", rec.Code)
	}
}

func TestRouterCartRoutes(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, nil)

	cases := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/api/v1/cart", "", http.StatusOK},
		{http.MethodPost, "/api/v1/cart/fetch", "", http.StatusOK},
		{http.MethodPost, "/api/v1/cart/items", "", http.StatusCreated},
		{http.MethodPut, "/api/v1/cart/items/1/quantity", `{"quantity":3}`, http.StatusOK},
		{http.MethodPatch, "/api/v1/cart/items/1/quantity", `{"quantity":5}`, http.StatusOK},
		{http.MethodPost, "/api/v1/cart/items/1/increment", "", http.StatusOK},
		{http.MethodPost, "/api/v1/cart/items/1/decrement", "", http.StatusOK},
		{http.MethodDelete, "/api/v1/cart/items/1", "", http.StatusOK},
		{http.MethodPut, "/api/v1/cart/shipping", `{"country":"DE"}`, http.StatusOK},
		{http.MethodPost, "/api/v1/cart/shipping/estimate", "", http.StatusOK},
		{http.MethodDelete, "/api/v1/cart", "", http.StatusOK},
		{http.MethodGet, "/api/v1/nope", "", http.StatusNotFound},
	}
	for _, tc := range cases {
		var body io.Reader
		if tc.body != "" {
			body = strings.NewReader(tc.body)
		}
		req := httptest.NewRequest(tc.method, tc.path, body)
		if tc.body != "" {
			req.Header.Set("Content-Type", "application/json")
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != tc.want {
			t.Fatalf("%s %s: got %d want %d, body: %s", tc.method, tc.path, rec.Code, tc.want, rec.Body.String())
		}
	}
}

func TestRouterSetsRequestID(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))
	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatal("expected a generated request id header")
	}

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("X-Request-Id", "fixed-id")
	router.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-Id"); got != "fixed-id" {
		t.Fatalf("expected echoed request id, got %q", got)
	}
}
