package server

import (
	"io"
	"locatecar/internal/car"
	"locatecar/internal/catalogsim"
	"locatecar/internal/clients"
	"locatecar/internal/metrics"
	"locatecar/internal/store"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) (http.Handler, *metrics.Metrics) {
	t.Helper()

	remote := httptest.NewServer(catalogsim.New(catalogsim.DefaultCars()...).Handler())
	t.Cleanup(remote.Close)

	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)
	svc, err := car.NewService(
		clients.NewCatalogClient(remote.URL, remote.Client(), clients.WithMetrics(m)),
		store.NewMemory(nil),
		nil,
	)
	require.NoError(t, err)

	return NewRouter(car.NewHandler(svc, nil), m, reg, zap.NewNop()), m
}

func TestHealthz(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestRequestIDPropagation(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Len(t, rec.Header().Get(requestIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))
}

func TestRequestMetricsUseRoutePattern(t *testing.T) {
	router, m := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/cars/1", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/api/v1/cars/{idCar}", "200")))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "locatecar_catalog_requests_total"))
}

func TestInstrumentWithoutMetrics(t *testing.T) {
	h := requestID(instrument(zap.NewNop(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/anything", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
}
