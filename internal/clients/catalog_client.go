// internal/clients/catalog_client.go
package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"locatecar/internal/car"
	"locatecar/internal/metrics"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

const carsPath = "/api/v1/cars"

// CatalogClient reads cars from the remote catalog service.
type CatalogClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	metrics    *metrics.Metrics
	tracer     trace.Tracer
}

// Option configures a CatalogClient.
type Option func(*CatalogClient)

// WithRateLimit caps outbound requests per second. Zero or less disables throttling.
func WithRateLimit(perSecond float64) Option {
	return func(c *CatalogClient) {
		if perSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), max(1, int(perSecond)))
		}
	}
}

// WithMetrics records request counts and latencies.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *CatalogClient) {
		c.metrics = m
	}
}

// NewCatalogClient builds a client for baseURL. A nil httpClient falls back to http.DefaultClient.
func NewCatalogClient(baseURL string, httpClient *http.Client, opts ...Option) *CatalogClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	c := &CatalogClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Inf, 0),
		tracer:     otel.Tracer("locatecar/clients"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchAll returns every car currently published by the catalog, in response order.
func (c *CatalogClient) FetchAll(ctx context.Context) ([]car.Car, error) {
	ctx, span := c.tracer.Start(ctx, "catalog_client.fetch_all")
	defer span.End()

	var cars []car.Car
	if err := c.get(ctx, "fetch_all", carsPath, &cars); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if cars == nil {
		cars = []car.Car{}
	}

	span.SetAttributes(attribute.Int("cars.count", len(cars)))
	return cars, nil
}

// FetchByID returns the car with the given id. A 404 from the catalog maps to
// car.ErrNotFound; a null body or a car with another id is rejected.
func (c *CatalogClient) FetchByID(ctx context.Context, id int64) (*car.Car, error) {
	ctx, span := c.tracer.Start(ctx, "catalog_client.fetch_by_id",
		trace.WithAttributes(attribute.Int64("car.id", id)),
	)
	defer span.End()

	path := carsPath + "/" + car.FormatID(id)
	var item *car.Car
	err := c.get(ctx, "fetch_by_id", path, &item)
	switch {
	case err != nil:
	case item == nil:
		err = fmt.Errorf("decode %s: null car", path)
	case item.ID != id:
		err = fmt.Errorf("%w: asked for car %d, catalog returned car %d", car.ErrRemoteUnavailable, id, item.ID)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	return item, nil
}

func (c *CatalogClient) get(ctx context.Context, operation, path string, out any) (err error) {
	start := time.Now()
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		c.metrics.ObserveCatalog(operation, outcome, time.Since(start).Seconds())
	}()

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", car.ErrRemoteUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", car.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s: %w", path, car.ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("%w: unexpected status code: %d", car.ErrRemoteUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	return nil
}
