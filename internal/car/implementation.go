// internal/car/implementation.go
package car

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// service implements the Service interface.
type service struct {
	catalog Catalog
	store   Store
	logger  *zap.Logger
	tracer  trace.Tracer
	synced  metric.Int64Counter
}

// NewService creates a new car sync service instance.
func NewService(catalog Catalog, store Store, logger *zap.Logger) (Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	synced, err := otel.Meter("locatecar/car").Int64Counter(
		"locatecar.cars.synced",
		metric.WithDescription("Cars written through to the local store"),
	)
	if err != nil {
		return nil, fmt.Errorf("create synced counter: %w", err)
	}

	return &service{
		catalog: catalog,
		store:   store,
		logger:  logger,
		tracer:  otel.Tracer("locatecar/car"),
		synced:  synced,
	}, nil
}

// GetAllCars returns the remote catalog as-is. Nothing is persisted.
func (s *service) GetAllCars(ctx context.Context) ([]Car, error) {
	ctx, span := s.tracer.Start(ctx, "car.get_all")
	defer span.End()

	cars, err := s.catalog.FetchAll(ctx)
	if err != nil {
		return nil, fail(span, fmt.Errorf("fetch cars: %w", err))
	}

	span.SetAttributes(attribute.Int("cars.count", len(cars)))
	return cars, nil
}

// GetCarByID returns a single car from the remote catalog. Nothing is persisted.
func (s *service) GetCarByID(ctx context.Context, id int64) (*Car, error) {
	ctx, span := s.tracer.Start(ctx, "car.get_by_id",
		trace.WithAttributes(attribute.Int64("car.id", id)),
	)
	defer span.End()

	c, err := s.catalog.FetchByID(ctx, id)
	if err != nil {
		return nil, fail(span, fmt.Errorf("fetch car %d: %w", id, err))
	}

	return c, nil
}

// SugarCars fetches every remote car and writes them through to the store.
// The store's result is returned, not the remote payload.
func (s *service) SugarCars(ctx context.Context) ([]Car, error) {
	ctx, span := s.tracer.Start(ctx, "car.sugar_all")
	defer span.End()

	fetched, err := s.catalog.FetchAll(ctx)
	if err != nil {
		return nil, fail(span, fmt.Errorf("fetch cars: %w", err))
	}

	saved, err := s.store.SaveAll(ctx, fetched)
	if err != nil {
		s.logger.Warn("Remote fetch succeeded but save failed",
			zap.Int("fetched", len(fetched)),
			zap.Error(err),
		)
		return nil, fail(span, fmt.Errorf("save cars: %w", err))
	}

	s.synced.Add(ctx, int64(len(saved)), metric.WithAttributes(attribute.String("operation", "sugar_cars")))
	span.SetAttributes(
		attribute.Int("cars.fetched", len(fetched)),
		attribute.Int("cars.saved", len(saved)),
	)
	s.logger.Debug("Synchronized cars from catalog", zap.Int("count", len(saved)))
	return saved, nil
}

// SugarCar fetches one remote car and writes it through to the store.
func (s *service) SugarCar(ctx context.Context, id int64) (*Car, error) {
	ctx, span := s.tracer.Start(ctx, "car.sugar_one",
		trace.WithAttributes(attribute.Int64("car.id", id)),
	)
	defer span.End()

	fetched, err := s.catalog.FetchByID(ctx, id)
	if err != nil {
		return nil, fail(span, fmt.Errorf("fetch car %d: %w", id, err))
	}

	saved, err := s.store.Save(ctx, *fetched)
	if err != nil {
		s.logger.Warn("Remote fetch succeeded but save failed", zap.Int64("car_id", id), zap.Error(err))
		return nil, fail(span, fmt.Errorf("save car %d: %w", id, err))
	}

	s.synced.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", "sugar_car")))
	s.logger.Debug("Synchronized car from catalog", zap.Int64("car_id", id))
	return saved, nil
}

// GetAllAvailableCars answers from the local store only.
func (s *service) GetAllAvailableCars(ctx context.Context) ([]Car, error) {
	ctx, span := s.tracer.Start(ctx, "car.get_available")
	defer span.End()

	cars, err := s.store.FindAllAvailableCars(ctx)
	if err != nil {
		return nil, fail(span, fmt.Errorf("find available cars: %w", err))
	}

	span.SetAttributes(attribute.Int("cars.count", len(cars)))
	return cars, nil
}

// CheckIfCarIsAvailable answers from the local store only.
func (s *service) CheckIfCarIsAvailable(ctx context.Context, id int64) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "car.check_available",
		trace.WithAttributes(attribute.Int64("car.id", id)),
	)
	defer span.End()

	available, err := s.store.IsCarAvailable(ctx, id)
	if err != nil {
		return false, fail(span, fmt.Errorf("check availability of car %d: %w", id, err))
	}

	span.SetAttributes(attribute.Bool("car.available", available))
	return available, nil
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
