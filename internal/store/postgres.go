// internal/store/postgres.go
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"locatecar/internal/car"
	"time"

	"github.com/lib/pq"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Schema is the table layout expected by Postgres. It is applied by operators,
// not by the service.
const Schema = `
CREATE TABLE IF NOT EXISTS cars (
	id         BIGINT PRIMARY KEY,
	brand      TEXT NOT NULL DEFAULT '',
	model      TEXT NOT NULL DEFAULT '',
	plate      TEXT NOT NULL DEFAULT '',
	year       INT NOT NULL DEFAULT 0,
	color      TEXT NOT NULL DEFAULT '',
	daily_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
	available  BOOLEAN NOT NULL DEFAULT FALSE,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`

const upsertCar = `
	INSERT INTO cars (id, brand, model, plate, year, color, daily_rate, available, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (id) DO UPDATE
	SET brand = EXCLUDED.brand,
	    model = EXCLUDED.model,
	    plate = EXCLUDED.plate,
	    year = EXCLUDED.year,
	    color = EXCLUDED.color,
	    daily_rate = EXCLUDED.daily_rate,
	    available = EXCLUDED.available,
	    updated_at = EXCLUDED.updated_at
	RETURNING daily_rate, updated_at
`

// Postgres is a car.Store backed by PostgreSQL.
type Postgres struct {
	db     *sql.DB
	tracer trace.Tracer
	now    func() time.Time
}

// NewPostgres wraps an open database handle.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{
		db:     db,
		tracer: otel.Tracer("locatecar/store"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// SaveAll upserts every car in one transaction. Repeated IDs resolve to the last occurrence.
func (p *Postgres) SaveAll(ctx context.Context, cars []car.Car) ([]car.Car, error) {
	ctx, span := p.tracer.Start(ctx, "store.save_all",
		trace.WithAttributes(attribute.Int("car.count", len(cars))),
	)
	defer span.End()

	if len(cars) == 0 {
		return []car.Car{}, nil
	}

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, persistenceError("begin transaction", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, upsertCar)
	if err != nil {
		return nil, persistenceError("prepare statement", err)
	}
	defer stmt.Close()

	now := p.now()
	saved := make([]car.Car, 0, len(cars))
	for i, c := range cars {
		if err := upsert(ctx, stmt, &c, now); err != nil {
			return nil, persistenceError(fmt.Sprintf("upsert car %d (index %d)", c.ID, i), err)
		}
		saved = append(saved, c)
	}

	if err := tx.Commit(); err != nil {
		return nil, persistenceError("commit transaction", err)
	}

	return saved, nil
}

// Save upserts a single car.
func (p *Postgres) Save(ctx context.Context, c car.Car) (*car.Car, error) {
	ctx, span := p.tracer.Start(ctx, "store.save",
		trace.WithAttributes(attribute.Int64("car.id", c.ID)),
	)
	defer span.End()

	stmt, err := p.db.PrepareContext(ctx, upsertCar)
	if err != nil {
		return nil, persistenceError("prepare statement", err)
	}
	defer stmt.Close()

	if err := upsert(ctx, stmt, &c, p.now()); err != nil {
		return nil, persistenceError(fmt.Sprintf("upsert car %d", c.ID), err)
	}

	return &c, nil
}

func upsert(ctx context.Context, stmt *sql.Stmt, c *car.Car, now time.Time) error {
	return stmt.QueryRowContext(ctx,
		c.ID,
		c.Brand,
		c.Model,
		c.Plate,
		c.Year,
		c.Color,
		c.DailyRate,
		c.Available,
		now,
	).Scan(&c.DailyRate, &c.UpdatedAt)
}

// FindAllAvailableCars returns available cars ordered by ID.
func (p *Postgres) FindAllAvailableCars(ctx context.Context) ([]car.Car, error) {
	ctx, span := p.tracer.Start(ctx, "store.find_available")
	defer span.End()

	rows, err := p.db.QueryContext(ctx, `
		SELECT id, brand, model, plate, year, color, daily_rate, available, updated_at
		FROM cars
		WHERE available = TRUE
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, persistenceError("query available cars", err)
	}
	defer rows.Close()

	cars := []car.Car{}
	for rows.Next() {
		var c car.Car
		if err := rows.Scan(&c.ID, &c.Brand, &c.Model, &c.Plate, &c.Year, &c.Color, &c.DailyRate, &c.Available, &c.UpdatedAt); err != nil {
			return nil, persistenceError("scan car", err)
		}
		cars = append(cars, c)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceError("iterate cars", err)
	}

	span.SetAttributes(attribute.Int("cars.loaded", len(cars)))
	return cars, nil
}

// IsCarAvailable reports the availability flag of one car. Unknown IDs yield car.ErrNotFound.
func (p *Postgres) IsCarAvailable(ctx context.Context, id int64) (bool, error) {
	ctx, span := p.tracer.Start(ctx, "store.is_available",
		trace.WithAttributes(attribute.Int64("car.id", id)),
	)
	defer span.End()

	var available bool
	err := p.db.QueryRowContext(ctx, `SELECT available FROM cars WHERE id = $1`, id).Scan(&available)
	if errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("car %d: %w", id, car.ErrNotFound)
	}
	if err != nil {
		return false, persistenceError("query availability", err)
	}

	return available, nil
}

func persistenceError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("%w: %s: %s (%s)", car.ErrPersistence, op, pqErr.Message, pqErr.Code.Name())
	}
	return fmt.Errorf("%w: %s: %v", car.ErrPersistence, op, err)
}
