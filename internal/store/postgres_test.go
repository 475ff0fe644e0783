package store

import (
	"context"
	"database/sql"
	"fmt"
	"locatecar/internal/car"
	"os"
	"testing"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB connects to PostgreSQL using the standard PG* variables.
// It skips the test if the connection cannot be established.
func setupTestDB(t testing.TB) *sql.DB {
	t.Helper()

	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		envOr("PGHOST", "localhost"),
		envOr("PGPORT", "5432"),
		envOr("PGUSER", "user"),
		envOr("PGPASSWORD", "password"),
		envOr("PGDATABASE", "testdb"),
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		t.Fatalf("failed to open database connection: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping postgres tests: could not connect to postgres: %v", err)
	}

	_, err = db.Exec(Schema)
	require.NoError(t, err)
	_, err = db.Exec(`TRUNCATE TABLE cars`)
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })
	return db
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestPostgresSaveAllAndFindAvailable(t *testing.T) {
	p := NewPostgres(setupTestDB(t))
	ctx := context.Background()

	saved, err := p.SaveAll(ctx, []car.Car{
		{ID: 2, Brand: "Ford", Model: "Ka", DailyRate: 89.9, Available: true},
		{ID: 1, Brand: "Fiat", Model: "Uno", Available: false},
		{ID: 3, Brand: "Kia", Model: "Rio", Available: true},
	})
	require.NoError(t, err)
	require.Len(t, saved, 3)
	require.NotNil(t, saved[0].UpdatedAt)
	assert.False(t, saved[0].UpdatedAt.IsZero())

	available, err := p.FindAllAvailableCars(ctx)
	require.NoError(t, err)
	require.Len(t, available, 2)
	assert.Equal(t, int64(2), available[0].ID)
	assert.Equal(t, 89.9, available[0].DailyRate)
	assert.Equal(t, int64(3), available[1].ID)
}

func TestPostgresSaveUpserts(t *testing.T) {
	p := NewPostgres(setupTestDB(t))
	ctx := context.Background()

	_, err := p.Save(ctx, car.Car{ID: 9, Brand: "Fiat", Available: true})
	require.NoError(t, err)
	_, err = p.Save(ctx, car.Car{ID: 9, Brand: "Fiat", Available: false})
	require.NoError(t, err)

	ok, err := p.IsCarAvailable(ctx, 9)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPostgresEmptyResults(t *testing.T) {
	p := NewPostgres(setupTestDB(t))
	ctx := context.Background()

	saved, err := p.SaveAll(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, []car.Car{}, saved)

	available, err := p.FindAllAvailableCars(ctx)
	require.NoError(t, err)
	assert.Equal(t, []car.Car{}, available)

	_, err = p.IsCarAvailable(ctx, 12345)
	assert.ErrorIs(t, err, car.ErrNotFound)
}

func TestPostgresReturnsStoredRate(t *testing.T) {
	p := NewPostgres(setupTestDB(t))
	ctx := context.Background()

	saved, err := p.Save(ctx, car.Car{ID: 4, Brand: "Kia", DailyRate: 99.999, Available: true})
	require.NoError(t, err)

	available, err := p.FindAllAvailableCars(ctx)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, available[0].DailyRate, saved.DailyRate)
	assert.Equal(t, 99.999, saved.DailyRate)
}
