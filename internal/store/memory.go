// internal/store/memory.go
package store

import (
	"context"
	"fmt"
	"locatecar/internal/car"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Memory is a car.Store backed by an in-process map.
type Memory struct {
	mu     sync.RWMutex
	cars   map[int64]car.Car
	logger *zap.Logger
	now    func() time.Time
}

// NewMemory creates an empty in-memory store.
func NewMemory(logger *zap.Logger) *Memory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Memory{
		cars:   make(map[int64]car.Car),
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// SaveAll upserts every car. Repeated IDs resolve to the last occurrence.
func (m *Memory) SaveAll(ctx context.Context, cars []car.Car) ([]car.Car, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", car.ErrPersistence, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	saved := make([]car.Car, 0, len(cars))
	for _, c := range cars {
		ts := now
		c.UpdatedAt = &ts
		m.cars[c.ID] = c
		saved = append(saved, c)
	}

	m.logger.Debug("Saved cars", zap.Int("count", len(saved)), zap.Int("total", len(m.cars)))
	return saved, nil
}

// Save upserts a single car.
func (m *Memory) Save(ctx context.Context, c car.Car) (*car.Car, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", car.ErrPersistence, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	c.UpdatedAt = &now
	m.cars[c.ID] = c
	return &c, nil
}

// FindAllAvailableCars returns available cars ordered by ID.
func (m *Memory) FindAllAvailableCars(ctx context.Context) ([]car.Car, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", car.ErrPersistence, err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	cars := []car.Car{}
	for _, c := range m.cars {
		if c.Available {
			cars = append(cars, c)
		}
	}
	sort.Slice(cars, func(i, j int) bool { return cars[i].ID < cars[j].ID })
	return cars, nil
}

// IsCarAvailable reports the availability flag of one car. Unknown IDs yield car.ErrNotFound.
func (m *Memory) IsCarAvailable(ctx context.Context, id int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("%w: %v", car.ErrPersistence, err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.cars[id]
	if !ok {
		return false, fmt.Errorf("car %d: %w", id, car.ErrNotFound)
	}
	return c.Available, nil
}

// Len returns the number of stored cars.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.cars)
}
