// internal/car/service.go
package car

import (
	"context"
)

// Service defines the interface for the car sync service.
type Service interface {
	GetAllCars(ctx context.Context) ([]Car, error)
	GetCarByID(ctx context.Context, id int64) (*Car, error)
	SugarCars(ctx context.Context) ([]Car, error)
	SugarCar(ctx context.Context, id int64) (*Car, error)
	GetAllAvailableCars(ctx context.Context) ([]Car, error)
	CheckIfCarIsAvailable(ctx context.Context, id int64) (bool, error)
}

// Catalog is the remote source of truth for cars.
type Catalog interface {
	FetchAll(ctx context.Context) ([]Car, error)
	FetchByID(ctx context.Context, id int64) (*Car, error)
}

// Store persists cars locally and answers availability queries.
type Store interface {
	SaveAll(ctx context.Context, cars []Car) ([]Car, error)
	Save(ctx context.Context, c Car) (*Car, error)
	FindAllAvailableCars(ctx context.Context) ([]Car, error)
	IsCarAvailable(ctx context.Context, id int64) (bool, error)
}
