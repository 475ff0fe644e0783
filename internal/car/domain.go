// internal/car/domain.go
package car

import (
	"errors"
	"strconv"
	"time"
)

var (
	ErrNotFound          = errors.New("car not found")
	ErrRemoteUnavailable = errors.New("remote catalog unavailable")
	ErrPersistence       = errors.New("car store failure")
	ErrInvalidID         = errors.New("invalid car id")
)

// Car represents a rentable vehicle as published by the remote catalog.
type Car struct {
	ID        int64      `json:"id"`
	Brand     string     `json:"brand"`
	Model     string     `json:"model"`
	Plate     string     `json:"plate,omitempty"`
	Year      int        `json:"year,omitempty"`
	Color     string     `json:"color,omitempty"`
	DailyRate float64    `json:"daily_rate"`
	Available bool       `json:"available"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// ParseID converts the textual form used in URLs into a car ID.
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}

// FormatID is the inverse of ParseID.
func FormatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// AvailabilityResponse is returned by the availability endpoint.
type AvailabilityResponse struct {
	ID        int64 `json:"id"`
	Available bool  `json:"available"`
}
