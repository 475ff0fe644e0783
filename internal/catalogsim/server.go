// internal/catalogsim/server.go

// Package catalogsim serves an in-memory stand-in for the remote car catalog.
package catalogsim

import (
	"encoding/json"
	"fmt"
	"locatecar/internal/car"
	"net/http"
	"os"
	"sort"
	"sync"

	"github.com/go-chi/chi/v5"
	"gopkg.in/yaml.v3"
)

// Server holds the published cars and exposes them over the catalog's HTTP API.
type Server struct {
	mu   sync.RWMutex
	cars map[int64]car.Car
}

func New(cars ...car.Car) *Server {
	s := &Server{cars: make(map[int64]car.Car, len(cars))}
	for _, c := range cars {
		s.cars[c.ID] = c
	}
	return s
}

// seedFile is the on-disk layout accepted by LoadSeed.
type seedFile struct {
	Cars []struct {
		ID        int64   `yaml:"id"`
		Brand     string  `yaml:"brand"`
		Model     string  `yaml:"model"`
		Plate     string  `yaml:"plate"`
		Year      int     `yaml:"year"`
		Color     string  `yaml:"color"`
		DailyRate float64 `yaml:"daily_rate"`
		Available bool    `yaml:"available"`
	} `yaml:"cars"`
}

// LoadSeed reads cars from a YAML file.
func LoadSeed(path string) ([]car.Car, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	cars := make([]car.Car, 0, len(f.Cars))
	for _, c := range f.Cars {
		cars = append(cars, car.Car{
			ID:        c.ID,
			Brand:     c.Brand,
			Model:     c.Model,
			Plate:     c.Plate,
			Year:      c.Year,
			Color:     c.Color,
			DailyRate: c.DailyRate,
			Available: c.Available,
		})
	}
	return cars, nil
}

// DefaultCars is the fleet published when no seed file is given.
func DefaultCars() []car.Car {
	return []car.Car{
		{ID: 1, Brand: "Fiat", Model: "Argo", Plate: "BRA2E19", Year: 2022, Color: "red", DailyRate: 120, Available: true},
		{ID: 2, Brand: "Volkswagen", Model: "Polo", Plate: "QWE4R56", Year: 2021, Color: "silver", DailyRate: 135.5, Available: true},
		{ID: 3, Brand: "Chevrolet", Model: "Onix", Plate: "RTY7U89", Year: 2023, Color: "white", DailyRate: 110, Available: false},
	}
}

// Put publishes or replaces a car.
func (s *Server) Put(c car.Car) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cars[c.ID] = c
}

// Handler returns the catalog's HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/api/v1/cars", s.handleList)
	r.Get("/api/v1/cars/{idCar}", s.handleGet)
	return r
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	cars := make([]car.Car, 0, len(s.cars))
	for _, c := range s.cars {
		cars = append(cars, c)
	}
	s.mu.RUnlock()

	sort.Slice(cars, func(i, j int) bool { return cars[i].ID < cars[j].ID })
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cars)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := car.ParseID(chi.URLParam(r, "idCar"))
	if err != nil {
		http.Error(w, "invalid car ID", http.StatusBadRequest)
		return
	}

	s.mu.RLock()
	c, ok := s.cars[id]
	s.mu.RUnlock()
	if !ok {
		http.Error(w, "car not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(c)
}
