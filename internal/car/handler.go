// internal/car/handler.go
package car

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, logger: logger}
}

// Routes mounts the car endpoints on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/cars", h.HandleGetAllCars)
	r.Get("/cars/available", h.HandleGetAvailableCars)
	r.Post("/cars/sync", h.HandleSugarCars)
	r.Get("/cars/{idCar}", h.HandleGetCar)
	r.Get("/cars/{idCar}/availability", h.HandleCheckAvailability)
	r.Post("/cars/{idCar}/sync", h.HandleSugarCar)
}

func (h *Handler) HandleGetAllCars(w http.ResponseWriter, r *http.Request) {
	cars, err := h.service.GetAllCars(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, cars)
}

func (h *Handler) HandleGetCar(w http.ResponseWriter, r *http.Request) {
	id, err := ParseID(chi.URLParam(r, "idCar"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	c, err := h.service.GetCarByID(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, c)
}

func (h *Handler) HandleSugarCars(w http.ResponseWriter, r *http.Request) {
	cars, err := h.service.SugarCars(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, cars)
}

func (h *Handler) HandleSugarCar(w http.ResponseWriter, r *http.Request) {
	id, err := ParseID(chi.URLParam(r, "idCar"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	c, err := h.service.SugarCar(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, c)
}

func (h *Handler) HandleGetAvailableCars(w http.ResponseWriter, r *http.Request) {
	cars, err := h.service.GetAllAvailableCars(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, cars)
}

func (h *Handler) HandleCheckAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := ParseID(chi.URLParam(r, "idCar"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	available, err := h.service.CheckIfCarIsAvailable(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, AvailabilityResponse{ID: id, Available: available})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed", zap.Int("status", status), zap.Error(err))
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// StatusFor maps service errors onto HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidID):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrRemoteUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
