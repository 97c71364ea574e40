package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/yamensam88/vitrio/internal/entities"
	"github.com/yamensam88/vitrio/internal/repository"
	"github.com/yamensam88/vitrio/internal/service"
)

type BookingHandler struct {
	Service *service.BookingService
}

func NewBookingHandler(svc *service.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

func (h *BookingHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req entities.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	appointment, err := h.Service.BookAppointment(&req)
	if err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			http.Error(w, "Slot already booked", http.StatusConflict)
			return
		}
		if errors.Is(err, repository.ErrGarageNotFound) {
			http.Error(w, "Garage not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entities.BookingResponse{
		AppointmentID: appointment.ID,
		Status:        appointment.Status,
		Message:       "Appointment requested.",
	})
}

// GetSlotGrid serves the customer-facing booking calendar for one week.
func (h *BookingHandler) GetSlotGrid(w http.ResponseWriter, r *http.Request) {
	garageID := mux.Vars(r)["id"]
	weekStart, err := parseWeekParam(r.URL.Query().Get("week"))
	if err != nil {
		http.Error(w, "Invalid week parameter", http.StatusBadRequest)
		return
	}
	grid, err := h.Service.SlotGrid(garageID, weekStart, false)
	if err != nil {
		http.Error(w, "Error loading slots", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(grid)
}

// parseWeekParam accepts a YYYY-MM-DD date and snaps it to the Monday of its
// week. An empty value means the current week.
func parseWeekParam(raw string) (time.Time, error) {
	day := time.Now()
	if raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, err
		}
		day = parsed
	}
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset), nil
}
