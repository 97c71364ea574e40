package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/yamensam88/vitrio/internal/auth"
	"github.com/yamensam88/vitrio/internal/booking"
	"github.com/yamensam88/vitrio/internal/entities"
	"github.com/yamensam88/vitrio/internal/repository"
	"github.com/yamensam88/vitrio/internal/service"
)

type PartnerHandler struct {
	PartnerService *service.PartnerService
	BookingService *service.BookingService
}

func NewPartnerHandler(partnerService *service.PartnerService, bookingService *service.BookingService) *PartnerHandler {
	return &PartnerHandler{PartnerService: partnerService, BookingService: bookingService}
}

func (h *PartnerHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req entities.PartnerLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	resp, err := h.PartnerService.Login(req.AccessCode)
	if err != nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *PartnerHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	garageID := auth.GarageIDFromContext(r.Context())
	appointments, err := h.PartnerService.ListAppointments(garageID)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(appointments)
}

// UpdateAppointmentStatus applies a partner's status change. Partners may only
// touch their own appointments.
func (h *PartnerHandler) UpdateAppointmentStatus(w http.ResponseWriter, r *http.Request) {
	garageID := auth.GarageIDFromContext(r.Context())
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	var req entities.StatusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	current, err := h.BookingService.AppointmentRepo.GetByID(id)
	if err != nil {
		http.Error(w, "Appointment not found", http.StatusNotFound)
		return
	}
	if current.GarageID != garageID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	var updated interface{}
	if req.Status == "" {
		updated, err = h.BookingService.AdvanceStatus(id)
	} else {
		updated, err = h.BookingService.UpdateStatus(id, req.Status)
	}
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrUnknownStatus), errors.Is(err, booking.ErrBackwardTransition):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		case errors.Is(err, repository.ErrAppointmentNotFound):
			http.Error(w, "Appointment not found", http.StatusNotFound)
		default:
			http.Error(w, "Could not update appointment", http.StatusInternalServerError)
		}
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

func (h *PartnerHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	garageID := auth.GarageIDFromContext(r.Context())
	stats, err := h.PartnerService.Stats(garageID)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

func (h *PartnerHandler) GetSlotGrid(w http.ResponseWriter, r *http.Request) {
	garageID := auth.GarageIDFromContext(r.Context())
	weekStart, err := parseWeekParam(r.URL.Query().Get("week"))
	if err != nil {
		http.Error(w, "Invalid week parameter", http.StatusBadRequest)
		return
	}
	grid, err := h.BookingService.SlotGrid(garageID, weekStart, true)
	if err != nil {
		http.Error(w, "Error loading slots", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(grid)
}

func (h *PartnerHandler) OpenSlot(w http.ResponseWriter, r *http.Request) {
	garageID := auth.GarageIDFromContext(r.Context())
	var req entities.AvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	availability, err := h.PartnerService.OpenSlot(garageID, req.StartTime)
	if err != nil {
		http.Error(w, "Could not open slot", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(availability)
}

func (h *PartnerHandler) CloseSlot(w http.ResponseWriter, r *http.Request) {
	garageID := auth.GarageIDFromContext(r.Context())
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	if err := h.PartnerService.CloseSlot(garageID, id); err != nil {
		if errors.Is(err, repository.ErrAvailabilityNotFound) {
			http.Error(w, "Availability not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Could not close slot", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"message": "Slot closed"})
}
