package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/yamensam88/vitrio/internal/entities"
	"github.com/yamensam88/vitrio/internal/repository"
	"github.com/yamensam88/vitrio/internal/service"
)

type AdminHandler struct {
	Service *service.AdminService
}

func NewAdminHandler(svc *service.AdminService) *AdminHandler {
	return &AdminHandler{Service: svc}
}

// Register is the public partner sign-up endpoint; everything else on this
// handler sits behind the admin middleware.
func (h *AdminHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req entities.RegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	registration, err := h.Service.Register(&req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(registration)
}

func (h *AdminHandler) ListGarages(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	registrations, err := h.Service.ListRegistrations(status)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(registrations)
}

func (h *AdminHandler) UpdateGarageStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := h.Service.UpdateStatus(id, req.Status); err != nil {
		if errors.Is(err, repository.ErrRegistrationNotFound) {
			http.Error(w, "Garage not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"message": "Garage status updated"})
}

// GenerateAccessCode approves a registration and issues (or rotates) the
// partner login code.
func (h *AdminHandler) GenerateAccessCode(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	code, err := h.Service.GenerateAccessCode(id)
	if err != nil {
		if errors.Is(err, repository.ErrRegistrationNotFound) {
			http.Error(w, "Garage not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Could not generate access code", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"access_code": code})
}

func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.Stats()
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

func (h *AdminHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.Service.ListAppointments()
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(appointments)
}
