package api

import (
	"encoding/json"
	"net/http"

	"github.com/yamensam88/vitrio/internal/service"
)

type AdminAuthHandler struct {
	Service service.AdminAuthService
}

func NewAdminAuthHandler(svc service.AdminAuthService) *AdminAuthHandler {
	return &AdminAuthHandler{Service: svc}
}

type adminCredentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login issues the back-office JWT. Wrong email and wrong password are
// indistinguishable to the caller.
func (h *AdminAuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req adminCredentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	token, err := h.Service.Login(req.Email, req.Password)
	if err != nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"token": token})
}

// CreateUserAdmin registers another back-office account; the route sits behind
// the admin middleware.
func (h *AdminAuthHandler) CreateUserAdmin(w http.ResponseWriter, r *http.Request) {
	var req adminCredentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := h.Service.CreateAdmin(req.Email, req.Password); err != nil {
		http.Error(w, "Could not create admin", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Admin created"})
}
