package api

import (
	"encoding/json"
	"net/http"

	"github.com/yamensam88/vitrio/internal/entities"
	"github.com/yamensam88/vitrio/internal/service"
)

type SearchHandler struct {
	Service *service.SearchService
}

func NewSearchHandler(svc *service.SearchService) *SearchHandler {
	return &SearchHandler{Service: svc}
}

func (h *SearchHandler) SearchGarages(w http.ResponseWriter, r *http.Request) {
	var req entities.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	resp, err := h.Service.Search(req)
	if err != nil {
		http.Error(w, "Error searching garages", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
