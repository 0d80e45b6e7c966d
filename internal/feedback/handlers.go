package feedback

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Jogoraa/Woliso-Rentals/internal/api"
	"github.com/Jogoraa/Woliso-Rentals/internal/house"
)

type Handlers struct {
	Feedbacks *Repository
	Houses    *house.Repository
}

type CreateRequest struct {
	HouseID string `json:"house_id"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment,omitempty"`
}

func (h Handlers) Create(w http.ResponseWriter, r *http.Request) {
	u := api.UserFromContext(r.Context())

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.HouseID == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "house_id is required")
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "rating must be between 1 and 5")
		return
	}

	if _, err := h.Houses.GetByID(r.Context(), req.HouseID); err != nil {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "house not found")
		return
	}

	f := &Feedback{
		ID:       uuid.NewString(),
		TenantID: u.ID,
		HouseID:  req.HouseID,
		Rating:   req.Rating,
		Comment:  strings.TrimSpace(req.Comment),
	}
	if err := h.Feedbacks.Create(r.Context(), f); err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	api.WriteJSON(w, http.StatusOK, f)
}

func (h Handlers) ListForHouse(w http.ResponseWriter, r *http.Request) {
	items, err := h.Feedbacks.ListByHouse(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	api.WriteJSON(w, http.StatusOK, items)
}
