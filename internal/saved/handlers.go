package saved

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Jogoraa/Woliso-Rentals/internal/api"
	"github.com/Jogoraa/Woliso-Rentals/internal/house"
)

type Handlers struct {
	Saved  *Repository
	Houses *house.Repository
}

func (h Handlers) Toggle(w http.ResponseWriter, r *http.Request) {
	u := api.UserFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if _, err := h.Houses.GetByID(r.Context(), id); err != nil {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "house not found")
		return
	}

	nowSaved, err := h.Saved.Toggle(r.Context(), u.ID, id)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}

	msg := "house removed from saved"
	if nowSaved {
		msg = "house saved"
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"saved": nowSaved, "message": msg})
}

func (h Handlers) List(w http.ResponseWriter, r *http.Request) {
	u := api.UserFromContext(r.Context())

	houses, err := h.Saved.ListHouses(r.Context(), u.ID)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	api.WriteJSON(w, http.StatusOK, houses)
}
