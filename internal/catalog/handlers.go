package catalog

import (
	"net/http"

	"github.com/Jogoraa/Woliso-Rentals/internal/api"
	"github.com/Jogoraa/Woliso-Rentals/internal/house"
)

type Handlers struct {
	Catalog *Repository
}

// List serves the public catalog: available houses with their rating
// aggregates, honoring the same filters as the plain house listing.
func (h Handlers) List(w http.ResponseWriter, r *http.Request) {
	f, err := house.FilterFromQuery(r.URL.Query())
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}
	f.Status = house.StatusAvailable

	items, err := h.Catalog.List(r.Context(), f)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	api.WriteJSON(w, http.StatusOK, items)
}
