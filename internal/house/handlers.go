package house

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Jogoraa/Woliso-Rentals/internal/api"
	"github.com/Jogoraa/Woliso-Rentals/internal/user"
)

type Handlers struct {
	Houses *Repository
}

type CreateRequest struct {
	Title         string          `json:"title"`
	Description   string          `json:"description,omitempty"`
	Location      string          `json:"location"`
	PricePerMonth decimal.Decimal `json:"price_per_month"`
	NumRooms      int             `json:"num_rooms"`
}

func (h Handlers) Create(w http.ResponseWriter, r *http.Request) {
	u := api.UserFromContext(r.Context())

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Location = strings.TrimSpace(req.Location)
	if req.Title == "" || req.Location == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "title and location are required")
		return
	}
	if req.PricePerMonth.LessThanOrEqual(decimal.Zero) {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "price_per_month must be > 0")
		return
	}
	if req.NumRooms <= 0 {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "num_rooms must be > 0")
		return
	}

	// Every new listing waits for admin approval before it is publicly visible.
	house := &House{
		ID:            uuid.NewString(),
		LandlordID:    u.ID,
		Title:         req.Title,
		Description:   strings.TrimSpace(req.Description),
		Location:      req.Location,
		PricePerMonth: req.PricePerMonth,
		NumRooms:      req.NumRooms,
		Status:        StatusPendingApproval,
		Photos:        []string{},
	}
	if err := h.Houses.Create(r.Context(), house); err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}

	api.WriteJSON(w, http.StatusOK, house)
}

func (h Handlers) Get(w http.ResponseWriter, r *http.Request) {
	house, err := h.Houses.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "house not found")
		return
	}
	api.WriteJSON(w, http.StatusOK, house)
}

func (h Handlers) List(w http.ResponseWriter, r *http.Request) {
	f, err := FilterFromQuery(r.URL.Query())
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}

	// Non-admin callers only see the public catalog.
	if f.Status == "" {
		f.Status = StatusAvailable
	}
	if f.Status != StatusAvailable {
		u := api.UserFromContext(r.Context())
		if u == nil || u.Role != user.RoleAdmin {
			f.Status = StatusAvailable
		}
	}

	houses, err := h.Houses.List(r.Context(), f)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	api.WriteJSON(w, http.StatusOK, houses)
}

// FilterFromQuery parses ?location=&num_rooms=&min_price=&max_price=&status=.
func FilterFromQuery(q url.Values) (Filter, error) {
	var f Filter
	f.Location = strings.TrimSpace(q.Get("location"))

	if s := q.Get("status"); s != "" {
		status, err := ParseStatus(s)
		if err != nil {
			return f, err
		}
		f.Status = status
	}
	if s := q.Get("num_rooms"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			return f, errors.New("num_rooms must be a positive integer")
		}
		f.NumRooms = n
	}
	if s := q.Get("min_price"); s != "" {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return f, err
		}
		f.MinPrice = &d
	}
	if s := q.Get("max_price"); s != "" {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return f, err
		}
		f.MaxPrice = &d
	}
	return f, nil
}

func (h Handlers) MyHouses(w http.ResponseWriter, r *http.Request) {
	u := api.UserFromContext(r.Context())
	houses, err := h.Houses.ListByLandlord(r.Context(), u.ID)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	api.WriteJSON(w, http.StatusOK, houses)
}

func (h Handlers) Update(w http.ResponseWriter, r *http.Request) {
	u := api.UserFromContext(r.Context())
	id := chi.URLParam(r, "id")

	house, err := h.Houses.GetByID(r.Context(), id)
	if err != nil {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "house not found")
		return
	}
	if house.LandlordID != u.ID {
		api.WriteError(w, http.StatusForbidden, "FORBIDDEN", "not authorized to update this house")
		return
	}

	var upd ContentUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	if upd.PricePerMonth != nil && upd.PricePerMonth.LessThanOrEqual(decimal.Zero) {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "price_per_month must be > 0")
		return
	}
	if upd.NumRooms != nil && *upd.NumRooms <= 0 {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "num_rooms must be > 0")
		return
	}

	if err := h.Houses.UpdateContent(r.Context(), id, upd); err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}

	house, err = h.Houses.GetByID(r.Context(), id)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	api.WriteJSON(w, http.StatusOK, house)
}

func (h Handlers) Delete(w http.ResponseWriter, r *http.Request) {
	u := api.UserFromContext(r.Context())
	id := chi.URLParam(r, "id")

	house, err := h.Houses.GetByID(r.Context(), id)
	if err != nil {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "house not found")
		return
	}
	if house.LandlordID != u.ID {
		api.WriteError(w, http.StatusForbidden, "FORBIDDEN", "not authorized to delete this house")
		return
	}

	if err := h.Houses.Delete(r.Context(), id); err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]string{"message": "house deleted successfully"})
}

func (h Handlers) AddPhotos(w http.ResponseWriter, r *http.Request) {
	u := api.UserFromContext(r.Context())
	id := chi.URLParam(r, "id")

	house, err := h.Houses.GetByID(r.Context(), id)
	if err != nil {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "house not found")
		return
	}
	if house.LandlordID != u.ID {
		api.WriteError(w, http.StatusForbidden, "FORBIDDEN", "not authorized to update this house")
		return
	}

	var urls []string
	if err := json.NewDecoder(r.Body).Decode(&urls); err != nil || len(urls) == 0 {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "expected a non-empty array of photo urls")
		return
	}

	if err := h.Houses.AppendPhotos(r.Context(), id, urls); err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]string{"message": "photos added successfully"})
}
