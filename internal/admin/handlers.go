package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Jogoraa/Woliso-Rentals/internal/api"
	"github.com/Jogoraa/Woliso-Rentals/internal/audit"
	"github.com/Jogoraa/Woliso-Rentals/internal/booking"
	"github.com/Jogoraa/Woliso-Rentals/internal/house"
	"github.com/Jogoraa/Woliso-Rentals/internal/user"
	"github.com/Jogoraa/Woliso-Rentals/pkg/db"
)

type Handlers struct {
	DB       *pgxpool.Pool
	Users    *user.Repository
	Houses   *house.Repository
	Bookings *booking.Repository
}

type StatsResponse struct {
	TotalUsers    int64 `json:"total_users"`
	TotalHouses   int64 `json:"total_houses"`
	PendingHouses int64 `json:"pending_houses"`
	TotalBookings int64 `json:"total_bookings"`
}

func (h Handlers) Stats(w http.ResponseWriter, r *http.Request) {
	var stats StatsResponse
	var err error
	stats.TotalUsers, err = h.Users.CountAll(r.Context())
	if err == nil {
		stats.TotalHouses, err = h.Houses.CountAll(r.Context())
	}
	if err == nil {
		stats.PendingHouses, err = h.Houses.CountByStatus(r.Context(), house.StatusPendingApproval)
	}
	if err == nil {
		stats.TotalBookings, err = h.Bookings.CountAll(r.Context())
	}
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	api.WriteJSON(w, http.StatusOK, stats)
}

func (h Handlers) PendingHouses(w http.ResponseWriter, r *http.Request) {
	houses, err := h.Houses.List(r.Context(), house.Filter{Status: house.StatusPendingApproval})
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	api.WriteJSON(w, http.StatusOK, houses)
}

// SetHouseStatus approves, rejects or re-hides a listing. The transition is
// validated against the listing state machine under a row lock; renting is
// never admin-assignable.
func (h Handlers) SetHouseStatus(w http.ResponseWriter, r *http.Request) {
	u := api.UserFromContext(r.Context())
	id := chi.URLParam(r, "id")

	next, err := house.ParseStatus(r.URL.Query().Get("status"))
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid status")
		return
	}

	err = db.WithTx(r.Context(), h.DB, func(tx pgx.Tx) error {
		hse, err := house.GetForUpdate(r.Context(), tx, id)
		if err != nil {
			api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "house not found")
			return pgx.ErrTxCommitRollback
		}
		if !house.CanAdminTransition(hse.Status, next) {
			api.WriteError(w, http.StatusConflict, "INVALID_STATE_TRANSITION", "invalid state transition")
			return pgx.ErrTxCommitRollback
		}
		if err := house.UpdateStatus(r.Context(), tx, hse.ID, next); err != nil {
			return err
		}
		_ = audit.Insert(r.Context(), tx, u.ID, "HOUSE_STATUS_CHANGED", &hse.ID, map[string]any{"from": hse.Status, "to": next})
		return nil
	})
	if err != nil {
		if err == pgx.ErrTxCommitRollback {
			return
		}
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}

	api.WriteJSON(w, http.StatusOK, map[string]string{"message": "house status updated successfully"})
}

func (h Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.ListAll(r.Context())
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	api.WriteJSON(w, http.StatusOK, users)
}
