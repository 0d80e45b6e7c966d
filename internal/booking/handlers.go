package booking

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Jogoraa/Woliso-Rentals/internal/api"
	"github.com/Jogoraa/Woliso-Rentals/internal/audit"
	"github.com/Jogoraa/Woliso-Rentals/internal/house"
	"github.com/Jogoraa/Woliso-Rentals/pkg/db"
)

type Handlers struct {
	DB       *pgxpool.Pool
	Bookings *Repository
}

type CreateRequest struct {
	HouseID string `json:"house_id"`
	Message string `json:"message,omitempty"`
}

// Create records a tenant's booking request. The house row is locked for the
// availability and pending-duplicate checks so concurrent requests serialize;
// the partial unique index backs the duplicate check as a last line.
func (h Handlers) Create(w http.ResponseWriter, r *http.Request) {
	u := api.UserFromContext(r.Context())

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.HouseID == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "house_id is required")
		return
	}

	var b *Booking
	err := db.WithTx(r.Context(), h.DB, func(tx pgx.Tx) error {
		target, err := house.GetForUpdate(r.Context(), tx, req.HouseID)
		if err != nil {
			api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "house not found")
			return pgx.ErrTxCommitRollback
		}
		if !house.Bookable(target.Status) {
			api.WriteError(w, http.StatusConflict, "HOUSE_NOT_AVAILABLE", "house is not available")
			return pgx.ErrTxCommitRollback
		}

		// One undecided request per tenant and house. A rejected request may be
		// re-submitted while the house is still available.
		pending, err := HasPendingForHouse(r.Context(), tx, u.ID, req.HouseID)
		if err != nil {
			return err
		}
		if pending {
			api.WriteError(w, http.StatusConflict, "BOOKING_ALREADY_PENDING", "you already have a pending request for this house")
			return pgx.ErrTxCommitRollback
		}

		b = &Booking{
			ID:         uuid.NewString(),
			TenantID:   u.ID,
			HouseID:    target.ID,
			LandlordID: target.LandlordID,
			Status:     StatusPending,
			Message:    strings.TrimSpace(req.Message),
		}
		if err := Insert(r.Context(), tx, b); err != nil {
			if db.IsUniqueViolation(err) {
				api.WriteError(w, http.StatusConflict, "BOOKING_ALREADY_PENDING", "you already have a pending request for this house")
				return pgx.ErrTxCommitRollback
			}
			return err
		}
		return nil
	})
	if err != nil {
		if err == pgx.ErrTxCommitRollback {
			return
		}
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}

	api.WriteJSON(w, http.StatusOK, b)
}

func (h Handlers) MyRequests(w http.ResponseWriter, r *http.Request) {
	u := api.UserFromContext(r.Context())
	items, err := h.Bookings.ListByTenant(r.Context(), u.ID)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	api.WriteJSON(w, http.StatusOK, items)
}

func (h Handlers) Received(w http.ResponseWriter, r *http.Request) {
	u := api.UserFromContext(r.Context())
	items, err := h.Bookings.ListByLandlord(r.Context(), u.ID)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	api.WriteJSON(w, http.StatusOK, items)
}

type DecideRequest struct {
	Status string `json:"status"`
}

// Decide applies the landlord's approve/reject decision. The decision is
// single-fire: the booking row is locked and must still be pending. Approval
// does not rent the house; that happens when the deposit settles.
func (h Handlers) Decide(w http.ResponseWriter, r *http.Request) {
	u := api.UserFromContext(r.Context())
	id := chi.URLParam(r, "id")

	var req DecideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	decision, err := ParseDecision(req.Status)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "status must be approved or rejected")
		return
	}

	var updated *Booking
	err = db.WithTx(r.Context(), h.DB, func(tx pgx.Tx) error {
		b, err := GetForUpdate(r.Context(), tx, id)
		if err != nil {
			api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "booking not found")
			return pgx.ErrTxCommitRollback
		}
		if b.LandlordID != u.ID {
			api.WriteError(w, http.StatusForbidden, "FORBIDDEN", "not authorized to update this booking")
			return pgx.ErrTxCommitRollback
		}
		if !Decidable(b.Status) {
			api.WriteError(w, http.StatusConflict, "BOOKING_ALREADY_DECIDED", "booking has already been decided")
			return pgx.ErrTxCommitRollback
		}

		if err := UpdateStatus(r.Context(), tx, b.ID, decision); err != nil {
			return err
		}

		_ = audit.Insert(r.Context(), tx, u.ID, "BOOKING_DECIDED", &b.HouseID, map[string]any{"bookingId": b.ID, "decision": decision})

		b.Status = decision
		updated = b
		return nil
	})
	if err != nil {
		if err == pgx.ErrTxCommitRollback {
			return
		}
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}

	api.WriteJSON(w, http.StatusOK, updated)
}
