package payment

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Jogoraa/Woliso-Rentals/internal/api"
	"github.com/Jogoraa/Woliso-Rentals/internal/audit"
	"github.com/Jogoraa/Woliso-Rentals/internal/booking"
	"github.com/Jogoraa/Woliso-Rentals/internal/house"
	"github.com/Jogoraa/Woliso-Rentals/pkg/chapa"
	"github.com/Jogoraa/Woliso-Rentals/pkg/config"
	"github.com/Jogoraa/Woliso-Rentals/pkg/db"
)

// Gateway is the slice of the Chapa client the handlers use.
type Gateway interface {
	Initialize(ctx context.Context, req chapa.InitializeRequest) (*chapa.InitializeResult, error)
	Verify(ctx context.Context, txRef string) (*chapa.VerifyResult, error)
}

type Handlers struct {
	Cfg      config.Config
	DB       *pgxpool.Pool
	Gateway  Gateway
	Payments *Repository
}

type InitializeRequest struct {
	BookingID string          `json:"booking_id"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency,omitempty"`
}

// Initialize starts a deposit payment for the caller's approved booking and
// returns the gateway checkout URL. Re-initializing an approved-but-unpaid
// booking is allowed and produces a fresh transaction reference.
func (h Handlers) Initialize(w http.ResponseWriter, r *http.Request) {
	u := api.UserFromContext(r.Context())

	var req InitializeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.BookingID == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "booking_id is required")
		return
	}
	if req.Amount.IsZero() {
		req.Amount, _ = decimal.NewFromString(h.Cfg.DepositAmount)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "amount must be > 0")
		return
	}
	if req.Currency == "" {
		req.Currency = h.Cfg.DepositCurrency
	}

	var resp any
	err := db.WithTx(r.Context(), h.DB, func(tx pgx.Tx) error {
		b, err := booking.GetForUpdate(r.Context(), tx, req.BookingID)
		if err != nil {
			api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "booking not found")
			return pgx.ErrTxCommitRollback
		}
		if b.TenantID != u.ID {
			api.WriteError(w, http.StatusForbidden, "FORBIDDEN", "not your booking")
			return pgx.ErrTxCommitRollback
		}
		if b.Status != booking.StatusApproved {
			api.WriteError(w, http.StatusConflict, "BOOKING_NOT_APPROVED", "booking is not approved")
			return pgx.ErrTxCommitRollback
		}
		if b.DepositPaid {
			api.WriteError(w, http.StatusConflict, "DEPOSIT_ALREADY_PAID", "deposit already paid")
			return pgx.ErrTxCommitRollback
		}

		hse, err := house.GetForUpdate(r.Context(), tx, b.HouseID)
		if err != nil {
			return err
		}
		if hse.Status == house.StatusRented {
			api.WriteError(w, http.StatusConflict, "HOUSE_NOT_AVAILABLE", "house has already been rented")
			return pgx.ErrTxCommitRollback
		}

		txRef := chapa.NewTxRef("woliso")
		res, err := h.Gateway.Initialize(r.Context(), chapa.InitializeRequest{
			Amount:    req.Amount,
			Currency:  req.Currency,
			TxRef:     txRef,
			ReturnURL: h.Cfg.Chapa.ReturnURL,
			Email:     u.Email,
			FirstName: firstName(u.FullName),
			LastName:  lastName(u.FullName),
		})
		if err != nil {
			api.WriteError(w, http.StatusBadGateway, "UPSTREAM_ERROR", "payment gateway error")
			return pgx.ErrTxCommitRollback
		}

		rec := &Record{
			ID:          uuid.NewString(),
			BookingID:   b.ID,
			TxRef:       txRef,
			Amount:      req.Amount.String(),
			Currency:    req.Currency,
			Status:      PaymentInitialized,
			CheckoutURL: res.CheckoutURL,
		}
		if err := Insert(r.Context(), tx, rec); err != nil {
			return err
		}

		_ = audit.Insert(r.Context(), tx, u.ID, "PAYMENT_INITIALIZED", &b.HouseID, map[string]any{"bookingId": b.ID, "txRef": txRef})

		resp = map[string]any{"checkout_url": res.CheckoutURL, "tx_ref": txRef}
		return nil
	})
	if err != nil {
		if err == pgx.ErrTxCommitRollback {
			return
		}
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}

	api.WriteJSON(w, http.StatusOK, resp)
}

// Verify confirms a transaction with the gateway after the payer returns, then
// settles the deposit: booking.deposit_paid flips and the house is marked
// rented, in one transaction. Verifying the same tx_ref again observes the
// settled state and reports the same success without repeating the transition.
func (h Handlers) Verify(w http.ResponseWriter, r *http.Request) {
	txRef := chi.URLParam(r, "tx_ref")

	rec, err := h.Payments.GetByTxRef(r.Context(), txRef)
	if err != nil {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "unknown transaction reference")
		return
	}
	if rec.Status == PaymentPaid {
		api.WriteJSON(w, http.StatusOK, map[string]string{"status": "success"})
		return
	}

	vr, err := h.Gateway.Verify(r.Context(), txRef)
	if err != nil {
		api.WriteError(w, http.StatusBadGateway, "UPSTREAM_ERROR", "payment gateway error")
		return
	}
	if !vr.Verified {
		// Not retried automatically; the tenant can start a fresh payment
		// from the approved-but-unpaid state.
		if err := h.Payments.MarkFailed(r.Context(), rec.ID); err != nil {
			log.Printf("mark payment failed tx_ref=%s err=%v", txRef, err)
		}
		api.WriteJSON(w, http.StatusOK, map[string]string{"status": "failed", "message": vr.Message})
		return
	}

	err = db.WithTx(r.Context(), h.DB, func(tx pgx.Tx) error {
		p, err := GetForUpdateByTxRef(r.Context(), tx, txRef)
		if err != nil {
			return err
		}
		if p.Status == PaymentPaid {
			// Raced with a concurrent verification of the same tx_ref.
			return nil
		}

		b, err := booking.GetForUpdate(r.Context(), tx, p.BookingID)
		if err != nil {
			return err
		}
		hse, err := house.GetForUpdate(r.Context(), tx, b.HouseID)
		if err != nil {
			return err
		}

		out, err := Settle(SettleState{
			BookingStatus: b.Status,
			DepositPaid:   b.DepositPaid,
			HouseStatus:   hse.Status,
		})
		if err != nil {
			if errors.Is(err, ErrHouseUnavailable) {
				api.WriteError(w, http.StatusConflict, "HOUSE_NOT_AVAILABLE", "house has already been rented")
			} else {
				api.WriteError(w, http.StatusConflict, "BOOKING_NOT_APPROVED", "booking is not approved")
			}
			return pgx.ErrTxCommitRollback
		}

		if out.MarkDepositPaid {
			if err := booking.MarkDepositPaid(r.Context(), tx, b.ID); err != nil {
				return err
			}
		}
		if out.MarkHouseRented {
			if err := house.MarkRented(r.Context(), tx, hse.ID); err != nil {
				return err
			}
		}
		if err := MarkPaid(r.Context(), tx, p.ID, time.Now()); err != nil {
			return err
		}

		_ = audit.Insert(r.Context(), tx, b.TenantID, "PAYMENT_VERIFIED", &b.HouseID, map[string]any{"bookingId": b.ID, "txRef": txRef})
		return nil
	})
	if err != nil {
		if err == pgx.ErrTxCommitRollback {
			return
		}
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}

	api.WriteJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

func firstName(full string) string {
	fields := strings.Fields(full)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func lastName(full string) string {
	fields := strings.Fields(full)
	if len(fields) < 2 {
		return ""
	}
	return fields[len(fields)-1]
}
