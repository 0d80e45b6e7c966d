package payment

import (
	"errors"

	"github.com/Jogoraa/Woliso-Rentals/internal/booking"
	"github.com/Jogoraa/Woliso-Rentals/internal/house"
)

var (
	// ErrNotApproved: only an approved booking can settle a deposit.
	ErrNotApproved = errors.New("booking is not approved")

	// ErrHouseUnavailable: another approved booking settled first (or the house
	// was withdrawn), so this deposit must not rent the house.
	ErrHouseUnavailable = errors.New("house is no longer available")
)

// SettleState is the locked state of a booking and its house at verification time.
type SettleState struct {
	BookingStatus booking.Status
	DepositPaid   bool
	HouseStatus   house.Status
}

// SettleOutcome lists the writes a verified payment must apply.
type SettleOutcome struct {
	MarkDepositPaid bool
	MarkHouseRented bool

	// AlreadySettled: this deposit was recorded before; apply nothing and
	// report the same success.
	AlreadySettled bool
}

// Settle is the single place where "approved + deposit paid => house rented"
// is decided. Callers hold row locks on both the booking and the house and
// apply the outcome in the same transaction.
func Settle(s SettleState) (SettleOutcome, error) {
	if s.BookingStatus != booking.StatusApproved {
		return SettleOutcome{}, ErrNotApproved
	}
	if s.DepositPaid {
		return SettleOutcome{AlreadySettled: true}, nil
	}
	if s.HouseStatus != house.StatusAvailable {
		return SettleOutcome{}, ErrHouseUnavailable
	}
	return SettleOutcome{MarkDepositPaid: true, MarkHouseRented: true}, nil
}
