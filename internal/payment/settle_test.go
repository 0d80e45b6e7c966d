package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Jogoraa/Woliso-Rentals/internal/booking"
	"github.com/Jogoraa/Woliso-Rentals/internal/house"
)

func TestSettle_ApprovedUnpaidAvailable(t *testing.T) {
	out, err := Settle(SettleState{
		BookingStatus: booking.StatusApproved,
		DepositPaid:   false,
		HouseStatus:   house.StatusAvailable,
	})
	assert.NoError(t, err)
	assert.True(t, out.MarkDepositPaid)
	assert.True(t, out.MarkHouseRented)
	assert.False(t, out.AlreadySettled)
}

func TestSettle_IdempotentOnSecondVerify(t *testing.T) {
	// After the first settlement the booking is paid and the house rented;
	// a repeat verification must succeed without a second rented transition.
	out, err := Settle(SettleState{
		BookingStatus: booking.StatusApproved,
		DepositPaid:   true,
		HouseStatus:   house.StatusRented,
	})
	assert.NoError(t, err)
	assert.True(t, out.AlreadySettled)
	assert.False(t, out.MarkDepositPaid)
	assert.False(t, out.MarkHouseRented)
}

func TestSettle_RejectsUnapprovedBooking(t *testing.T) {
	for _, s := range []booking.Status{booking.StatusPending, booking.StatusRejected} {
		_, err := Settle(SettleState{BookingStatus: s, HouseStatus: house.StatusAvailable})
		assert.ErrorIs(t, err, ErrNotApproved)
	}
}

func TestSettle_HouseTakenByAnotherBooking(t *testing.T) {
	// Two approved bookings can exist on one house; only the first deposit to
	// verify wins. The second finds the house rented with its own deposit unpaid.
	_, err := Settle(SettleState{
		BookingStatus: booking.StatusApproved,
		DepositPaid:   false,
		HouseStatus:   house.StatusRented,
	})
	assert.ErrorIs(t, err, ErrHouseUnavailable)
}

func TestSettle_HiddenHouseDoesNotRent(t *testing.T) {
	_, err := Settle(SettleState{
		BookingStatus: booking.StatusApproved,
		DepositPaid:   false,
		HouseStatus:   house.StatusHidden,
	})
	assert.ErrorIs(t, err, ErrHouseUnavailable)
}
