package house

import "fmt"

type Status string

const (
	StatusPendingApproval Status = "pending_approval"
	StatusAvailable       Status = "available"
	StatusRented          Status = "rented"
	StatusHidden          Status = "hidden"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPendingApproval, StatusAvailable, StatusRented, StatusHidden:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown status: %s", s)
	}
}

// adminTransitions are the moves an admin may make. Renting is owned by payment
// settlement and a rented house never changes status again.
var adminTransitions = map[Status]map[Status]bool{
	StatusPendingApproval: {StatusAvailable: true, StatusHidden: true},
	StatusAvailable:       {StatusHidden: true},
	StatusHidden:          {StatusAvailable: true},
	StatusRented:          {},
}

func CanAdminTransition(from, to Status) bool {
	m, ok := adminTransitions[from]
	if !ok {
		return false
	}
	return m[to]
}

// Bookable reports whether tenants may request a booking in this status.
func Bookable(s Status) bool {
	return s == StatusAvailable
}
