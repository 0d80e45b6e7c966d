package booking

import "fmt"

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// ParseDecision accepts only the two landlord decisions; "pending" is not a
// value a caller may set.
func ParseDecision(s string) (Status, error) {
	switch Status(s) {
	case StatusApproved, StatusRejected:
		return Status(s), nil
	default:
		return "", fmt.Errorf("invalid decision: %s", s)
	}
}

// Decidable reports whether a landlord decision may still be applied.
// Both approved and rejected are terminal for the decision.
func Decidable(s Status) bool {
	return s == StatusPending
}
