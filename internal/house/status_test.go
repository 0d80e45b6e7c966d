package house

import "testing"

func TestAdminTransitions(t *testing.T) {
	allowed := []struct{ from, to Status }{
		{StatusPendingApproval, StatusAvailable},
		{StatusPendingApproval, StatusHidden},
		{StatusAvailable, StatusHidden},
		{StatusHidden, StatusAvailable},
	}
	for _, tc := range allowed {
		if !CanAdminTransition(tc.from, tc.to) {
			t.Fatalf("expected %s -> %s to be allowed", tc.from, tc.to)
		}
	}

	denied := []struct{ from, to Status }{
		{StatusRented, StatusAvailable},
		{StatusRented, StatusHidden},
		{StatusAvailable, StatusRented},
		{StatusPendingApproval, StatusRented},
		{StatusHidden, StatusRented},
		{StatusAvailable, StatusPendingApproval},
	}
	for _, tc := range denied {
		if CanAdminTransition(tc.from, tc.to) {
			t.Fatalf("expected %s -> %s to be denied", tc.from, tc.to)
		}
	}
}

func TestParseStatus(t *testing.T) {
	if _, err := ParseStatus("available"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseStatus("sold"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestBookable(t *testing.T) {
	if !Bookable(StatusAvailable) {
		t.Fatal("available must be bookable")
	}
	for _, s := range []Status{StatusPendingApproval, StatusRented, StatusHidden} {
		if Bookable(s) {
			t.Fatalf("%s must not be bookable", s)
		}
	}
}
