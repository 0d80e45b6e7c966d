package booking

import "testing"

func TestParseDecision(t *testing.T) {
	for _, s := range []string{"approved", "rejected"} {
		if _, err := ParseDecision(s); err != nil {
			t.Fatalf("unexpected error for %q: %v", s, err)
		}
	}
	for _, s := range []string{"pending", "", "cancelled", "APPROVED"} {
		if _, err := ParseDecision(s); err == nil {
			t.Fatalf("expected error for %q", s)
		}
	}
}

func TestDecidable(t *testing.T) {
	if !Decidable(StatusPending) {
		t.Fatal("pending must be decidable")
	}
	// A decision is single-fire: once made, neither outcome can be revisited.
	if Decidable(StatusApproved) || Decidable(StatusRejected) {
		t.Fatal("approved and rejected must be terminal")
	}
}
