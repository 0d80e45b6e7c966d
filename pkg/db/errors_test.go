package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "bookings_pending_unique"}
	if !IsUniqueViolation(dup) {
		t.Fatal("expected 23505 to be a unique violation")
	}
	if !IsUniqueViolation(fmt.Errorf("insert booking: %w", dup)) {
		t.Fatal("expected wrapped 23505 to be a unique violation")
	}
	if IsUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Fatal("foreign-key violation must not match")
	}
	if IsUniqueViolation(errors.New("connection refused")) {
		t.Fatal("plain error must not match")
	}
	if IsUniqueViolation(nil) {
		t.Fatal("nil must not match")
	}
}
