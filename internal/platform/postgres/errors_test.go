package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	pgErr := &pgconn.PgError{Code: pgUniqueViolationCode}
	if !isUniqueViolation(pgErr) {
		t.Error("Expected unique violation to be detected")
	}

	if !isUniqueViolation(fmt.Errorf("insert failed: %w", pgErr)) {
		t.Error("Expected wrapped unique violation to be detected")
	}

	if isUniqueViolation(&pgconn.PgError{Code: pgForeignKeyViolationCode}) {
		t.Error("Expected foreign key violation to not match")
	}

	if isUniqueViolation(errors.New("not a pg error")) {
		t.Error("Expected non-pg error to not match")
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	t.Parallel()

	pgErr := &pgconn.PgError{
		Code:           pgForeignKeyViolationCode,
		ConstraintName: "study_sessions_group_id_fkey",
	}

	constraint, ok := isForeignKeyViolation(fmt.Errorf("insert failed: %w", pgErr))
	if !ok {
		t.Fatal("Expected foreign key violation to be detected")
	}
	if constraint != "study_sessions_group_id_fkey" {
		t.Errorf("Expected constraint name to round-trip, got %q", constraint)
	}

	if _, ok := isForeignKeyViolation(&pgconn.PgError{Code: pgUniqueViolationCode}); ok {
		t.Error("Expected unique violation to not match")
	}

	if _, ok := isForeignKeyViolation(nil); ok {
		t.Error("Expected nil to not match")
	}
}
