package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
)

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	if !isNotFound(fmt.Errorf("get profile: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped ErrNoRows to match")
	}
	if isNotFound(errors.New("connection reset")) {
		t.Fatalf("expected unrelated error to not match")
	}
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	if !isUniqueViolation(&pq.Error{Code: "23505"}) {
		t.Fatalf("expected unique violation")
	}
	if isUniqueViolation(&pq.Error{Code: "23503"}) {
		t.Fatalf("expected foreign key error to not match")
	}
}

func TestOptionalString(t *testing.T) {
	t.Parallel()

	if optionalString("   ") != nil {
		t.Fatalf("expected nil for blank")
	}
	if got := optionalString(" Jane "); got == nil || *got != "Jane" {
		t.Fatalf("unexpected value: %v", got)
	}
}

func TestNullDate(t *testing.T) {
	t.Parallel()

	got := nullDate(sql.NullTime{Time: time.Date(1995, 1, 1, 0, 0, 0, 0, time.UTC), Valid: true})
	if got != "1995-01-01" {
		t.Fatalf("unexpected date: %s", got)
	}
	if nullDate(sql.NullTime{}) != "" {
		t.Fatalf("expected empty date for null")
	}
}
