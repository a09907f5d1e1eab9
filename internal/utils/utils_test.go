package utils

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsPGCheckViolation(t *testing.T) {
	check := &pgconn.PgError{Code: "23514"}
	unique := &pgconn.PgError{Code: "23505"}

	if !IsPGCheckViolation(check) {
		t.Error("expected 23514 to be a check violation")
	}
	if !IsCheckViolation(fmt.Errorf("update todo: %w", check)) {
		t.Error("expected wrapped 23514 to be a check violation")
	}
	if IsPGCheckViolation(unique) {
		t.Error("23505 is not a check violation")
	}
	if IsCheckViolation(errors.New("boom")) {
		t.Error("plain error is not a check violation")
	}
	if IsCheckViolation(nil) {
		t.Error("nil is not a check violation")
	}
}
