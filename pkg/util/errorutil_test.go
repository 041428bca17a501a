package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
)

func TestToDomainError_PassesThrough(t *testing.T) {
	t.Parallel()

	original := NewConflict("email taken", nil)
	mapped := ToDomainError(original)
	if mapped.Code != "CONFLICT" || mapped.HTTPStatus != http.StatusConflict {
		t.Fatalf("unexpected mapping: %+v", mapped)
	}
}

func TestToDomainError_NoRows(t *testing.T) {
	t.Parallel()

	mapped := ToDomainError(pgx.ErrNoRows)
	if mapped.Code != "NOT_FOUND" || mapped.HTTPStatus != http.StatusNotFound {
		t.Fatalf("pgx.ErrNoRows should map to NOT_FOUND: %+v", mapped)
	}
}

func TestToDomainError_Unknown(t *testing.T) {
	t.Parallel()

	mapped := ToDomainError(errors.New("boom"))
	if mapped.Code != "INTERNAL_ERROR" || mapped.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("unknown errors should map to INTERNAL_ERROR: %+v", mapped)
	}
	if mapped.Message != "internal server error" {
		t.Fatalf("internal detail must not leak: %q", mapped.Message)
	}
}

func TestErrorStatuses(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"validation", NewValidationError("bad", nil), "VALIDATION_FAILED", http.StatusBadRequest},
		{"not found", NewNotFound("user", nil), "NOT_FOUND", http.StatusNotFound},
		{"unauthorized", NewUnauthorized("nope"), "UNAUTHORIZED", http.StatusUnauthorized},
		{"forbidden", NewForbidden("nope"), "FORBIDDEN", http.StatusForbidden},
		{"conflict", NewConflict("dup", nil), "CONFLICT", http.StatusConflict},
		{"expired", NewTokenExpired("old"), "TOKEN_EXPIRED", http.StatusBadRequest},
		{"invalid", NewTokenInvalid("bad"), "TOKEN_INVALID", http.StatusBadRequest},
		{"dependency", NewDependencyFailure("mail relay", errors.New("down")), "DEPENDENCY_FAILURE", http.StatusBadGateway},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			de := ToDomainError(tc.err)
			if de.Code != tc.code {
				t.Fatalf("code: got %q want %q", de.Code, tc.code)
			}
			if de.HTTPStatus != tc.status {
				t.Fatalf("status: got %d want %d", de.HTTPStatus, tc.status)
			}
		})
	}
}
