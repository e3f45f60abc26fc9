package testutil

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	apperrors "nivesh/internal/errors"
)

// AssertAppError stops the test unless err unwraps to an *AppError carrying
// code. The matched error is returned for status or message checks.
func AssertAppError(t *testing.T, err error, code string) *apperrors.AppError {
	t.Helper()
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected app error %s, got %v", code, err)
	}
	if appErr.Code != code {
		t.Fatalf("expected app error %s, got %s (%s)", code, appErr.Code, appErr.Message)
	}
	return appErr
}

// AssertNoError stops the test on a non-nil err.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

// AssertDecimal compares got with the literal want by value, so 5 matches 5.00.
func AssertDecimal(t *testing.T, what string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(Dec(want)) {
		t.Errorf("expected %s %s, got %s", what, want, got)
	}
}
