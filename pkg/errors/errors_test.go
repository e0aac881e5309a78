package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "loan not found", err: WrapLoanNotFound("abc"), expected: http.StatusNotFound},
		{name: "user not found", err: WrapUserNotFound("abc"), expected: http.StatusNotFound},
		{name: "duplicate user", err: WrapUserAlreadyExists("a@b.c"), expected: http.StatusConflict},
		{name: "already shared", err: WrapLoanAlreadyShared("l", "u"), expected: http.StatusConflict},
		{name: "not owner", err: WrapNotLoanOwner("l", "u"), expected: http.StatusForbidden},
		{name: "invalid input", err: WrapInvalidInput("bad"), expected: http.StatusBadRequest},
		{name: "month out of range", err: WrapMonthOutOfRange(49, 48, nil), expected: http.StatusBadRequest},
		{name: "wrapped business error", err: fmt.Errorf("outer: %w", WrapLoanNotFound("abc")), expected: http.StatusNotFound},
		{name: "database error", err: WrapDatabaseError(errors.New("boom")), expected: http.StatusInternalServerError},
		{name: "plain error", err: errors.New("boom"), expected: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

func TestWrapMonthOutOfRange_KeepsCause(t *testing.T) {
	cause := errors.New("engine: month out of range")
	err := WrapMonthOutOfRange(0, 12, cause)

	assert.ErrorIs(t, err, ErrMonthOutOfRange)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, ErrCodeMonthOutOfRange, Code(err))
	assert.Contains(t, err.Error(), "outside loan term 1..12")
}

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, "Loan with ID abc not found", PublicMessage(WrapLoanNotFound("abc")))
	assert.Equal(t, "Internal server error", PublicMessage(WrapDatabaseError(errors.New("password=secret"))))
	assert.Equal(t, "Internal server error", PublicMessage(errors.New("boom")))
}
