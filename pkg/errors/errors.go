package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrLoanNotFound      = errors.New("loan not found")
	ErrLoanAlreadyShared = errors.New("loan already shared with user")
	ErrNotLoanOwner      = errors.New("user is not the loan owner")
	ErrInvalidInput      = errors.New("invalid input")
	ErrMonthOutOfRange   = errors.New("month out of range")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeUserNotFound      = "USER_NOT_FOUND"
	ErrCodeUserAlreadyExists = "USER_ALREADY_EXISTS"
	ErrCodeLoanNotFound      = "LOAN_NOT_FOUND"
	ErrCodeLoanAlreadyShared = "LOAN_ALREADY_SHARED"
	ErrCodeNotLoanOwner      = "NOT_LOAN_OWNER"
	ErrCodeInvalidInput      = "INVALID_INPUT"
	ErrCodeMonthOutOfRange   = "MONTH_OUT_OF_RANGE"
	ErrCodeDatabaseError     = "DATABASE_ERROR"
	ErrCodeCacheError        = "CACHE_ERROR"
)

// Wrap common errors with business context
func WrapUserNotFound(userID string) *BusinessError {
	return NewBusinessError(
		ErrCodeUserNotFound,
		fmt.Sprintf("User with ID %s not found", userID),
		ErrUserNotFound,
	)
}

func WrapUserAlreadyExists(email string) *BusinessError {
	return NewBusinessError(
		ErrCodeUserAlreadyExists,
		fmt.Sprintf("User with email %s already exists", email),
		ErrUserAlreadyExists,
	)
}

func WrapLoanNotFound(loanID string) *BusinessError {
	return NewBusinessError(
		ErrCodeLoanNotFound,
		fmt.Sprintf("Loan with ID %s not found", loanID),
		ErrLoanNotFound,
	)
}

func WrapLoanAlreadyShared(loanID, userID string) *BusinessError {
	return NewBusinessError(
		ErrCodeLoanAlreadyShared,
		fmt.Sprintf("Loan with ID %s is already shared with user %s", loanID, userID),
		ErrLoanAlreadyShared,
	)
}

func WrapNotLoanOwner(loanID, userID string) *BusinessError {
	return NewBusinessError(
		ErrCodeNotLoanOwner,
		fmt.Sprintf("User %s does not own loan %s", userID, loanID),
		ErrNotLoanOwner,
	)
}

func WrapInvalidInput(message string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidInput,
		message,
		ErrInvalidInput,
	)
}

// WrapMonthOutOfRange keeps cause matchable so callers can test for the engine error as well.
func WrapMonthOutOfRange(month, termMonths int, cause error) *BusinessError {
	err := ErrMonthOutOfRange
	if cause != nil {
		err = errors.Join(ErrMonthOutOfRange, cause)
	}
	return NewBusinessError(
		ErrCodeMonthOutOfRange,
		fmt.Sprintf("Month %d is outside loan term 1..%d", month, termMonths),
		err,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"Cache operation failed",
		err,
	)
}

// Code extracts the business error code, or "" for other errors.
func Code(err error) string {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

// HTTPStatus maps an error to the status code the API answers with.
func HTTPStatus(err error) int {
	switch Code(err) {
	case ErrCodeUserNotFound, ErrCodeLoanNotFound:
		return http.StatusNotFound
	case ErrCodeUserAlreadyExists, ErrCodeLoanAlreadyShared:
		return http.StatusConflict
	case ErrCodeNotLoanOwner:
		return http.StatusForbidden
	case ErrCodeInvalidInput, ErrCodeMonthOutOfRange:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage is the message safe to return to API clients.
func PublicMessage(err error) string {
	var be *BusinessError
	if errors.As(err, &be) && HTTPStatus(err) != http.StatusInternalServerError {
		return be.Message
	}
	return "Internal server error"
}
