package domain

import (
	"time"

	"github.com/google/uuid"
)

// Link types between a user and a loan
const (
	UserTypeOwner  = "owner"
	UserTypeViewer = "viewer"
)

// User represents a registered borrower
type User struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// UserLoan links a user to a loan they own or can view
type UserLoan struct {
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	LoanID    uuid.UUID `json:"loan_id" db:"loan_id"`
	UserType  string    `json:"user_type" db:"user_type"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// UserLoanView is a loan as seen from one of its linked users
type UserLoanView struct {
	Loan
	UserType string `json:"user_type" db:"user_type"`
}

// LoanMember is a user as seen from one of their linked loans
type LoanMember struct {
	User
	UserType string `json:"user_type" db:"user_type"`
}

type CreateUserRequest struct {
	Name  string `json:"name" validate:"required,max=255"`
	Email string `json:"email" validate:"required,email,max=255"`
}

type UserLoansResponse struct {
	UserID uuid.UUID       `json:"user_id"`
	Loans  []*UserLoanView `json:"loans"`
}
