package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Loan represents a loan entity
type Loan struct {
	ID                 uuid.UUID       `json:"id" db:"id"`
	Amount             decimal.Decimal `json:"amount" db:"amount"`
	AnnualInterestRate decimal.Decimal `json:"annual_interest_rate" db:"annual_interest_rate"`
	LoanTermInMonths   int             `json:"loan_term_in_months" db:"loan_term_in_months"`
	CreatedAt          time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at" db:"updated_at"`
}

// DTOs for requests and responses

type CreateLoanRequest struct {
	OwnerID            uuid.UUID       `json:"owner_id" validate:"required"`
	Amount             decimal.Decimal `json:"amount" validate:"decimal_gt=0,decimal_lt=10000000000000"`
	// Percentage points, 3.0 means 3%
	AnnualInterestRate decimal.Decimal `json:"annual_interest_rate" validate:"decimal_gte=0,decimal_lt=100000"`
	LoanTermInMonths   int             `json:"loan_term_in_months" validate:"required,gt=0"`
}

type ShareLoanRequest struct {
	OwnerID uuid.UUID `json:"owner_id" validate:"required"`
	UserID  uuid.UUID `json:"user_id" validate:"required"`
}

type LoanUsersResponse struct {
	LoanID uuid.UUID     `json:"loan_id"`
	Users  []*LoanMember `json:"users"`
}
