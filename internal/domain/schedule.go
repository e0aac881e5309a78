package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ScheduleEntry is one month of an amortization schedule.
// Every amount is rounded to cents.
type ScheduleEntry struct {
	Month            int             `json:"month"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	MonthlyPayment   decimal.Decimal `json:"monthly_payment"`
	MonthlyInterest  decimal.Decimal `json:"monthly_interest"`
	PrincipalDue     decimal.Decimal `json:"principal_due"`
}

// Summary is the state of a loan as of a given month
type Summary struct {
	Month            int             `json:"month"`
	PrincipalBalance decimal.Decimal `json:"principal_balance"`
	PrincipalPaid    decimal.Decimal `json:"principal_paid"`
	InterestPaid     decimal.Decimal `json:"interest_paid"`
}

type ScheduleResponse struct {
	LoanID   uuid.UUID       `json:"loan_id"`
	Schedule []ScheduleEntry `json:"schedule"`
}

type SummaryResponse struct {
	LoanID uuid.UUID `json:"loan_id"`
	Summary
}
