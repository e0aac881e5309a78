// Package amortization derives fixed-payment schedules for monthly loans.
//
// Balances are carried unrounded; only emitted values are rounded to cents, so
// rounding error does not compound across months.
package amortization

import (
	"errors"
	"math"

	"github.com/segyhp/loan-tracker/internal/domain"

	"github.com/shopspring/decimal"
)

const (
	monthsPerYear        = 12
	percentageMultiplier = 100
	currencyPlaces       = 2
)

// ErrMonthOutOfRange is returned when a summary month is outside 1..termMonths.
var ErrMonthOutOfRange = errors.New("month out of range")

// MonthlyRate converts an annual percentage rate into the periodic monthly rate.
func MonthlyRate(annualRatePercent decimal.Decimal) float64 {
	return annualRatePercent.InexactFloat64() / percentageMultiplier / monthsPerYear
}

// MonthlyPayment returns the unrounded fixed payment for a fully amortizing loan.
// A zero rate splits the principal evenly across the term. For very large
// rates the payment approaches principal times the monthly rate.
func MonthlyPayment(principal decimal.Decimal, annualRatePercent decimal.Decimal, termMonths int) float64 {
	p := principal.InexactFloat64()
	i := MonthlyRate(annualRatePercent)
	if i == 0 {
		return p / float64(termMonths)
	}

	// p*i*(1+i)^n / ((1+i)^n - 1) with the power taken as (1+i)^-n so it cannot overflow
	return p * i / -math.Expm1(-float64(termMonths)*math.Log1p(i))
}

// remainingBalance is the balance after month k. It equals the running
// balance - payment + interest recurrence, written with non-positive
// exponents so float error is not amplified by (1+i)^k.
func remainingBalance(p, i float64, termMonths, k int) float64 {
	if i == 0 {
		return p * float64(termMonths-k) / float64(termMonths)
	}
	l := math.Log1p(i)
	return p * math.Expm1(float64(k-termMonths)*l) / math.Expm1(-float64(termMonths)*l)
}

// ComputeSchedule returns one entry per month, 1..termMonths in order.
// Callers validate that principal and termMonths are positive; a non-positive
// term yields an empty schedule.
func ComputeSchedule(principal decimal.Decimal, annualRatePercent decimal.Decimal, termMonths int) []domain.ScheduleEntry {
	if termMonths <= 0 {
		return nil
	}

	p := principal.InexactFloat64()
	i := MonthlyRate(annualRatePercent)
	payment := MonthlyPayment(principal, annualRatePercent, termMonths)
	balance := p

	schedule := make([]domain.ScheduleEntry, 0, termMonths)
	for month := 1; month <= termMonths; month++ {
		interest := balance * i
		balance = remainingBalance(p, i, termMonths, month)

		schedule = append(schedule, domain.ScheduleEntry{
			Month:            month,
			RemainingBalance: toCurrency(balance),
			MonthlyPayment:   toCurrency(payment),
			MonthlyInterest:  toCurrency(interest),
			PrincipalDue:     toCurrency(payment - interest),
		})
	}

	return schedule
}

// ComputeSummary rolls the schedule up to the given month. The schedule is
// derived from scratch on every call.
func ComputeSummary(principal decimal.Decimal, annualRatePercent decimal.Decimal, termMonths int, month int) (domain.Summary, error) {
	if month < 1 || month > termMonths {
		return domain.Summary{}, ErrMonthOutOfRange
	}

	schedule := ComputeSchedule(principal, annualRatePercent, termMonths)

	principalPaid := decimal.Zero
	interestPaid := decimal.Zero
	for _, entry := range schedule[:month] {
		principalPaid = principalPaid.Add(entry.PrincipalDue)
		interestPaid = interestPaid.Add(entry.MonthlyInterest)
	}

	return domain.Summary{
		Month:            month,
		PrincipalBalance: schedule[month-1].RemainingBalance.Round(currencyPlaces),
		PrincipalPaid:    principalPaid.Round(currencyPlaces),
		InterestPaid:     interestPaid.Round(currencyPlaces),
	}, nil
}

// toCurrency maps NaN and infinities to zero; decimal cannot represent them.
func toCurrency(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v).Round(currencyPlaces)
}
