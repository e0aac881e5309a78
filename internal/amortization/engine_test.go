package amortization

import (
	"math"
	"testing"

	"github.com/segyhp/loan-tracker/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cent = decimal.NewFromFloat(0.01)

func withinTolerance(a, b, tolerance decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(tolerance)
}

func TestComputeSchedule(t *testing.T) {
	tests := []struct {
		name      string
		principal decimal.Decimal
		rate      decimal.Decimal
		months    int
	}{
		{name: "four year car loan", principal: decimal.NewFromInt(30000), rate: decimal.NewFromInt(3), months: 48},
		{name: "thirty year mortgage", principal: decimal.NewFromInt(350000), rate: decimal.NewFromFloat(6.25), months: 360},
		{name: "single month", principal: decimal.NewFromInt(1000), rate: decimal.NewFromInt(12), months: 1},
		{name: "fractional principal", principal: decimal.RequireFromString("2499.99"), rate: decimal.NewFromFloat(0.03), months: 24},
		{name: "zero rate", principal: decimal.NewFromInt(1200), rate: decimal.Zero, months: 12},
		{name: "forty year term", principal: decimal.NewFromInt(500000), rate: decimal.NewFromFloat(4.5), months: 480},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedule := ComputeSchedule(tt.principal, tt.rate, tt.months)
			require.Len(t, schedule, tt.months)

			first := schedule[0].MonthlyPayment
			for i, entry := range schedule {
				assert.Equal(t, i+1, entry.Month, "months must be 1..n without gaps")
				assert.True(t, entry.MonthlyPayment.Equal(first), "payment changed at month %d", entry.Month)
				assert.True(t,
					withinTolerance(entry.MonthlyPayment, entry.MonthlyInterest.Add(entry.PrincipalDue), cent),
					"month %d: %s != %s + %s", entry.Month, entry.MonthlyPayment, entry.MonthlyInterest, entry.PrincipalDue)
			}

			last := schedule[len(schedule)-1]
			assert.True(t, withinTolerance(last.RemainingBalance, decimal.Zero, decimal.NewFromFloat(0.5)),
				"final balance %s should be paid off", last.RemainingBalance)
		})
	}
}

func TestComputeSchedule_CarLoanRows(t *testing.T) {
	schedule := ComputeSchedule(decimal.NewFromInt(30000), decimal.NewFromInt(3), 48)
	require.Len(t, schedule, 48)

	assert.Equal(t, "664.03", schedule[0].MonthlyPayment.StringFixed(2))
	assert.Equal(t, "75.00", schedule[0].MonthlyInterest.StringFixed(2))
	assert.Equal(t, "589.03", schedule[0].PrincipalDue.StringFixed(2))
	assert.Equal(t, "29410.97", schedule[0].RemainingBalance.StringFixed(2))
	assert.Equal(t, "22833.64", schedule[11].RemainingBalance.StringFixed(2))

	for i := 1; i < len(schedule); i++ {
		assert.True(t, schedule[i].RemainingBalance.LessThan(schedule[i-1].RemainingBalance),
			"balance must decrease at month %d", schedule[i].Month)
	}
}

func TestComputeSchedule_ZeroRate(t *testing.T) {
	schedule := ComputeSchedule(decimal.NewFromInt(1200), decimal.Zero, 12)
	require.Len(t, schedule, 12)

	hundred := decimal.NewFromInt(100)
	for _, entry := range schedule {
		assert.True(t, entry.MonthlyPayment.Equal(hundred), "month %d payment %s", entry.Month, entry.MonthlyPayment)
		assert.True(t, entry.MonthlyInterest.IsZero(), "month %d interest %s", entry.Month, entry.MonthlyInterest)
		assert.True(t, entry.PrincipalDue.Equal(hundred))
	}
	assert.True(t, schedule[11].RemainingBalance.IsZero())
	assert.Equal(t, "1100", schedule[0].RemainingBalance.String())
}

func TestComputeSchedule_NonPositiveTerm(t *testing.T) {
	assert.Empty(t, ComputeSchedule(decimal.NewFromInt(1000), decimal.NewFromInt(5), 0))
	assert.Empty(t, ComputeSchedule(decimal.NewFromInt(1000), decimal.NewFromInt(5), -3))
}

func TestComputeSummary(t *testing.T) {
	principal := decimal.NewFromInt(30000)
	rate := decimal.NewFromInt(3)

	t.Run("first year of car loan", func(t *testing.T) {
		summary, err := ComputeSummary(principal, rate, 48, 12)
		require.NoError(t, err)

		assert.Equal(t, 12, summary.Month)
		assert.Equal(t, "802", summary.InterestPaid.Round(0).String())
		assert.Equal(t, "22833.64", summary.PrincipalBalance.StringFixed(2))
	})

	t.Run("principal paid plus balance recovers principal", func(t *testing.T) {
		for month := 1; month <= 48; month++ {
			summary, err := ComputeSummary(principal, rate, 48, month)
			require.NoError(t, err)
			assert.True(t, withinTolerance(summary.PrincipalPaid.Add(summary.PrincipalBalance), principal, decimal.NewFromFloat(0.5)),
				"month %d: %s + %s", month, summary.PrincipalPaid, summary.PrincipalBalance)
		}
	})

	t.Run("fully amortized at final month", func(t *testing.T) {
		summary, err := ComputeSummary(principal, rate, 48, 48)
		require.NoError(t, err)
		assert.True(t, withinTolerance(summary.PrincipalBalance, decimal.Zero, decimal.NewFromFloat(0.5)))
	})

	t.Run("zero rate", func(t *testing.T) {
		summary, err := ComputeSummary(decimal.NewFromInt(1200), decimal.Zero, 12, 6)
		require.NoError(t, err)
		assert.True(t, summary.PrincipalPaid.Equal(decimal.NewFromInt(600)))
		assert.True(t, summary.PrincipalBalance.Equal(decimal.NewFromInt(600)))
		assert.True(t, summary.InterestPaid.IsZero())
	})
}

func TestComputeSummary_MonthOutOfRange(t *testing.T) {
	principal := decimal.NewFromInt(30000)
	rate := decimal.NewFromInt(3)

	for _, month := range []int{0, -1, 49, 1000} {
		_, err := ComputeSummary(principal, rate, 48, month)
		assert.ErrorIs(t, err, ErrMonthOutOfRange, "month %d", month)
	}
}

func TestMonthlyPayment(t *testing.T) {
	assert.InDelta(t, 664.03, MonthlyPayment(decimal.NewFromInt(30000), decimal.NewFromInt(3), 48), 0.005)
	assert.InDelta(t, 100.0, MonthlyPayment(decimal.NewFromInt(1200), decimal.Zero, 12), 1e-9)
	assert.InDelta(t, 0.0025, MonthlyRate(decimal.NewFromInt(3)), 1e-12)
}

func TestComputeSchedule_ExtremeRates(t *testing.T) {
	tests := []struct {
		name            string
		principal       decimal.Decimal
		rate            decimal.Decimal
		months          int
		expectedPayment string
	}{
		{name: "3000 percent over 50 years", principal: decimal.NewFromInt(1000), rate: decimal.NewFromInt(3000), months: 600, expectedPayment: "2500.00"},
		{name: "largest stored rate", principal: decimal.NewFromInt(1000), rate: decimal.NewFromInt(99999), months: 600, expectedPayment: "83332.50"},
		{name: "tiny rate", principal: decimal.NewFromInt(1000), rate: decimal.RequireFromString("0.0001"), months: 600, expectedPayment: "1.67"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var schedule []domain.ScheduleEntry
			require.NotPanics(t, func() {
				schedule = ComputeSchedule(tt.principal, tt.rate, tt.months)
			})
			require.Len(t, schedule, tt.months)

			assert.Equal(t, tt.expectedPayment, schedule[0].MonthlyPayment.StringFixed(2))
			assert.True(t, schedule[tt.months-1].RemainingBalance.IsZero(),
				"final balance %s", schedule[tt.months-1].RemainingBalance)
			for _, entry := range schedule {
				assert.False(t, entry.RemainingBalance.IsNegative(), "month %d balance %s", entry.Month, entry.RemainingBalance)
			}
		})
	}
}

func TestComputeSummary_ExtremeRate(t *testing.T) {
	var summary domain.Summary
	var err error
	require.NotPanics(t, func() {
		summary, err = ComputeSummary(decimal.NewFromInt(1000), decimal.NewFromInt(99999), 600, 1)
	})
	require.NoError(t, err)

	assert.Equal(t, "1000.00", summary.PrincipalBalance.StringFixed(2))
	assert.Equal(t, "83332.50", summary.InterestPaid.StringFixed(2))
	assert.True(t, summary.PrincipalPaid.IsZero())
}

func TestToCurrency_NonFinite(t *testing.T) {
	assert.True(t, toCurrency(math.NaN()).IsZero())
	assert.True(t, toCurrency(math.Inf(1)).IsZero())
	assert.True(t, toCurrency(math.Inf(-1)).IsZero())
}
