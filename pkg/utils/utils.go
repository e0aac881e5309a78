package utils

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ParseMonth parses a 1-based month path parameter
func ParseMonth(raw string) (int, error) {
	month, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("month must be an integer: %q", raw)
	}
	if month < 1 {
		return 0, fmt.Errorf("month must be a positive integer: %d", month)
	}
	return month, nil
}

// ParseID parses a resource identifier path parameter
func ParseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid identifier %q: %w", raw, err)
	}
	return id, nil
}

// NormalizeEmail lowercases and trims an email address so uniqueness checks are case-insensitive
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RoundCurrency rounds to cents
func RoundCurrency(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
