package utils

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// RoundRupiah rounds a monetary value to the nearest whole Rupiah, half up.
// The currency has no subunits in this domain, and rounding is applied to
// final amounts only, never to intermediate values.
func RoundRupiah(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(0)
}

// DaysBetween returns the whole number of days from 'from' to 'to', negative
// when 'to' precedes 'from'.
func DaysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

// PlanCacheKey builds the cache key for a customer's computed payment plans
// under one program. One key per (customer, program); writes overwrite.
func PlanCacheKey(customerID, programID string) string {
	return fmt.Sprintf("payment_plans:%s:%s", customerID, programID)
}
