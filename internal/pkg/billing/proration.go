package billing

import (
	"math"
	"time"
)

// AnnualFullPrice is the list price in dollars of one full-year seat. Sub-user
// seats are charged the prorated remainder of the primary's term against it.
const AnnualFullPrice = 2000.0

// RemainingWholeDays returns the whole days from now until end, clamped to
// zero. A nil end date counts as expired.
func RemainingWholeDays(now time.Time, end *time.Time) int {
	if end == nil {
		return 0
	}
	days := int(end.Sub(now).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// ProratedCost is the dollar cost of a seat for the remaining term:
// remainingDays / 365 * AnnualFullPrice.
func ProratedCost(remainingDays int) float64 {
	return float64(remainingDays) / 365.0 * AnnualFullPrice
}

// ChargeAmountCents converts a dollar cost to the minor-unit amount passed to
// the billing provider.
func ChargeAmountCents(cost float64) int64 {
	return int64(math.Round(cost * 100))
}
