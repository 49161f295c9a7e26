// Package billing holds the pure invoice arithmetic: consumption derivation,
// USD to LBP conversion and invoice totaling. Everything here is deterministic
// and side-effect free; validation of the inputs is the caller's job.
package billing

import "math"

// LBPRounding is the smallest LBP denomination in circulation. Converted
// amounts are rounded to the nearest multiple of it.
const LBPRounding = 1000

// Consumption derives kWh usage from two meter readings. The sign is
// preserved: a current reading below the previous one yields a negative
// result, which callers surface to a human rather than clamp.
func Consumption(previous, current float64) float64 {
	return current - previous
}

// ToLBP converts a USD amount to LBP at the given exchange rate, rounded
// half-up to the nearest LBPRounding. Rate must be positive; that is enforced
// by callers, not here.
func ToLBP(amountUSD, rate float64) float64 {
	return math.Floor(amountUSD*rate/LBPRounding+0.5) * LBPRounding
}

// ComputeInput carries the figures an invoice total is built from. All
// amounts are USD except ExchangeRate (LBP per USD).
type ComputeInput struct {
	Consumption         float64
	PricePerKwh         float64
	MonthlySubscription float64
	AdditionalPayments  float64
	Discount            float64
	ExchangeRate        float64
}

// Totals is the computed invoice total. EnergyCost and Subtotal are USD only;
// the final total is mirrored into LBP.
type Totals struct {
	EnergyCost float64 `json:"energyCost"`
	Subtotal   float64 `json:"subtotal"`
	TotalUSD   float64 `json:"totalUsd"`
	TotalLBP   float64 `json:"totalLbp"`
}

// Compute totals an invoice. A discount larger than the subtotal produces a
// negative total; no business rule forbids that.
func Compute(in ComputeInput) Totals {
	energyCost := in.Consumption * in.PricePerKwh
	subtotal := energyCost + in.MonthlySubscription + in.AdditionalPayments
	totalUSD := subtotal - in.Discount
	return Totals{
		EnergyCost: energyCost,
		Subtotal:   subtotal,
		TotalUSD:   totalUSD,
		TotalLBP:   ToLBP(totalUSD, in.ExchangeRate),
	}
}
