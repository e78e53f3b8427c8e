// Package funding computes the per-method breakdown of mix-funded payment
// plans for display.
package funding

import (
	"fmt"
	"math"
	"sort"

	"coopdesk/internal/domain"
)

// tolerance is how far the percentage total may drift from 100.
const tolerance = 0.01

// Allocate returns one entry per payment method, sorted by method name. A
// non-null server-supplied amount wins over the computed share
// percentage / 100 * total. Plans without mix allocations yield nil.
func Allocate(plan domain.PaymentPlan) []domain.Allocation {
	mix := plan.Configuration.MixAllocations
	if mix == nil || len(mix.Percentages) == 0 {
		return nil
	}
	methods := make([]string, 0, len(mix.Percentages))
	for m := range mix.Percentages {
		methods = append(methods, m)
	}
	sort.Strings(methods)

	total := plan.TotalAmount.Float()
	out := make([]domain.Allocation, 0, len(methods))
	for _, m := range methods {
		pct := mix.Percentages[m].Float()
		a := domain.Allocation{Method: m, Percentage: pct}
		if amt := mix.Amounts[m]; amt != nil {
			a.Amount = round2(amt.Float())
			a.FromServer = true
		} else {
			a.Amount = round2(pct / 100 * total)
		}
		out = append(out, a)
	}
	return out
}

// PercentageTotal sums the configured percentages.
func PercentageTotal(plan domain.PaymentPlan) float64 {
	mix := plan.Configuration.MixAllocations
	if mix == nil {
		return 0
	}
	var sum float64
	for _, p := range mix.Percentages {
		sum += p.Float()
	}
	return sum
}

// Check returns a warning when a mix-funded plan's percentages do not add
// up to 100. It never blocks display.
func Check(plan domain.PaymentPlan) error {
	if plan.Configuration.MixAllocations == nil {
		return nil
	}
	if sum := PercentageTotal(plan); math.Abs(sum-100) > tolerance {
		return fmt.Errorf("mix allocation percentages add up to %.2f%%, not 100%%", sum)
	}
	return nil
}

// Unallocated is the part of the total not covered by the allocations.
func Unallocated(plan domain.PaymentPlan, allocs []domain.Allocation) float64 {
	var sum float64
	for _, a := range allocs {
		sum += a.Amount
	}
	return round2(plan.TotalAmount.Float() - sum)
}

func round2(f float64) float64 { return math.Round(f*100) / 100 }
