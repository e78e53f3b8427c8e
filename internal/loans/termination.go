// Package loans computes early-termination quotes for member loans.
//
// A quote is an estimate for display. Interest accrues simply on the
// outstanding balance from the last repayment (or disbursement, start or
// creation date, in that order) up to the quote date:
//
//	interest = outstanding * rate/100 * days/365
//	fee      = outstanding * feePercent/100
//	total    = outstanding + interest + fee
package loans

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"coopdesk/internal/domain"
	"coopdesk/internal/util/dateparse"
)

var (
	// ErrNotActive is returned for loans that cannot be terminated.
	ErrNotActive = errors.New("loan is not active")
	// ErrNoStartDate is returned when no date anchors interest accrual.
	ErrNoStartDate = errors.New("loan has no repayment, disbursement or start date")
)

var closed = map[string]bool{
	"completed":  true,
	"closed":     true,
	"terminated": true,
	"rejected":   true,
	"paid":       true,
	"declined":   true,
}

// Outstanding returns the balance still owed. The server's figure wins;
// otherwise principal less amount paid, never negative.
func Outstanding(l domain.Loan) float64 {
	if l.OutstandingBal > 0 {
		return l.OutstandingBal.Float()
	}
	if rest := l.Principal.Float() - l.AmountPaid.Float(); rest > 0 {
		return rest
	}
	return 0
}

// Quote estimates the cost of settling l on at.
func Quote(l domain.Loan, at time.Time, feePercent float64) (domain.TerminationQuote, error) {
	if closed[strings.ToLower(strings.TrimSpace(l.Status))] {
		return domain.TerminationQuote{}, fmt.Errorf("loan %s (%s): %w", l.ID, l.Status, ErrNotActive)
	}
	if feePercent < 0 {
		return domain.TerminationQuote{}, fmt.Errorf("termination fee percent %.2f is negative", feePercent)
	}
	loc := at.Location()
	since, ok := accrualStart(l, loc)
	if !ok {
		return domain.TerminationQuote{}, fmt.Errorf("loan %s: %w", l.ID, ErrNoStartDate)
	}
	days := dateparse.DaysBetween(since, at, loc)
	if days < 0 {
		days = 0
	}

	out := Outstanding(l)
	interest := round2(out * l.InterestRate / 100 * float64(days) / 365)
	fee := round2(out * feePercent / 100)
	return domain.TerminationQuote{
		LoanID:          l.ID,
		Outstanding:     round2(out),
		Days:            days,
		AccruedInterest: interest,
		Fee:             fee,
		Total:           round2(out + interest + fee),
		AsOf:            at.Format("2006-01-02"),
	}, nil
}

func accrualStart(l domain.Loan, loc *time.Location) (time.Time, bool) {
	for _, s := range []string{l.LastRepaymentAt, l.DisbursedAt, l.StartDate, l.CreatedAt} {
		if t, ok := dateparse.Parse(s, loc); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

func round2(f float64) float64 { return math.Round(f*100) / 100 }
