// Package charges derives display status for statutory charges.
package charges

import (
	"strings"
	"time"

	"coopdesk/internal/domain"
	"coopdesk/internal/util/dateparse"
)

const (
	StatusPaid    = "paid"
	StatusPartial = "partially_paid"
	StatusOverdue = "overdue"
	StatusPending = "pending"
)

// settled lists server statuses that mean nothing more is owed.
var settled = map[string]bool{
	"paid":      true,
	"completed": true,
	"settled":   true,
	"waived":    true,
}

// IsPaid reports whether the charge is settled, either by server status or
// because the amount paid covers the amount.
func IsPaid(c domain.StatutoryCharge) bool {
	if settled[strings.ToLower(strings.TrimSpace(c.Status))] {
		return true
	}
	return c.Amount > 0 && c.AmountPaid >= c.Amount
}

// IsOverdue reports whether an unpaid charge's due date is before today in
// now's location. A missing or unreadable due date is never overdue.
func IsOverdue(c domain.StatutoryCharge, now time.Time) bool {
	if IsPaid(c) {
		return false
	}
	loc := now.Location()
	due, ok := dateparse.Parse(c.DueDate, loc)
	if !ok {
		return false
	}
	return dateparse.Day(due, loc).Before(dateparse.Day(now, loc))
}

// Status derives one of StatusPaid, StatusOverdue, StatusPartial or
// StatusPending.
func Status(c domain.StatutoryCharge, now time.Time) string {
	switch {
	case IsPaid(c):
		return StatusPaid
	case IsOverdue(c, now):
		return StatusOverdue
	case c.AmountPaid > 0:
		return StatusPartial
	}
	return StatusPending
}

// Outstanding is what remains to be paid, never negative.
func Outstanding(c domain.StatutoryCharge) float64 {
	if IsPaid(c) {
		return 0
	}
	if rest := c.Amount.Float() - c.AmountPaid.Float(); rest > 0 {
		return rest
	}
	return 0
}

// Annotate fills Derived on each charge in place.
func Annotate(cs []domain.StatutoryCharge, now time.Time) {
	for i := range cs {
		cs[i].Derived = Status(cs[i], now)
	}
}

// Summary counts charges by derived status and totals what is still owed.
type Summary struct {
	Pending int
	Overdue int
	Due     float64
}

// Summarise derives status for every charge and tallies the unpaid ones.
func Summarise(cs []domain.StatutoryCharge, now time.Time) Summary {
	var s Summary
	for _, c := range cs {
		switch Status(c, now) {
		case StatusOverdue:
			s.Overdue++
		case StatusPending, StatusPartial:
			s.Pending++
		default:
			continue
		}
		s.Due += Outstanding(c)
	}
	return s
}
