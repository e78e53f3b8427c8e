package charges_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"coopdesk/internal/charges"
	"coopdesk/internal/domain"
)

var lagos = time.FixedZone("WAT", 3600)

func TestStatus(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 30, 0, 0, lagos)

	cases := []struct {
		name string
		c    domain.StatutoryCharge
		want string
	}{
		{"paid by status", domain.StatutoryCharge{Amount: 100, Status: "Paid", DueDate: "2020-01-01"}, charges.StatusPaid},
		{"paid by amount", domain.StatutoryCharge{Amount: 100, AmountPaid: 100, Status: "pending", DueDate: "2020-01-01"}, charges.StatusPaid},
		{"overdue yesterday", domain.StatutoryCharge{Amount: 100, Status: "pending", DueDate: "2026-10-18"}, charges.StatusOverdue},
		{"due today is not overdue", domain.StatutoryCharge{Amount: 100, Status: "pending", DueDate: "2026-10-19"}, charges.StatusPending},
		{"late today in UTC timestamp", domain.StatutoryCharge{Amount: 100, Status: "pending", DueDate: "2026-10-18T23:30:00Z"}, charges.StatusPending},
		{"partial", domain.StatutoryCharge{Amount: 100, AmountPaid: 40, Status: "pending", DueDate: "2026-12-01"}, charges.StatusPartial},
		{"partial and late is overdue", domain.StatutoryCharge{Amount: 100, AmountPaid: 40, DueDate: "2026-01-01"}, charges.StatusOverdue},
		{"no due date", domain.StatutoryCharge{Amount: 100, Status: "pending"}, charges.StatusPending},
		{"garbage due date", domain.StatutoryCharge{Amount: 100, Status: "pending", DueDate: "soon"}, charges.StatusPending},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, charges.Status(tc.c, now))
		})
	}
}

func TestSummarise(t *testing.T) {
	now := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	cs := []domain.StatutoryCharge{
		{Amount: 100, AmountPaid: 100},
		{Amount: 250, DueDate: "2026-09-30"},
		{Amount: 300, AmountPaid: 50, DueDate: "2026-11-30"},
		{Amount: 80, DueDate: "2026-12-31"},
	}

	s := charges.Summarise(cs, now)
	assert.Equal(t, 1, s.Overdue)
	assert.Equal(t, 2, s.Pending)
	assert.InDelta(t, 250+250+80, s.Due, 1e-9)

	charges.Annotate(cs, now)
	assert.Equal(t, []string{"paid", "overdue", "partially_paid", "pending"},
		[]string{cs[0].Derived, cs[1].Derived, cs[2].Derived, cs[3].Derived})
}
