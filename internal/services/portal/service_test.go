package portal

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coopdesk/internal/api"
	"coopdesk/internal/charges"
	"coopdesk/internal/domain"
	"coopdesk/internal/services/servicetest"
)

var fixedNow = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

func newTestService(fake *servicetest.API, fee float64) *Service {
	s := New(fake, fee)
	s.now = func() time.Time { return fixedNow }
	return s
}

func TestDashboard_Summarises(t *testing.T) {
	fake := servicetest.New().
		On(http.MethodGet, pathWallet, map[string]any{"id": 1, "balance": "25,000.50"}).
		On(http.MethodGet, pathLoans, []map[string]any{
			{"id": 1, "principal": 100000, "outstanding_balance": 40000, "status": "active"},
			{"id": 2, "principal": 50000, "amount_paid": 10000, "status": "disbursed"},
			{"id": 3, "principal": 70000, "status": "closed"},
		}).
		On(http.MethodGet, pathMortgages, []map[string]any{
			{"id": 9, "principal": 1000000, "amount_paid": 250000, "status": "active"},
		}).
		On(http.MethodGet, pathCharges, []map[string]any{
			{"id": 1, "title": "Service", "amount": 5000, "due_date": "2024-06-01", "status": "pending"},
			{"id": 2, "title": "Levy", "amount": 2000, "due_date": "2024-07-01", "status": "pending"},
			{"id": 3, "title": "Old", "amount": 1000, "amount_paid": 1000, "due_date": "2024-01-01"},
		})

	sum, err := newTestService(fake, 0).Dashboard(context.Background())
	require.NoError(t, err)

	assert.InDelta(t, 25000.50, sum.Wallet.Balance.Float(), 1e-9)
	assert.Equal(t, 2, sum.ActiveLoans)
	assert.InDelta(t, 80000, sum.LoanOutstanding, 1e-9)
	assert.Equal(t, 1, sum.ActiveMortgages)
	assert.InDelta(t, 750000, sum.MortgageOutstanding, 1e-9)
	assert.Equal(t, 1, sum.OverdueCharges)
	assert.Equal(t, 1, sum.PendingCharges)
	assert.InDelta(t, 7000, sum.ChargesDue, 1e-9)

	for _, c := range fake.Calls() {
		if c.Method == http.MethodGet && c.Path != pathWallet {
			assert.Equal(t, "100", c.Query.Get("per_page"), c.Path)
		}
	}
}

func TestDashboard_SummarisesEveryPage(t *testing.T) {
	fake := servicetest.New().
		On(http.MethodGet, pathWallet, map[string]any{"balance": 0}).
		OnPaged(http.MethodGet, pathLoans,
			[]map[string]any{{"id": 1, "outstanding_balance": 1000, "status": "active"}},
			[]map[string]any{{"id": 2, "outstanding_balance": 2500, "status": "active"}},
		).
		On(http.MethodGet, pathMortgages, []any{}).
		OnPaged(http.MethodGet, pathCharges,
			[]map[string]any{{"id": 1, "amount": 300, "due_date": "2024-06-01"}},
			[]map[string]any{{"id": 2, "amount": 200, "due_date": "2024-07-01"}},
			[]map[string]any{{"id": 3, "amount": 100, "amount_paid": 40, "due_date": "2024-07-01"}},
		)

	sum, err := newTestService(fake, 0).Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, sum.ActiveLoans)
	assert.InDelta(t, 3500, sum.LoanOutstanding, 1e-9)
	assert.Equal(t, 1, sum.OverdueCharges)
	assert.Equal(t, 2, sum.PendingCharges)
	assert.InDelta(t, 560, sum.ChargesDue, 1e-9)

	var chargePages []string
	for _, c := range fake.Calls() {
		if c.Path == pathCharges {
			chargePages = append(chargePages, c.Query.Get("page"))
		}
	}
	assert.ElementsMatch(t, []string{"1", "2", "3"}, chargePages)
}

func TestDashboard_OneFailureFailsAll(t *testing.T) {
	fake := servicetest.New().
		On(http.MethodGet, pathWallet, map[string]any{"balance": 1}).
		On(http.MethodGet, pathLoans, []any{}).
		Fail(http.MethodGet, pathMortgages, &api.Error{Status: http.StatusInternalServerError, Message: "boom"}).
		On(http.MethodGet, pathCharges, []any{})

	_, err := newTestService(fake, 0).Dashboard(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dashboard")
}

func TestCharges_AnnotatesDerivedStatus(t *testing.T) {
	fake := servicetest.New().
		OnPage(http.MethodGet, pathCharges, []map[string]any{
			{"id": 1, "amount": 5000, "due_date": "2024-06-14"},
			{"id": 2, "amount": 5000, "due_date": "2024-06-15"},
			{"id": 3, "amount": 5000, "amount_paid": 2000, "due_date": "not a date"},
		}, &domain.Pagination{CurrentPage: 1, LastPage: 3, Total: 25})

	cs, pg, err := newTestService(fake, 0).Charges(context.Background(), domain.ListQuery{Status: "pending"})
	require.NoError(t, err)
	require.Len(t, cs, 3)
	assert.Equal(t, charges.StatusOverdue, cs[0].Derived)
	assert.Equal(t, charges.StatusPending, cs[1].Derived)
	assert.Equal(t, charges.StatusPartial, cs[2].Derived)
	require.NotNil(t, pg)
	assert.True(t, pg.HasNext())
	assert.Equal(t, "pending", fake.Calls()[0].Query.Get("status"))
}

func TestPayCharge_PostsThenRefetches(t *testing.T) {
	fake := servicetest.New().
		On(http.MethodPost, pathCharges+"/7/pay", nil).
		On(http.MethodGet, pathCharges+"/7", map[string]any{"id": 7, "amount": 100, "amount_paid": 100, "status": "paid"})

	c, err := newTestService(fake, 0).PayCharge(context.Background(), "7", domain.ChargePayment{Amount: 100, Method: "wallet"})
	require.NoError(t, err)
	assert.Equal(t, charges.StatusPaid, c.Derived)

	calls := fake.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, http.MethodPost, calls[0].Method)
	assert.Equal(t, domain.ChargePayment{Amount: 100, Method: "wallet"}, calls[0].Body)
	assert.Equal(t, http.MethodGet, calls[1].Method)
}

func TestPayCharge_RejectsZeroAmount(t *testing.T) {
	fake := servicetest.New()
	_, err := newTestService(fake, 0).PayCharge(context.Background(), "7", domain.ChargePayment{})
	assert.ErrorIs(t, err, ErrInvalidAmount)
	assert.Empty(t, fake.Calls())
}

func TestTerminationQuote_UsesConfiguredFee(t *testing.T) {
	fake := servicetest.New().
		On(http.MethodGet, pathLoans+"/5", map[string]any{
			"id":                  5,
			"principal":           "120000",
			"outstanding_balance": "100000",
			"interest_rate":       36.5,
			"status":              "active",
			"last_repayment_at":   "2024-06-05",
		})

	q, err := newTestService(fake, 2).TerminationQuote(context.Background(), "5", time.Time{})
	require.NoError(t, err)
	assert.Equal(t, domain.ID("5"), q.LoanID)
	assert.Equal(t, 10, q.Days)
	assert.InDelta(t, 1000, q.AccruedInterest, 1e-9)
	assert.InDelta(t, 2000, q.Fee, 1e-9)
	assert.InDelta(t, 103000, q.Total, 1e-9)
}

func TestMail_FolderValidation(t *testing.T) {
	fake := servicetest.New().On(http.MethodGet, pathMail, []map[string]any{{"id": 1, "subject": "Hi"}})
	s := newTestService(fake, 0)

	msgs, _, err := s.Mail(context.Background(), "", domain.ListQuery{Page: 2})
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	q := fake.Calls()[0].Query
	assert.Equal(t, FolderInbox, q.Get("folder"))
	assert.Equal(t, "2", q.Get("page"))

	_, _, err = s.Mail(context.Background(), "drafts", domain.ListQuery{})
	assert.ErrorIs(t, err, ErrUnknownFolder)
}

func TestSendMail_Validation(t *testing.T) {
	s := newTestService(servicetest.New(), 0)
	_, err := s.SendMail(context.Background(), domain.ComposeMail{Subject: "x"})
	assert.ErrorIs(t, err, ErrNoRecipients)
	_, err = s.SendMail(context.Background(), domain.ComposeMail{Recipients: []domain.ID{"1"}})
	assert.Error(t, err)
}

func TestPaymentPlan_ReturnsAllocations(t *testing.T) {
	fake := servicetest.New().On(http.MethodGet, pathPaymentPlans+"/3", map[string]any{
		"id":             3,
		"funding_option": "mix",
		"total_amount":   "1000000",
		"configuration": map[string]any{
			"mix_allocations": map[string]any{
				"percentages": map[string]any{"wallet": 40, "mortgage": 60},
				"amounts":     map[string]any{"mortgage": "600500"},
			},
		},
	})

	plan, allocs, err := newTestService(fake, 0).PaymentPlan(context.Background(), "3")
	require.NoError(t, err)
	assert.Equal(t, "mix", plan.FundingOption)
	require.Len(t, allocs, 2)
	assert.Equal(t, "mortgage", allocs[0].Method)
	assert.InDelta(t, 600500, allocs[0].Amount, 1e-9)
	assert.True(t, allocs[0].FromServer)
	assert.Equal(t, "wallet", allocs[1].Method)
	assert.InDelta(t, 400000, allocs[1].Amount, 1e-9)
}

func TestLoan_NotFoundIsSentinel(t *testing.T) {
	_, err := newTestService(servicetest.New(), 0).Loan(context.Background(), "404")
	assert.True(t, errors.Is(err, api.ErrNotFound))
}
