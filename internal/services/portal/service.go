package portal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"coopdesk/internal/charges"
	"coopdesk/internal/domain"
	"coopdesk/internal/funding"
	"coopdesk/internal/loans"
	"coopdesk/internal/services/resource"
)

const (
	pathWallet       = "/api/member/wallet"
	pathWalletTxns   = "/api/member/wallet/transactions"
	pathWalletFund   = "/api/member/wallet/fund"
	pathLoans        = "/api/member/loans"
	pathMortgages    = "/api/member/mortgages"
	pathCharges      = "/api/member/statutory-charges"
	pathMail         = "/api/member/mail"
	pathActivity     = "/api/member/activity-logs"
	pathProperties   = "/api/member/properties"
	pathEOI          = "/api/member/eoi"
	pathPaymentPlans = "/api/member/payment-plans"
)

// Mail folders.
const (
	FolderInbox = "inbox"
	FolderSent  = "sent"
)

// dashboardPageSize is the page size the dashboard walks lists with.
const dashboardPageSize = 100

var (
	// ErrInvalidAmount is returned for non-positive payment amounts.
	ErrInvalidAmount = errors.New("amount must be greater than zero")
	// ErrUnknownFolder is returned for a mail folder other than inbox or sent.
	ErrUnknownFolder = errors.New("folder must be inbox or sent")
	// ErrNoRecipients is returned when composing mail without recipients.
	ErrNoRecipients = errors.New("at least one recipient is required")
)

// Service implements domain.PortalService.
type Service struct {
	api        domain.APIClient
	feePercent float64
	now        func() time.Time
}

// New returns a portal service. feePercent is the early-termination fee
// applied by TerminationQuote.
func New(api domain.APIClient, feePercent float64) *Service {
	return &Service{api: api, feePercent: feePercent, now: time.Now}
}

// Dashboard fetches the wallet and every page of loans, mortgages and
// charges concurrently and summarises them. Any failed fetch fails the
// dashboard.
func (s *Service) Dashboard(ctx context.Context) (domain.DashboardSummary, error) {
	var (
		wallet    domain.Wallet
		loanList  []domain.Loan
		mortgages []domain.Mortgage
		chargeSet []domain.StatutoryCharge
	)
	q := domain.ListQuery{PerPage: dashboardPageSize}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		wallet, err = s.Wallet(gctx)
		return err
	})
	g.Go(func() (err error) {
		loanList, err = resource.Every[domain.Loan](gctx, s.api, pathLoans, q)
		return err
	})
	g.Go(func() (err error) {
		mortgages, err = resource.Every[domain.Mortgage](gctx, s.api, pathMortgages, q)
		return err
	})
	g.Go(func() (err error) {
		chargeSet, err = resource.Every[domain.StatutoryCharge](gctx, s.api, pathCharges, q)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.DashboardSummary{}, fmt.Errorf("dashboard: %w", err)
	}

	sum := domain.DashboardSummary{Wallet: wallet}
	for _, l := range loanList {
		if isLive(l.Status) {
			sum.ActiveLoans++
			sum.LoanOutstanding += loans.Outstanding(l)
		}
	}
	for _, m := range mortgages {
		if isLive(m.Status) {
			sum.ActiveMortgages++
			sum.MortgageOutstanding += mortgageOutstanding(m)
		}
	}
	cs := charges.Summarise(chargeSet, s.now())
	sum.PendingCharges = cs.Pending
	sum.OverdueCharges = cs.Overdue
	sum.ChargesDue = cs.Due
	return sum, nil
}

func isLive(status string) bool {
	switch strings.ToLower(status) {
	case "active", "approved", "disbursed", "running", "ongoing":
		return true
	}
	return false
}

func mortgageOutstanding(m domain.Mortgage) float64 {
	if m.OutstandingBal > 0 {
		return m.OutstandingBal.Float()
	}
	if rest := m.Principal.Float() - m.AmountPaid.Float(); rest > 0 {
		return rest
	}
	return 0
}

// Wallet returns the member's wallet.
func (s *Service) Wallet(ctx context.Context) (domain.Wallet, error) {
	return resource.Get[domain.Wallet](ctx, s.api, pathWallet)
}

// WalletTransactions lists wallet ledger entries.
func (s *Service) WalletTransactions(ctx context.Context, q domain.ListQuery) ([]domain.WalletTransaction, *domain.Pagination, error) {
	return resource.List[domain.WalletTransaction](ctx, s.api, pathWalletTxns, q)
}

// FundWallet starts a wallet top-up.
func (s *Service) FundWallet(ctx context.Context, req domain.FundWalletRequest) (domain.FundWalletResult, error) {
	if req.Amount <= 0 {
		return domain.FundWalletResult{}, ErrInvalidAmount
	}
	return resource.Send[domain.FundWalletResult](ctx, s.api, http.MethodPost, pathWalletFund, req)
}

// Loans lists the member's loans.
func (s *Service) Loans(ctx context.Context, q domain.ListQuery) ([]domain.Loan, *domain.Pagination, error) {
	return resource.List[domain.Loan](ctx, s.api, pathLoans, q)
}

// Loan returns one loan with its repayment schedule.
func (s *Service) Loan(ctx context.Context, id domain.ID) (domain.Loan, error) {
	return resource.Get[domain.Loan](ctx, s.api, resource.ID(pathLoans, id))
}

// ApplyLoan submits a loan application and returns the created loan.
func (s *Service) ApplyLoan(ctx context.Context, req domain.LoanApplication) (domain.Loan, error) {
	if req.Amount <= 0 {
		return domain.Loan{}, ErrInvalidAmount
	}
	if req.TenureMonths <= 0 {
		return domain.Loan{}, errors.New("tenure must be at least one month")
	}
	return resource.Send[domain.Loan](ctx, s.api, http.MethodPost, pathLoans, req)
}

// TerminationQuote estimates the cost of settling a loan at the given time.
func (s *Service) TerminationQuote(ctx context.Context, id domain.ID, at time.Time) (domain.TerminationQuote, error) {
	l, err := s.Loan(ctx, id)
	if err != nil {
		return domain.TerminationQuote{}, err
	}
	if at.IsZero() {
		at = s.now()
	}
	return loans.Quote(l, at, s.feePercent)
}

// Mortgages lists the member's mortgages.
func (s *Service) Mortgages(ctx context.Context, q domain.ListQuery) ([]domain.Mortgage, *domain.Pagination, error) {
	return resource.List[domain.Mortgage](ctx, s.api, pathMortgages, q)
}

// Charges lists statutory charges with their derived status filled in.
func (s *Service) Charges(ctx context.Context, q domain.ListQuery) ([]domain.StatutoryCharge, *domain.Pagination, error) {
	cs, pg, err := resource.List[domain.StatutoryCharge](ctx, s.api, pathCharges, q)
	if err != nil {
		return nil, nil, err
	}
	charges.Annotate(cs, s.now())
	return cs, pg, nil
}

// PayCharge pays a charge and returns it as refetched from the API.
func (s *Service) PayCharge(ctx context.Context, id domain.ID, req domain.ChargePayment) (domain.StatutoryCharge, error) {
	if req.Amount <= 0 {
		return domain.StatutoryCharge{}, ErrInvalidAmount
	}
	if _, err := s.api.Do(ctx, http.MethodPost, resource.ID(pathCharges, id, "pay"), nil, req, nil); err != nil {
		return domain.StatutoryCharge{}, err
	}
	c, err := resource.Get[domain.StatutoryCharge](ctx, s.api, resource.ID(pathCharges, id))
	if err != nil {
		return domain.StatutoryCharge{}, fmt.Errorf("refetch charge: %w", err)
	}
	c.Derived = charges.Status(c, s.now())
	return c, nil
}

// Mail lists one mailbox folder.
func (s *Service) Mail(ctx context.Context, folder string, q domain.ListQuery) ([]domain.MailMessage, *domain.Pagination, error) {
	folder = strings.ToLower(strings.TrimSpace(folder))
	if folder == "" {
		folder = FolderInbox
	}
	if folder != FolderInbox && folder != FolderSent {
		return nil, nil, ErrUnknownFolder
	}
	v := q.Values()
	v.Set("folder", folder)
	var msgs []domain.MailMessage
	pg, err := s.api.Do(ctx, http.MethodGet, pathMail, v, nil, &msgs)
	if err != nil {
		return nil, nil, err
	}
	return msgs, pg, nil
}

// ReadMail returns one message. The API marks it read.
func (s *Service) ReadMail(ctx context.Context, id domain.ID) (domain.MailMessage, error) {
	return resource.Get[domain.MailMessage](ctx, s.api, resource.ID(pathMail, id))
}

// SendMail sends a message to one or more members.
func (s *Service) SendMail(ctx context.Context, msg domain.ComposeMail) (domain.MailMessage, error) {
	if len(msg.Recipients) == 0 {
		return domain.MailMessage{}, ErrNoRecipients
	}
	if strings.TrimSpace(msg.Subject) == "" {
		return domain.MailMessage{}, errors.New("subject is required")
	}
	return resource.Send[domain.MailMessage](ctx, s.api, http.MethodPost, pathMail, msg)
}

// DeleteMail removes a message.
func (s *Service) DeleteMail(ctx context.Context, id domain.ID) error {
	_, err := s.api.Do(ctx, http.MethodDelete, resource.ID(pathMail, id), nil, nil, nil)
	return err
}

// Activity lists the member's own activity log.
func (s *Service) Activity(ctx context.Context, q domain.ListQuery) ([]domain.ActivityLog, *domain.Pagination, error) {
	return resource.List[domain.ActivityLog](ctx, s.api, pathActivity, q)
}

// Properties lists properties open for interest.
func (s *Service) Properties(ctx context.Context, q domain.ListQuery) ([]domain.Property, *domain.Pagination, error) {
	return resource.List[domain.Property](ctx, s.api, pathProperties, q)
}

// ExpressInterest records an expression of interest in a property.
func (s *Service) ExpressInterest(ctx context.Context, req domain.EOIRequest) (domain.EOI, error) {
	if req.PropertyID == "" {
		return domain.EOI{}, errors.New("property is required")
	}
	return resource.Send[domain.EOI](ctx, s.api, http.MethodPost, pathEOI, req)
}

// PaymentPlans lists the member's payment plans.
func (s *Service) PaymentPlans(ctx context.Context, q domain.ListQuery) ([]domain.PaymentPlan, *domain.Pagination, error) {
	return resource.List[domain.PaymentPlan](ctx, s.api, pathPaymentPlans, q)
}

// PaymentPlan returns a plan and, for mix-funded plans, the amount each
// payment method covers.
func (s *Service) PaymentPlan(ctx context.Context, id domain.ID) (domain.PaymentPlan, []domain.Allocation, error) {
	p, err := resource.Get[domain.PaymentPlan](ctx, s.api, resource.ID(pathPaymentPlans, id))
	if err != nil {
		return domain.PaymentPlan{}, nil, err
	}
	return p, funding.Allocate(p), nil
}

// Compile-time assertion that Service implements domain.PortalService.
var _ domain.PortalService = (*Service)(nil)
