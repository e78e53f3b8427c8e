package interfaces

import (
	"context"
	"io"
	"time"

	domaintypes "coopdesk/internal/domain/types"
)

// AuthService signs users in and out.
type AuthService interface {
	Login(ctx context.Context, email, password, passphrase string) (domaintypes.Profile, error)
	Logout(ctx context.Context, passphrase string) error
	Me(ctx context.Context) (domaintypes.Member, error)
}

// PortalService backs the member screens.
type PortalService interface {
	Dashboard(ctx context.Context) (domaintypes.DashboardSummary, error)

	Wallet(ctx context.Context) (domaintypes.Wallet, error)
	WalletTransactions(ctx context.Context, q domaintypes.ListQuery) ([]domaintypes.WalletTransaction, *domaintypes.Pagination, error)
	FundWallet(ctx context.Context, req domaintypes.FundWalletRequest) (domaintypes.FundWalletResult, error)

	Loans(ctx context.Context, q domaintypes.ListQuery) ([]domaintypes.Loan, *domaintypes.Pagination, error)
	Loan(ctx context.Context, id domaintypes.ID) (domaintypes.Loan, error)
	ApplyLoan(ctx context.Context, req domaintypes.LoanApplication) (domaintypes.Loan, error)
	TerminationQuote(ctx context.Context, id domaintypes.ID, at time.Time) (domaintypes.TerminationQuote, error)

	Mortgages(ctx context.Context, q domaintypes.ListQuery) ([]domaintypes.Mortgage, *domaintypes.Pagination, error)

	Charges(ctx context.Context, q domaintypes.ListQuery) ([]domaintypes.StatutoryCharge, *domaintypes.Pagination, error)
	PayCharge(ctx context.Context, id domaintypes.ID, req domaintypes.ChargePayment) (domaintypes.StatutoryCharge, error)

	Mail(ctx context.Context, folder string, q domaintypes.ListQuery) ([]domaintypes.MailMessage, *domaintypes.Pagination, error)
	ReadMail(ctx context.Context, id domaintypes.ID) (domaintypes.MailMessage, error)
	SendMail(ctx context.Context, msg domaintypes.ComposeMail) (domaintypes.MailMessage, error)
	DeleteMail(ctx context.Context, id domaintypes.ID) error

	Activity(ctx context.Context, q domaintypes.ListQuery) ([]domaintypes.ActivityLog, *domaintypes.Pagination, error)

	Properties(ctx context.Context, q domaintypes.ListQuery) ([]domaintypes.Property, *domaintypes.Pagination, error)
	ExpressInterest(ctx context.Context, req domaintypes.EOIRequest) (domaintypes.EOI, error)
	PaymentPlans(ctx context.Context, q domaintypes.ListQuery) ([]domaintypes.PaymentPlan, *domaintypes.Pagination, error)
	PaymentPlan(ctx context.Context, id domaintypes.ID) (domaintypes.PaymentPlan, []domaintypes.Allocation, error)
}

// AdminService backs the tenant back-office screens.
type AdminService interface {
	Members(ctx context.Context, q domaintypes.ListQuery) ([]domaintypes.Member, *domaintypes.Pagination, error)
	ApproveMember(ctx context.Context, id domaintypes.ID) (domaintypes.Member, error)
	RejectMember(ctx context.Context, id domaintypes.ID, reason string) (domaintypes.Member, error)
	DeleteMember(ctx context.Context, id domaintypes.ID) error

	Loans(ctx context.Context, q domaintypes.ListQuery) ([]domaintypes.Loan, *domaintypes.Pagination, error)
	ApproveLoan(ctx context.Context, id domaintypes.ID) (domaintypes.Loan, error)
	RejectLoan(ctx context.Context, id domaintypes.ID, reason string) (domaintypes.Loan, error)

	UploadBulk(ctx context.Context, kind, filename string, r io.Reader, force bool) (domaintypes.BulkUploadResult, error)

	Roles(ctx context.Context) ([]domaintypes.AccessRole, error)
	Permissions(ctx context.Context) ([]domaintypes.Permission, error)
	CreateRole(ctx context.Context, req domaintypes.RoleRequest) (domaintypes.AccessRole, error)
	AssignRole(ctx context.Context, req domaintypes.RoleAssignment) error

	Branding(ctx context.Context) (domaintypes.Branding, error)
	UpdateBranding(ctx context.Context, b domaintypes.Branding) (domaintypes.Branding, error)

	ActivityLogs(ctx context.Context, q domaintypes.ListQuery) ([]domaintypes.ActivityLog, *domaintypes.Pagination, error)
}

// PlatformService backs the super-admin console.
type PlatformService interface {
	Businesses(ctx context.Context, q domaintypes.ListQuery) ([]domaintypes.Business, *domaintypes.Pagination, error)
	CreateBusiness(ctx context.Context, req domaintypes.BusinessRequest) (domaintypes.Business, error)
	SuspendBusiness(ctx context.Context, id domaintypes.ID) (domaintypes.Business, error)
	ActivateBusiness(ctx context.Context, id domaintypes.ID) (domaintypes.Business, error)
	Subscriptions(ctx context.Context, q domaintypes.ListQuery) ([]domaintypes.Subscription, *domaintypes.Pagination, error)
	Packages(ctx context.Context) ([]domaintypes.Package, error)
}
