package domain

import (
	interfaces "coopdesk/internal/domain/interfaces"
	types "coopdesk/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	ID                = types.ID
	TenantSlug        = types.TenantSlug
	Role              = types.Role
	Amount            = types.Amount
	Pagination        = types.Pagination
	ListQuery         = types.ListQuery
	Member            = types.Member
	Credentials       = types.Credentials
	AuthResult        = types.AuthResult
	RejectRequest     = types.RejectRequest
	Wallet            = types.Wallet
	WalletTransaction = types.WalletTransaction
	FundWalletRequest = types.FundWalletRequest
	FundWalletResult  = types.FundWalletResult
	Loan              = types.Loan
	LoanRepayment     = types.LoanRepayment
	LoanApplication   = types.LoanApplication
	TerminationQuote  = types.TerminationQuote
	Mortgage          = types.Mortgage
	StatutoryCharge   = types.StatutoryCharge
	ChargePayment     = types.ChargePayment
	Property          = types.Property
	EOI               = types.EOI
	EOIRequest        = types.EOIRequest
	PaymentPlan       = types.PaymentPlan
	PlanConfiguration = types.PlanConfiguration
	MixAllocations    = types.MixAllocations
	Allocation        = types.Allocation
	MailMessage       = types.MailMessage
	ComposeMail       = types.ComposeMail
	ActivityLog       = types.ActivityLog
	Permission        = types.Permission
	AccessRole        = types.AccessRole
	RoleRequest       = types.RoleRequest
	RoleAssignment    = types.RoleAssignment
	Business          = types.Business
	BusinessRequest   = types.BusinessRequest
	Subscription      = types.Subscription
	Package           = types.Package
	Branding          = types.Branding
	DashboardSummary  = types.DashboardSummary
	Session           = types.Session
	Profile           = types.Profile
	BulkUploadResult  = types.BulkUploadResult
	BulkUploadError   = types.BulkUploadError
)

// Role values re-exported for callers that only import domain.
const (
	RoleMember     = types.RoleMember
	RoleAdmin      = types.RoleAdmin
	RoleSuperAdmin = types.RoleSuperAdmin
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	APIClient       = interfaces.APIClient
	TokenSource     = interfaces.TokenSource
	SessionStore    = interfaces.SessionStore
	ProfileStore    = interfaces.ProfileStore
	AuthService     = interfaces.AuthService
	PortalService   = interfaces.PortalService
	AdminService    = interfaces.AdminService
	PlatformService = interfaces.PlatformService
)
