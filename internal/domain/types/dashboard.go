package types

// DashboardSummary aggregates the member home screen cards.
type DashboardSummary struct {
	Wallet              Wallet  `json:"wallet"`
	ActiveLoans         int     `json:"active_loans"`
	LoanOutstanding     float64 `json:"loan_outstanding"`
	ActiveMortgages     int     `json:"active_mortgages"`
	MortgageOutstanding float64 `json:"mortgage_outstanding"`
	PendingCharges      int     `json:"pending_charges"`
	OverdueCharges      int     `json:"overdue_charges"`
	ChargesDue          float64 `json:"charges_due"`
}
