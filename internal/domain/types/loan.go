package types

// Loan is a member loan.
type Loan struct {
	ID              ID              `json:"id"`
	Reference       string          `json:"reference,omitempty"`
	MemberID        ID              `json:"member_id,omitempty"`
	MemberName      string          `json:"member_name,omitempty"`
	Product         string          `json:"product,omitempty"`
	Principal       Amount          `json:"principal"`
	InterestRate    float64         `json:"interest_rate"`
	TenureMonths    int             `json:"tenure_months"`
	TotalRepayable  Amount          `json:"total_repayable,omitempty"`
	AmountPaid      Amount          `json:"amount_paid"`
	OutstandingBal  Amount          `json:"outstanding_balance"`
	Status          string          `json:"status"`
	DisbursedAt     string          `json:"disbursed_at,omitempty"`
	StartDate       string          `json:"start_date,omitempty"`
	LastRepaymentAt string          `json:"last_repayment_at,omitempty"`
	CreatedAt       string          `json:"created_at,omitempty"`
	Repayments      []LoanRepayment `json:"repayments,omitempty"`
}

// LoanRepayment is one scheduled or completed repayment.
type LoanRepayment struct {
	ID        ID     `json:"id"`
	DueDate   string `json:"due_date"`
	Principal Amount `json:"principal"`
	Interest  Amount `json:"interest"`
	Total     Amount `json:"total"`
	Status    string `json:"status"`
	PaidAt    string `json:"paid_at,omitempty"`
}

// LoanApplication is the body of a new loan request.
type LoanApplication struct {
	Product      string `json:"product"`
	Amount       Amount `json:"amount"`
	TenureMonths int    `json:"tenure_months"`
	Purpose      string `json:"purpose,omitempty"`
}

// TerminationQuote is the client-side estimate of settling a loan early.
type TerminationQuote struct {
	LoanID          ID      `json:"loan_id"`
	Outstanding     float64 `json:"outstanding"`
	Days            int     `json:"days"`
	AccruedInterest float64 `json:"accrued_interest"`
	Fee             float64 `json:"fee"`
	Total           float64 `json:"total"`
	AsOf            string  `json:"as_of"`
}
