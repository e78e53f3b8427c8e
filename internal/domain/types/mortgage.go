package types

// Mortgage is a member's property mortgage.
type Mortgage struct {
	ID             ID      `json:"id"`
	Reference      string  `json:"reference,omitempty"`
	PropertyID     ID      `json:"property_id,omitempty"`
	PropertyTitle  string  `json:"property_title,omitempty"`
	Provider       string  `json:"provider,omitempty"`
	Principal      Amount  `json:"principal"`
	InterestRate   float64 `json:"interest_rate"`
	TenureYears    int     `json:"tenure_years"`
	MonthlyPayment Amount  `json:"monthly_payment,omitempty"`
	AmountPaid     Amount  `json:"amount_paid"`
	OutstandingBal Amount  `json:"outstanding_balance"`
	Status         string  `json:"status"`
	StartDate      string  `json:"start_date,omitempty"`
}
