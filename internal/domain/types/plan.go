package types

// PaymentPlan describes how a member pays for a property.
type PaymentPlan struct {
	ID            ID                `json:"id"`
	PropertyID    ID                `json:"property_id"`
	PropertyTitle string            `json:"property_title,omitempty"`
	MemberName    string            `json:"member_name,omitempty"`
	FundingOption string            `json:"funding_option"`
	TotalAmount   Amount            `json:"total_amount"`
	AmountPaid    Amount            `json:"amount_paid"`
	Status        string            `json:"status"`
	Configuration PlanConfiguration `json:"configuration"`
	CreatedAt     string            `json:"created_at,omitempty"`
}

// PlanConfiguration holds funding-option specific settings.
type PlanConfiguration struct {
	MixAllocations *MixAllocations `json:"mix_allocations,omitempty"`
	Installments   int             `json:"installments,omitempty"`
}

// MixAllocations splits a plan across payment methods. Amounts, when the
// server supplies them, take precedence over the computed share; a null
// entry decodes to nil and counts as absent.
type MixAllocations struct {
	Percentages map[string]Amount  `json:"percentages"`
	Amounts     map[string]*Amount `json:"amounts,omitempty"`
}

// Allocation is one payment method's share of a mix-funded plan.
type Allocation struct {
	Method     string  `json:"method"`
	Percentage float64 `json:"percentage"`
	Amount     float64 `json:"amount"`
	FromServer bool    `json:"from_server"`
}
