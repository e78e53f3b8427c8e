package types

// StatutoryCharge is a levy a member owes the cooperative (service charge,
// development levy and so on).
type StatutoryCharge struct {
	ID          ID     `json:"id"`
	Title       string `json:"title"`
	Type        string `json:"type,omitempty"`
	Amount      Amount `json:"amount"`
	AmountPaid  Amount `json:"amount_paid"`
	DueDate     string `json:"due_date"`
	Status      string `json:"status"`
	Description string `json:"description,omitempty"`
	PaidAt      string `json:"paid_at,omitempty"`

	// Derived is filled client-side and never sent to the API.
	Derived string `json:"-"`
}

// ChargePayment pays a statutory charge.
type ChargePayment struct {
	Amount Amount `json:"amount"`
	Method string `json:"payment_method"`
}
