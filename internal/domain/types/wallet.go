package types

// Wallet is the member's wallet balance summary.
type Wallet struct {
	ID            ID     `json:"id"`
	Balance       Amount `json:"balance"`
	LedgerBalance Amount `json:"ledger_balance,omitempty"`
	Currency      string `json:"currency,omitempty"`
	Status        string `json:"status,omitempty"`
	UpdatedAt     string `json:"updated_at,omitempty"`
}

// WalletTransaction is a single wallet ledger entry.
type WalletTransaction struct {
	ID          ID     `json:"id"`
	Reference   string `json:"reference"`
	Type        string `json:"type"`
	Amount      Amount `json:"amount"`
	Status      string `json:"status"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// FundWalletRequest starts a wallet top-up.
type FundWalletRequest struct {
	Amount    Amount `json:"amount"`
	Method    string `json:"payment_method"`
	Reference string `json:"reference,omitempty"`
}

// FundWalletResult is returned by the top-up endpoint. PaymentURL is set
// when the gateway requires the member to complete the payment elsewhere.
type FundWalletResult struct {
	Reference  string `json:"reference"`
	Status     string `json:"status"`
	PaymentURL string `json:"payment_url,omitempty"`
}
