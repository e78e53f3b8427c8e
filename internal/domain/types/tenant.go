package types

// Business is a tenant of the platform.
type Business struct {
	ID           ID     `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Email        string `json:"contact_email"`
	Status       string `json:"status"`
	Package      string `json:"package,omitempty"`
	MembersCount int    `json:"members_count,omitempty"`
	CreatedAt    string `json:"created_at,omitempty"`
}

// BusinessRequest creates a business.
type BusinessRequest struct {
	Name    string `json:"name"`
	Slug    string `json:"slug"`
	Email   string `json:"contact_email"`
	Package ID     `json:"package_id,omitempty"`
}

// Subscription links a business to a package for a billing period.
type Subscription struct {
	ID           ID     `json:"id"`
	BusinessName string `json:"business_name"`
	Package      string `json:"package"`
	Amount       Amount `json:"amount"`
	Status       string `json:"status"`
	StartsAt     string `json:"starts_at"`
	EndsAt       string `json:"ends_at"`
}

// Package is a subscription tier.
type Package struct {
	ID           ID       `json:"id"`
	Name         string   `json:"name"`
	Price        Amount   `json:"price"`
	BillingCycle string   `json:"billing_cycle"`
	MaxMembers   int      `json:"max_members"`
	Features     []string `json:"features,omitempty"`
}
