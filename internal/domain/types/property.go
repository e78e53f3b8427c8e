package types

// Property is a housing unit offered by the cooperative.
type Property struct {
	ID          ID     `json:"id"`
	Title       string `json:"title"`
	Location    string `json:"location"`
	Type        string `json:"type,omitempty"`
	Price       Amount `json:"price"`
	Units       int    `json:"available_units"`
	Status      string `json:"status"`
	Description string `json:"description,omitempty"`
}

// EOI is a member's expression of interest in a property.
type EOI struct {
	ID            ID     `json:"id"`
	PropertyID    ID     `json:"property_id"`
	PropertyTitle string `json:"property_title,omitempty"`
	FundingOption string `json:"funding_option"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at,omitempty"`
}

// EOIRequest is the body of an expression of interest.
type EOIRequest struct {
	PropertyID    ID     `json:"property_id"`
	FundingOption string `json:"funding_option"`
	Notes         string `json:"notes,omitempty"`
}
