package types

// Branding is a tenant's white-label configuration.
type Branding struct {
	CompanyName    string `json:"company_name"`
	LogoURL        string `json:"logo_url,omitempty"`
	FaviconURL     string `json:"favicon_url,omitempty"`
	PrimaryColor   string `json:"primary_color"`
	SecondaryColor string `json:"secondary_color"`
	AccentColor    string `json:"accent_color,omitempty"`
	SupportEmail   string `json:"support_email,omitempty"`
	CustomDomain   string `json:"custom_domain,omitempty"`
}
