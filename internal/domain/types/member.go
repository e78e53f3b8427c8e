package types

// Member is a cooperative member as returned by the API.
type Member struct {
	ID          ID       `json:"id"`
	MemberID    string   `json:"member_id,omitempty"`
	StaffID     string   `json:"staff_id,omitempty"`
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone,omitempty"`
	Status      string   `json:"status"`
	KYCStatus   string   `json:"kyc_status,omitempty"`
	Role        Role     `json:"role,omitempty"`
	CreatedAt   string   `json:"created_at,omitempty"`
	ApprovedAt  string   `json:"approved_at,omitempty"`
	Business    string   `json:"business_name,omitempty"`
	TenantSlug  string   `json:"tenant_slug,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
}

// FullName joins first and last names.
func (m Member) FullName() string {
	switch {
	case m.FirstName == "":
		return m.LastName
	case m.LastName == "":
		return m.FirstName
	}
	return m.FirstName + " " + m.LastName
}

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is the payload of a successful login.
type AuthResult struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at,omitempty"`
	User      Member `json:"user"`
}

// RejectRequest carries the reason for a rejection.
type RejectRequest struct {
	Reason string `json:"reason"`
}
