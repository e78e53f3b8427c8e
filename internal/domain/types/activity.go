package types

// ActivityLog is an audit entry shown on member and admin screens.
type ActivityLog struct {
	ID          ID     `json:"id"`
	Actor       string `json:"actor"`
	Action      string `json:"action"`
	Description string `json:"description"`
	IPAddress   string `json:"ip_address,omitempty"`
	CreatedAt   string `json:"created_at"`
}
