package types

// Permission is a named capability that can be granted to a role.
type Permission struct {
	ID    ID     `json:"id"`
	Name  string `json:"name"`
	Group string `json:"group,omitempty"`
}

// AccessRole is a tenant-defined role.
type AccessRole struct {
	ID          ID       `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Permissions []string `json:"permissions"`
	Users       int      `json:"users_count,omitempty"`
}

// RoleRequest creates a role.
type RoleRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Permissions []string `json:"permissions"`
}

// RoleAssignment grants a role to a user.
type RoleAssignment struct {
	UserID ID `json:"user_id"`
	RoleID ID `json:"role_id"`
}
