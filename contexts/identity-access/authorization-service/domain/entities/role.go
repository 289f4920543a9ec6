package entities

// Role models a permission bundle that can be assigned to accounts.
type Role struct {
	RoleName    string   `json:"role_name"`
	Permissions []string `json:"permissions"`
}
