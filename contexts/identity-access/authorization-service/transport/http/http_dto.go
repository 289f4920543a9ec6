package http

// CheckPermissionRequest asks whether the caller (or an explicit account)
// holds one permission.
type CheckPermissionRequest struct {
	AccountID  string `json:"account_id,omitempty"`
	Permission string `json:"permission"`
}

type CheckPermissionResponse struct {
	AccountID  string `json:"account_id"`
	Permission string `json:"permission"`
	Allowed    bool   `json:"allowed"`
	Reason     string `json:"reason"`
}

type AccountRolesResponse struct {
	AccountID   string   `json:"account_id"`
	Roles       []string `json:"roles"`
	Permissions []string `json:"permissions"`
}

type GrantRoleRequest struct {
	RoleName string `json:"role_name"`
}

type RevokeRoleRequest struct {
	RoleName string `json:"role_name"`
}

type RoleMutationResponse struct {
	AccountID string `json:"account_id"`
	RoleName  string `json:"role_name"`
	Success   bool   `json:"success"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
