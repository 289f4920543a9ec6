package services

import "skvote/contexts/identity-access/authorization-service/domain/entities"

// GrantsPermission evaluates whether a permission set contains a permission.
// Adding a role to an account can only grow the set, never shrink it.
func GrantsPermission(permissions []string, permission string) bool {
	for _, p := range permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// EffectivePermissions resolves the deduplicated union of permissions across
// an account's role set.
func EffectivePermissions(roles []entities.Role) []string {
	seen := make(map[string]struct{})
	var permissions []string
	for _, role := range roles {
		for _, p := range role.Permissions {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			permissions = append(permissions, p)
		}
	}
	return permissions
}

// DefaultRoles is the static role catalog for a Sangguniang Kabataan election.
// End users never create roles; administrators manage assignments only.
func DefaultRoles() []entities.Role {
	return []entities.Role{
		{
			RoleName: "voter",
			Permissions: []string{
				"view:candidates",
				"view:election_info",
				"cast:vote",
				"view:personal_vote_receipt",
				"view:public_results",
				"update:personal_profile",
			},
		},
		{
			RoleName: "candidate",
			Permissions: []string{
				"manage:own_profile",
				"view:voter_statistics",
			},
		},
		{
			RoleName: "administrator",
			Permissions: []string{
				"manage:all_users",
				"manage:all_candidates",
				"manage:election_settings",
				"view:all_voter_data",
				"generate:reports",
				"manage:system_settings",
				"view:audit_logs",
				"manage:announcements",
			},
		},
		{
			RoleName: "election_officer",
			Permissions: []string{
				"verify:voters",
				"manage:voting_period",
				"view:live_statistics",
				"resolve:voter_issues",
				"generate:voter_lists",
				"manage:polling_stations",
			},
		},
		{
			RoleName: "auditor",
			Permissions: []string{
				"view:audit_logs",
				"view:vote_counts",
				"view:system_logs",
				"generate:audit_reports",
				"verify:vote_integrity",
			},
		},
	}
}

// CatalogRole returns the static definition for a role name.
func CatalogRole(roleName string) (entities.Role, bool) {
	for _, role := range DefaultRoles() {
		if role.RoleName == roleName {
			return role, true
		}
	}
	return entities.Role{}, false
}
