// Package session defines the authenticated caller identity shared by all
// handlers and scope decisions. The auth middleware reconstructs it from
// session token claims.
package session

// Roles assigned to portal users.
const (
	RoleAdmin  = "admin"
	RoleStaff  = "staff"
	RoleClient = "client"
)

// AccountTypeTeamLead marks the member responsible for an organization.
const AccountTypeTeamLead = "team_lead"

// Identity is the authenticated caller as seen by every handler. It is the
// input to all tenant-scope and visibility decisions.
type Identity struct {
	UserID      string
	Role        string
	AccountType string
	OrgID       *string
}

// IsStaff returns true for admin and staff roles.
func (id Identity) IsStaff() bool {
	return id.Role == RoleAdmin || id.Role == RoleStaff
}

// IsTeamLead returns true when the caller leads their organization.
func (id Identity) IsTeamLead() bool {
	return id.AccountType == AccountTypeTeamLead
}
