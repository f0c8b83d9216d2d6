package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentityPrivilegeHelpers(t *testing.T) {
	assert.True(t, Identity{Role: RoleAdmin}.IsStaff())
	assert.True(t, Identity{Role: RoleStaff}.IsStaff())
	assert.False(t, Identity{Role: RoleClient}.IsStaff())

	assert.True(t, Identity{AccountType: AccountTypeTeamLead}.IsTeamLead())
	assert.False(t, Identity{Role: RoleClient}.IsTeamLead())
	assert.False(t, Identity{AccountType: "personal"}.IsTeamLead())
}
