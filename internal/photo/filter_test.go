package photo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clientdesk/portal/internal/session"
)

func strPtr(s string) *string { return &s }

func TestFilterClause_Empty(t *testing.T) {
	var f Filter
	clause, args := f.Clause(1)
	assert.Equal(t, "TRUE", clause)
	assert.Empty(t, args)
}

func TestFilterClause_Renumbering(t *testing.T) {
	var f Filter
	f.And("org_id = ?", "org1")
	f.And("(visibility = ? OR visibility IS NULL)", VisibilityAll)

	clause, args := f.Clause(3)
	assert.Equal(t, "org_id = $3 AND (visibility = $4 OR visibility IS NULL)", clause)
	assert.Equal(t, []any{"org1", VisibilityAll}, args)
}

func TestVisibleScope(t *testing.T) {
	tests := []struct {
		name       string
		caller     session.Identity
		wantClause string
		wantArgs   []any
	}{
		{
			name:       "admin sees whole org without visibility restriction",
			caller:     session.Identity{UserID: "u1", Role: session.RoleAdmin, OrgID: strPtr("org1")},
			wantClause: "org_id = $1",
			wantArgs:   []any{"org1"},
		},
		{
			name:       "staff sees whole org without visibility restriction",
			caller:     session.Identity{UserID: "u1", Role: session.RoleStaff, OrgID: strPtr("org1")},
			wantClause: "org_id = $1",
			wantArgs:   []any{"org1"},
		},
		{
			name:       "team lead sees whole org without visibility restriction",
			caller:     session.Identity{UserID: "u1", Role: session.RoleClient, AccountType: session.AccountTypeTeamLead, OrgID: strPtr("org1")},
			wantClause: "org_id = $1",
			wantArgs:   []any{"org1"},
		},
		{
			name:       "ordinary member restricted to visible rows",
			caller:     session.Identity{UserID: "u1", Role: session.RoleClient, OrgID: strPtr("org1")},
			wantClause: "org_id = $1 AND (visibility = $2 OR visibility IS NULL)",
			wantArgs:   []any{"org1", VisibilityAll},
		},
		{
			name:       "orgless member sees only own visible uploads",
			caller:     session.Identity{UserID: "u1", Role: session.RoleClient},
			wantClause: "org_id IS NULL AND uploaded_by = $1 AND (visibility = $2 OR visibility IS NULL)",
			wantArgs:   []any{"u1", VisibilityAll},
		},
		{
			name:       "orgless admin sees own uploads unrestricted",
			caller:     session.Identity{UserID: "u1", Role: session.RoleAdmin},
			wantClause: "org_id IS NULL AND uploaded_by = $1",
			wantArgs:   []any{"u1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clause, args := VisibleScope(tt.caller).Clause(1)
			assert.Equal(t, tt.wantClause, clause)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestTenantScope_NeverRestrictsVisibility(t *testing.T) {
	// Delete lookups must find owner_only rows so the privilege check can
	// run against the actual row; visibility never appears in the tenant scope.
	callers := []session.Identity{
		{UserID: "u1", Role: session.RoleClient, OrgID: strPtr("org1")},
		{UserID: "u1", Role: session.RoleClient},
		{UserID: "u1", Role: session.RoleAdmin, OrgID: strPtr("org1")},
	}
	for _, caller := range callers {
		clause, _ := TenantScope(caller).Clause(1)
		assert.NotContains(t, clause, "visibility")
	}
}
