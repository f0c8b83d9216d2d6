package photo

import (
	"strconv"
	"strings"

	"github.com/clientdesk/portal/internal/session"
)

// Filter is a composable SQL predicate. Conditions are written with `?`
// placeholders and rendered to positional pgx placeholders on demand, so one
// builder serves every query regardless of how many parameters precede it.
type Filter struct {
	conds []string
	args  []any
}

// And appends a condition. All conditions are combined with AND.
func (f *Filter) And(cond string, args ...any) {
	f.conds = append(f.conds, cond)
	f.args = append(f.args, args...)
}

// Clause renders the filter as a SQL fragment with placeholders numbered
// from start, plus the argument list. An empty filter renders as TRUE so it
// can always be appended after a WHERE or AND.
func (f Filter) Clause(start int) (string, []any) {
	if len(f.conds) == 0 {
		return "TRUE", nil
	}

	joined := strings.Join(f.conds, " AND ")
	var sb strings.Builder
	n := start
	for _, ch := range joined {
		if ch == '?' {
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			n++
			continue
		}
		sb.WriteRune(ch)
	}
	return sb.String(), f.args
}

// privileged reports whether the caller bypasses per-row visibility flags:
// admin and staff roles, and organization team leads.
func privileged(caller session.Identity) bool {
	return caller.IsStaff() || caller.IsTeamLead()
}

// TenantScope returns the filter bounding a caller to their tenant:
// every photo in their organization, or their own uploads when they belong
// to no organization.
func TenantScope(caller session.Identity) Filter {
	var f Filter
	if caller.OrgID != nil {
		f.And("org_id = ?", *caller.OrgID)
	} else {
		f.And("org_id IS NULL")
		f.And("uploaded_by = ?", caller.UserID)
	}
	return f
}

// VisibleScope returns the filter for listing: the tenant scope, further
// restricted for ordinary members to rows flagged visible-to-all. Rows with
// no flag predate the flag and default to visible.
func VisibleScope(caller session.Identity) Filter {
	f := TenantScope(caller)
	if !privileged(caller) {
		f.And("(visibility = ? OR visibility IS NULL)", VisibilityAll)
	}
	return f
}
