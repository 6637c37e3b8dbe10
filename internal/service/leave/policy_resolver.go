package leave

import (
	"fmt"
	"time"

	"github.com/kelolahr/hrms-backend-go/internal/domain/employee"
	"github.com/kelolahr/hrms-backend-go/internal/domain/leave"
)

// ResolveMapping picks the policy mapping governing an employee on a date.
// Among active mappings effective on or before asOf whose scope matches the
// employee, the highest scope wins; within a scope the most recent
// effective-from wins. Scope order is the numeric MappingScope order, so
// Employee beats Designation beats Department beats the company default.
func ResolveMapping(mappings []leave.PolicyMapping, emp employee.Employee, asOf time.Time) (leave.PolicyMapping, error) {
	var best *leave.PolicyMapping
	for i := range mappings {
		m := mappings[i]
		if !m.IsActive || m.EffectiveFrom.After(asOf) {
			continue
		}
		if !scopeMatches(m, emp) {
			continue
		}
		if best == nil ||
			m.Scope > best.Scope ||
			(m.Scope == best.Scope && m.EffectiveFrom.After(best.EffectiveFrom)) {
			best = &m
		}
	}
	if best == nil {
		return leave.PolicyMapping{}, fmt.Errorf("%w: employee %s as of %s",
			leave.ErrNoPolicyMapping, emp.ID, asOf.Format("2006-01-02"))
	}
	return *best, nil
}

func scopeMatches(m leave.PolicyMapping, emp employee.Employee) bool {
	switch m.Scope {
	case leave.ScopeEmployee:
		return m.ScopeRef != nil && *m.ScopeRef == emp.ID
	case leave.ScopeDesignation:
		return m.ScopeRef != nil && emp.DesignationID != nil && *m.ScopeRef == *emp.DesignationID
	case leave.ScopeDepartment:
		return m.ScopeRef != nil && emp.DepartmentID != nil && *m.ScopeRef == *emp.DepartmentID
	case leave.ScopeDefaultCompany:
		return m.CompanyID == emp.CompanyID
	}
	return false
}
