package leave

import (
	"testing"
	"time"

	"github.com/kelolahr/hrms-backend-go/internal/domain/employee"
	"github.com/kelolahr/hrms-backend-go/internal/domain/leave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func mapping(id string, scope leave.MappingScope, scopeRef *string, effectiveFrom time.Time) leave.PolicyMapping {
	return leave.PolicyMapping{
		ID:            id,
		CompanyID:     "co-1",
		PolicyID:      "pol-" + id,
		Scope:         scope,
		ScopeRef:      scopeRef,
		EffectiveFrom: effectiveFrom,
		IsActive:      true,
	}
}

var testEmployee = employee.Employee{
	ID:            "emp-1",
	CompanyID:     "co-1",
	DepartmentID:  strPtr("dept-1"),
	DesignationID: strPtr("desig-1"),
}

func TestResolveMapping_ScopePriority(t *testing.T) {
	asOf := date(2026, 6, 1)
	effective := date(2026, 1, 1)

	mappings := []leave.PolicyMapping{
		mapping("default", leave.ScopeDefaultCompany, nil, effective),
		mapping("dept", leave.ScopeDepartment, strPtr("dept-1"), effective),
		mapping("desig", leave.ScopeDesignation, strPtr("desig-1"), effective),
		mapping("emp", leave.ScopeEmployee, strPtr("emp-1"), effective),
	}

	got, err := ResolveMapping(mappings, testEmployee, asOf)
	require.NoError(t, err)
	assert.Equal(t, "emp", got.ID)

	// Without the employee override, designation wins.
	got, err = ResolveMapping(mappings[:3], testEmployee, asOf)
	require.NoError(t, err)
	assert.Equal(t, "desig", got.ID)

	got, err = ResolveMapping(mappings[:2], testEmployee, asOf)
	require.NoError(t, err)
	assert.Equal(t, "dept", got.ID)

	got, err = ResolveMapping(mappings[:1], testEmployee, asOf)
	require.NoError(t, err)
	assert.Equal(t, "default", got.ID)
}

func TestResolveMapping_LatestEffectiveFromWinsWithinScope(t *testing.T) {
	mappings := []leave.PolicyMapping{
		mapping("old", leave.ScopeDefaultCompany, nil, date(2025, 1, 1)),
		mapping("new", leave.ScopeDefaultCompany, nil, date(2026, 1, 1)),
	}

	got, err := ResolveMapping(mappings, testEmployee, date(2026, 6, 1))
	require.NoError(t, err)
	assert.Equal(t, "new", got.ID)

	// Before the newer mapping takes effect the older one still governs.
	got, err = ResolveMapping(mappings, testEmployee, date(2025, 6, 1))
	require.NoError(t, err)
	assert.Equal(t, "old", got.ID)
}

func TestResolveMapping_IgnoresInactiveAndFuture(t *testing.T) {
	inactive := mapping("inactive", leave.ScopeEmployee, strPtr("emp-1"), date(2025, 1, 1))
	inactive.IsActive = false

	mappings := []leave.PolicyMapping{
		inactive,
		mapping("future", leave.ScopeEmployee, strPtr("emp-1"), date(2027, 1, 1)),
		mapping("default", leave.ScopeDefaultCompany, nil, date(2025, 1, 1)),
	}

	got, err := ResolveMapping(mappings, testEmployee, date(2026, 6, 1))
	require.NoError(t, err)
	assert.Equal(t, "default", got.ID)
}

func TestResolveMapping_ScopeRefMustMatch(t *testing.T) {
	mappings := []leave.PolicyMapping{
		mapping("other-emp", leave.ScopeEmployee, strPtr("emp-2"), date(2025, 1, 1)),
		mapping("other-dept", leave.ScopeDepartment, strPtr("dept-2"), date(2025, 1, 1)),
	}

	_, err := ResolveMapping(mappings, testEmployee, date(2026, 6, 1))
	assert.ErrorIs(t, err, leave.ErrNoPolicyMapping)
}

func TestResolveMapping_NoMappings(t *testing.T) {
	_, err := ResolveMapping(nil, testEmployee, date(2026, 6, 1))
	assert.ErrorIs(t, err, leave.ErrNoPolicyMapping)
}
