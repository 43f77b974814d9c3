package rbac_test

import (
	"testing"

	"github.com/esnupy/lafa/internal/rbac"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnforce(t *testing.T) {
	svc, err := rbac.NewService()
	require.NoError(t, err)

	cases := []struct {
		name     string
		role     string
		resource string
		action   string
		allowed  bool
	}{
		{"staff reads overview", rbac.RoleStaff, "overview", "read", true},
		{"staff uses chat", rbac.RoleStaff, "chat", "use", true},
		{"staff cannot import trips", rbac.RoleStaff, "trips", "import", false},
		{"staff cannot run payroll", rbac.RoleStaff, "payroll", "run", false},
		{"supervisor imports trips", rbac.RoleSupervisor, "trips", "import", true},
		{"supervisor inherits staff read", rbac.RoleSupervisor, "payroll", "read", true},
		{"supervisor cannot run payroll", rbac.RoleSupervisor, "payroll", "run", false},
		{"supervisor cannot export payroll", rbac.RoleSupervisor, "payroll", "export", false},
		{"admin runs payroll", rbac.RoleAdmin, "payroll", "run", true},
		{"admin inherits supervisor import", rbac.RoleAdmin, "trips", "import", true},
		{"admin inherits staff chat", rbac.RoleAdmin, "chat", "use", true},
		{"unknown role denied", "intern", "overview", "read", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			allowed, err := svc.Enforce(tc.role, tc.resource, tc.action)
			require.NoError(t, err)
			assert.Equal(t, tc.allowed, allowed)
		})
	}
}
