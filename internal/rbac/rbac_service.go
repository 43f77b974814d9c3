// Package rbac gates the HTTP surface by role. Roles are the three the
// back office knows (admin, supervisor, staff); policies are static and
// loaded into a casbin enforcer at startup.
package rbac

import (
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const (
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor"
	RoleStaff      = "staff"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// policies: role, resource, action.
var policies = [][]string{
	{RoleAdmin, "payroll", "run"},
	{RoleAdmin, "payroll", "export"},
	{RoleSupervisor, "trips", "import"},
	{RoleSupervisor, "trips", "delete"},
	{RoleSupervisor, "driver", "write"},
	{RoleSupervisor, "vehicle", "write"},
	{RoleSupervisor, "shift", "write"},
	{RoleStaff, "driver", "read"},
	{RoleStaff, "vehicle", "read"},
	{RoleStaff, "shift", "read"},
	{RoleStaff, "trips", "read"},
	{RoleStaff, "payroll", "read"},
	{RoleStaff, "overview", "read"},
	{RoleStaff, "chat", "use"},
}

// role inheritance: admin > supervisor > staff.
var groupings = [][]string{
	{RoleAdmin, RoleSupervisor},
	{RoleSupervisor, RoleStaff},
}

type Service interface {
	Enforce(role, resource, action string) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.Mutex
}

// NewService builds the enforcer with the static fleet policies.
func NewService() (Service, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}
	for _, p := range policies {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}
	for _, g := range groupings {
		if _, err := e.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, err
		}
	}
	return &service{enforcer: e}, nil
}

func (s *service) Enforce(role, resource, action string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enforcer.Enforce(role, resource, action)
}
