package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func deptID(id int64) *int64 { return &id }

func TestPrincipal_ReviewScope(t *testing.T) {
	cases := []struct {
		name  string
		roles []Role
		want  ReviewScope
	}{
		{"employee only", []Role{RoleEmployee}, ScopeNone},
		{"no roles", nil, ScopeNone},
		{"manager", []Role{RoleManager}, ScopeDepartment},
		{"admin", []Role{RoleAdmin}, ScopeOrganization},
		{"manager and admin", []Role{RoleManager, RoleAdmin}, ScopeOrganization},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Principal{Roles: tc.roles}.ReviewScope())
		})
	}
}

func TestCanReview(t *testing.T) {
	engineering := deptID(2)
	finance := deptID(3)

	cases := []struct {
		name       string
		reviewer   Principal
		authorDept *int64
		want       bool
	}{
		{"manager same department", Principal{DepartmentID: deptID(2), Roles: []Role{RoleManager}}, engineering, true},
		{"manager other department", Principal{DepartmentID: engineering, Roles: []Role{RoleManager}}, finance, false},
		{"manager without department, author with department", Principal{Roles: []Role{RoleManager}}, finance, false},
		{"manager with department, author without", Principal{DepartmentID: engineering, Roles: []Role{RoleManager}}, nil, false},
		{"manager and author without department", Principal{Roles: []Role{RoleManager}}, nil, true},
		{"admin any department", Principal{DepartmentID: deptID(1), Roles: []Role{RoleAdmin}}, finance, true},
		{"admin author without department", Principal{Roles: []Role{RoleAdmin}}, nil, true},
		{"employee never", Principal{DepartmentID: engineering, Roles: []Role{RoleEmployee}}, engineering, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanReview(tc.reviewer, tc.authorDept))
		})
	}
}

func TestParseRole(t *testing.T) {
	r, ok := ParseRole("manager")
	assert.True(t, ok)
	assert.Equal(t, RoleManager, r)

	_, ok = ParseRole("owner")
	assert.False(t, ok)
}

func TestAnyHasPermission(t *testing.T) {
	assert.True(t, AnyHasPermission([]Role{RoleEmployee, RoleManager}, PermissionLeaveApprove))
	assert.False(t, AnyHasPermission([]Role{RoleEmployee}, PermissionLeaveApprove))
	assert.False(t, AnyHasPermission([]Role{RoleManager}, PermissionLeaveViewAll))
	assert.True(t, AnyHasPermission([]Role{RoleAdmin}, PermissionLeaveViewAll))
}
