package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-helpdesk/helpdesk-service/internal/domain"
	"github.com/open-helpdesk/helpdesk-service/pkg/util/errorutil"
)

var allRoles = []domain.Role{domain.RoleAdmin, domain.RoleEmployee, domain.RoleSupport}

func TestAuthorize_PermissionTable(t *testing.T) {
	tests := []struct {
		op      Operation
		allowed []domain.Role
	}{
		{OpCreateTicket, []domain.Role{domain.RoleEmployee}},
		{OpListOwnTickets, []domain.Role{domain.RoleEmployee}},
		{OpListAllTickets, []domain.Role{domain.RoleAdmin, domain.RoleSupport}},
		{OpReadTicket, allRoles},
		{OpUpdateStatus, []domain.Role{domain.RoleSupport, domain.RoleAdmin}},
		{OpAssignTicket, []domain.Role{domain.RoleAdmin}},
		{OpUpdateInternalNotes, []domain.Role{domain.RoleSupport, domain.RoleAdmin}},
		{OpCommentTicket, allRoles},
		{OpViewGlobalStats, []domain.Role{domain.RoleAdmin}},
		{OpViewOwnStats, []domain.Role{domain.RoleEmployee}},
		{OpViewAssignedStats, []domain.Role{domain.RoleSupport}},
		{OpManageAccounts, []domain.Role{domain.RoleAdmin}},
	}

	for _, tc := range tests {
		t.Run(string(tc.op), func(t *testing.T) {
			allowedSet := map[domain.Role]bool{}
			for _, role := range tc.allowed {
				allowedSet[role] = true
			}
			for _, role := range allRoles {
				err := Authorize(role, tc.op)
				if allowedSet[role] {
					assert.NoError(t, err, "role %s should be allowed", role)
				} else {
					requireCode(t, err, "FORBIDDEN")
				}
			}
		})
	}
}

func TestAuthorize_Deterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		assert.NoError(t, Authorize(domain.RoleAdmin, OpAssignTicket))
		assert.Error(t, Authorize(domain.RoleSupport, OpAssignTicket))
	}
}

func TestAuthorize_AdminOnlyOperationsDenyOthers(t *testing.T) {
	for _, op := range []Operation{OpAssignTicket, OpManageAccounts} {
		requireCode(t, Authorize(domain.RoleEmployee, op), "FORBIDDEN")
		requireCode(t, Authorize(domain.RoleSupport, op), "FORBIDDEN")
		assert.NoError(t, Authorize(domain.RoleAdmin, op))
	}
}

func TestAuthorize_MissingIdentity(t *testing.T) {
	requireCode(t, Authorize("", OpReadTicket), "UNAUTHENTICATED")
}

func TestAuthorize_UnknownRoleDenied(t *testing.T) {
	requireCode(t, Authorize("manager", OpReadTicket), "FORBIDDEN")
}

func TestAuthorize_UnknownOperationDenied(t *testing.T) {
	requireCode(t, Authorize(domain.RoleAdmin, Operation("ticket:delete")), "FORBIDDEN")
}

func TestAllowedRoles_ReturnsCopy(t *testing.T) {
	roles := AllowedRoles(OpAssignTicket)
	require.Equal(t, []domain.Role{domain.RoleAdmin}, roles)
	roles[0] = domain.RoleEmployee
	assert.Equal(t, []domain.Role{domain.RoleAdmin}, AllowedRoles(OpAssignTicket))
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	domainErr := errorutil.ToDomainError(err)
	require.Equal(t, code, domainErr.Code)
}
