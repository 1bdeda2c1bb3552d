package authz

import (
	"fmt"

	"github.com/open-helpdesk/helpdesk-service/internal/domain"
	"github.com/open-helpdesk/helpdesk-service/pkg/util/errorutil"
)

// Operation identifies a guarded action on the request surface.
type Operation string

const (
	OpCreateTicket        Operation = "ticket:create"
	OpListOwnTickets      Operation = "ticket:list_own"
	OpListAllTickets      Operation = "ticket:list_all"
	OpReadTicket          Operation = "ticket:read"
	OpUpdateStatus        Operation = "ticket:update_status"
	OpAssignTicket        Operation = "ticket:assign"
	OpUpdateInternalNotes Operation = "ticket:update_notes"
	OpCommentTicket       Operation = "ticket:comment"
	OpViewGlobalStats     Operation = "stats:global"
	OpViewOwnStats        Operation = "stats:own"
	OpViewAssignedStats   Operation = "stats:assigned"
	OpManageAccounts      Operation = "accounts:manage"
)

// permissions is the whole access-control policy: one static table from
// operation to the roles allowed to invoke it. Handlers and services never
// check roles anywhere else.
var permissions = map[Operation][]domain.Role{
	OpCreateTicket:        {domain.RoleEmployee},
	OpListOwnTickets:      {domain.RoleEmployee},
	OpListAllTickets:      {domain.RoleAdmin, domain.RoleSupport},
	OpReadTicket:          {domain.RoleAdmin, domain.RoleEmployee, domain.RoleSupport},
	OpUpdateStatus:        {domain.RoleSupport, domain.RoleAdmin},
	OpAssignTicket:        {domain.RoleAdmin},
	OpUpdateInternalNotes: {domain.RoleSupport, domain.RoleAdmin},
	OpCommentTicket:       {domain.RoleAdmin, domain.RoleEmployee, domain.RoleSupport},
	OpViewGlobalStats:     {domain.RoleAdmin},
	OpViewOwnStats:        {domain.RoleEmployee},
	OpViewAssignedStats:   {domain.RoleSupport},
	OpManageAccounts:      {domain.RoleAdmin},
}

// Authorize decides whether a caller holding role may invoke op. It is a
// pure function of its arguments: an empty role means no caller identity
// was established, any other role outside the operation's allowed set is
// denied.
func Authorize(role domain.Role, op Operation) error {
	if role == "" {
		return errorutil.NewUnauthenticated("authentication required")
	}
	allowed, ok := permissions[op]
	if !ok {
		return errorutil.NewForbidden(fmt.Sprintf("unknown operation %q", op))
	}
	for _, candidate := range allowed {
		if candidate == role {
			return nil
		}
	}
	return errorutil.NewForbidden(fmt.Sprintf("role %q may not perform %q", role, op))
}

// AllowedRoles returns a copy of the roles permitted for op.
func AllowedRoles(op Operation) []domain.Role {
	return append([]domain.Role{}, permissions[op]...)
}
