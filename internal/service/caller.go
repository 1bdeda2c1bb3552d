package service

import "github.com/open-helpdesk/helpdesk-service/internal/domain"

// Caller identifies the authenticated account invoking an operation. The
// transport layer resolves it from the session token before any service
// method runs; services re-check the role against the permission table.
type Caller struct {
	ID   string
	Role domain.Role
}
