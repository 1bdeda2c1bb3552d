package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets. The set is flat:
// any status may follow any other, including reopening a closed ticket.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "Open"
	TicketStatusInProgress TicketStatus = "In Progress"
	TicketStatusResolved   TicketStatus = "Resolved"
	TicketStatusClosed     TicketStatus = "Closed"
)

// TicketStatuses lists every status in its canonical order.
var TicketStatuses = []TicketStatus{
	TicketStatusOpen,
	TicketStatusInProgress,
	TicketStatusResolved,
	TicketStatusClosed,
}

// TicketCategory enumerates the departments a ticket can target.
type TicketCategory string

const (
	TicketCategoryIT     TicketCategory = "IT"
	TicketCategoryHR     TicketCategory = "HR"
	TicketCategoryOffice TicketCategory = "Office"
)

// TicketPriority enumerates urgency.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "Low"
	TicketPriorityMedium TicketPriority = "Medium"
	TicketPriorityHigh   TicketPriority = "High"
)

// ValidTicketStatus reports membership in the four-value status set.
func ValidTicketStatus(s TicketStatus) bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

// ValidTicketCategory reports membership in the category set.
func ValidTicketCategory(c TicketCategory) bool {
	switch c {
	case TicketCategoryIT, TicketCategoryHR, TicketCategoryOffice:
		return true
	}
	return false
}

// ValidTicketPriority reports membership in the priority set.
func ValidTicketPriority(p TicketPriority) bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh:
		return true
	}
	return false
}

// Ticket is the aggregate for reported issues.
type Ticket struct {
	ID            string
	Title         string
	Description   string
	Category      TicketCategory
	Priority      TicketPriority
	Status        TicketStatus
	CreatedBy     string
	AssignedTo    *string
	Attachment    *string
	InternalNotes *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Creator and Assignee are populated on read when the store resolves
	// the account references for display.
	Creator  *AccountRef
	Assignee *AccountRef
}
