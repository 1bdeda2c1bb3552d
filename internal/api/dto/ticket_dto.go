package dto

import (
	"time"

	"github.com/open-helpdesk/helpdesk-service/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Category    domain.TicketCategory `json:"category"`
	Priority    domain.TicketPriority `json:"priority"`
	Attachment  *string               `json:"attachment,omitempty"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status domain.TicketStatus `json:"status"`
}

// AssignTicketRequest payload.
type AssignTicketRequest struct {
	AssignedTo string `json:"assignedTo"`
}

// UpdateNotesRequest payload.
type UpdateNotesRequest struct {
	InternalNotes string `json:"internalNotes"`
}

// AccountRefResponse is the reduced account projection on ticket reads.
type AccountRefResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// TicketResponse is the full ticket representation.
type TicketResponse struct {
	ID            string                `json:"id"`
	Title         string                `json:"title"`
	Description   string                `json:"description"`
	Category      domain.TicketCategory `json:"category"`
	Priority      domain.TicketPriority `json:"priority"`
	Status        domain.TicketStatus   `json:"status"`
	CreatedBy     *AccountRefResponse   `json:"createdBy,omitempty"`
	AssignedTo    *AccountRefResponse   `json:"assignedTo,omitempty"`
	Attachment    *string               `json:"attachment,omitempty"`
	InternalNotes *string               `json:"internalNotes,omitempty"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}

// CreateCommentRequest payload.
type CreateCommentRequest struct {
	Body       string  `json:"body"`
	Attachment *string `json:"attachment,omitempty"`
}

// CommentResponse represents a thread entry.
type CommentResponse struct {
	ID         string              `json:"id"`
	TicketID   string              `json:"ticketId"`
	Author     *AccountRefResponse `json:"author,omitempty"`
	Body       string              `json:"body"`
	Attachment *string             `json:"attachment,omitempty"`
	CreatedAt  time.Time           `json:"createdAt"`
}
