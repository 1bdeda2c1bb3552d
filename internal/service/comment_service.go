package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/open-helpdesk/helpdesk-service/internal/authz"
	"github.com/open-helpdesk/helpdesk-service/internal/domain"
	"github.com/open-helpdesk/helpdesk-service/internal/events"
	"github.com/open-helpdesk/helpdesk-service/internal/repository"
	"github.com/open-helpdesk/helpdesk-service/pkg/util/errorutil"
)

// CommentService appends and lists free-text comments on a ticket thread.
type CommentService struct {
	comments   repository.CommentRepository
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
}

// NewCommentService constructs the service.
func NewCommentService(comments repository.CommentRepository, tickets repository.TicketRepository, dispatcher events.Dispatcher) *CommentService {
	return &CommentService{comments: comments, tickets: tickets, dispatcher: dispatcher}
}

// Add appends a comment to an existing ticket.
func (s *CommentService) Add(ctx context.Context, caller Caller, ticketID, body string, attachment *string) (*domain.Comment, error) {
	if err := authz.Authorize(caller.Role, authz.OpCommentTicket); err != nil {
		return nil, err
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, errorutil.NewValidationError("body required", nil)
	}
	if _, err := s.tickets.GetByID(ctx, ticketID); err != nil {
		return nil, errorutil.MapStoreError(err, "ticket", map[string]any{"ticket_id": ticketID})
	}

	comment := &domain.Comment{
		TicketID:   ticketID,
		AuthorID:   caller.ID,
		Body:       body,
		Attachment: attachment,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, errorutil.NewStoreUnavailable(err)
	}
	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventTicketCommented,
			TicketID:  ticketID,
			Actor:     events.Actor{AccountID: caller.ID, Role: caller.Role},
			Timestamp: time.Now(),
			Payload: events.TicketCommentedPayload{
				CommentID:   comment.ID,
				AuthorID:    caller.ID,
				BodyPreview: bodyPreview(body, 120),
			},
		})
	}
	return comment, nil
}

// List returns a ticket's comments, oldest first.
func (s *CommentService) List(ctx context.Context, caller Caller, ticketID string) ([]domain.Comment, error) {
	if err := authz.Authorize(caller.Role, authz.OpReadTicket); err != nil {
		return nil, err
	}
	if _, err := s.tickets.GetByID(ctx, ticketID); err != nil {
		return nil, errorutil.MapStoreError(err, "ticket", map[string]any{"ticket_id": ticketID})
	}
	comments, err := s.comments.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, errorutil.NewStoreUnavailable(err)
	}
	return comments, nil
}

// bodyPreview truncates on rune boundaries so multi-byte text stays valid
// in event payloads.
func bodyPreview(body string, max int) string {
	runes := []rune(body)
	if len(runes) <= max {
		return body
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
