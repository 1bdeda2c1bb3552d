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

// TicketService is the mutation and listing surface for tickets. Status is a
// flat value set: any status may follow any other, and closed tickets can be
// reopened. Concurrent writes to the same ticket are last-write-wins at the
// store layer.
type TicketService struct {
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
}

// TicketDependencies bundles collaborators for ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	Dispatcher events.Dispatcher
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title       string
	Description string
	Category    domain.TicketCategory
	Priority    domain.TicketPriority
	Attachment  *string
}

// TicketListFilter describes the staff listing criteria.
type TicketListFilter struct {
	Status     *domain.TicketStatus
	Priority   *domain.TicketPriority
	Category   *domain.TicketCategory
	AssignedTo *string
	Search     *string
	DateFrom   *time.Time
	DateTo     *time.Time
	Limit      int
	Offset     int
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Create files a new ticket for an employee. Category and priority must be
// members of their enumerated sets; the ticket starts Open and unassigned.
func (s *TicketService) Create(ctx context.Context, caller Caller, input TicketCreateInput) (*domain.Ticket, error) {
	if err := authz.Authorize(caller.Role, authz.OpCreateTicket); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" || description == "" {
		return nil, errorutil.NewValidationError("title and description required", nil)
	}
	if !domain.ValidTicketCategory(input.Category) {
		return nil, errorutil.NewValidationError("invalid category", map[string]any{"category": input.Category})
	}
	if !domain.ValidTicketPriority(input.Priority) {
		return nil, errorutil.NewValidationError("invalid priority", map[string]any{"priority": input.Priority})
	}

	ticket := &domain.Ticket{
		Title:       title,
		Description: description,
		Category:    input.Category,
		Priority:    input.Priority,
		Status:      domain.TicketStatusOpen,
		CreatedBy:   caller.ID,
		Attachment:  input.Attachment,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, errorutil.NewStoreUnavailable(err)
	}
	s.publishEvent(ctx, caller, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Payload: events.TicketCreatedPayload{
			Title:    ticket.Title,
			Category: ticket.Category,
			Priority: ticket.Priority,
		},
	})
	return ticket, nil
}

// ListOwn returns the caller's tickets.
func (s *TicketService) ListOwn(ctx context.Context, caller Caller) ([]domain.Ticket, error) {
	if err := authz.Authorize(caller.Role, authz.OpListOwnTickets); err != nil {
		return nil, err
	}
	callerID := caller.ID
	tickets, err := s.tickets.ListWithFilter(ctx, repository.TicketFilter{CreatedBy: &callerID})
	if err != nil {
		return nil, errorutil.NewStoreUnavailable(err)
	}
	return tickets, nil
}

// ListAll returns tickets matching the filter, newest first.
func (s *TicketService) ListAll(ctx context.Context, caller Caller, filter TicketListFilter) ([]domain.Ticket, error) {
	if err := authz.Authorize(caller.Role, authz.OpListAllTickets); err != nil {
		return nil, err
	}
	tickets, err := s.tickets.ListWithFilter(ctx, repository.TicketFilter{
		Status:      filter.Status,
		Priority:    filter.Priority,
		Category:    filter.Category,
		AssignedTo:  filter.AssignedTo,
		Search:      filter.Search,
		DateFrom:    filter.DateFrom,
		DateTo:      filter.DateTo,
		NewestFirst: true,
		Limit:       filter.Limit,
		Offset:      filter.Offset,
	})
	if err != nil {
		return nil, errorutil.NewStoreUnavailable(err)
	}
	return tickets, nil
}

// Get fetches one ticket by id. Any authenticated role may read any ticket;
// internal notes are withheld from employees.
func (s *TicketService) Get(ctx context.Context, caller Caller, ticketID string) (*domain.Ticket, error) {
	if err := authz.Authorize(caller.Role, authz.OpReadTicket); err != nil {
		return nil, err
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, errorutil.MapStoreError(err, "ticket", map[string]any{"ticket_id": ticketID})
	}
	if caller.Role == domain.RoleEmployee {
		ticket.InternalNotes = nil
	}
	return ticket, nil
}

// SetStatus moves a ticket to any of the four statuses. There is no
// transition graph and no terminal state; re-setting the current status is
// allowed and still advances updated_at.
func (s *TicketService) SetStatus(ctx context.Context, caller Caller, ticketID string, newStatus domain.TicketStatus) (*domain.Ticket, error) {
	if err := authz.Authorize(caller.Role, authz.OpUpdateStatus); err != nil {
		return nil, err
	}
	if !domain.ValidTicketStatus(newStatus) {
		return nil, errorutil.NewValidationError("invalid status", map[string]any{"status": newStatus})
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, errorutil.MapStoreError(err, "ticket", map[string]any{"ticket_id": ticketID})
	}
	oldStatus := ticket.Status
	ticket.Status = newStatus
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, errorutil.MapStoreError(err, "ticket", map[string]any{"ticket_id": ticketID})
	}
	s.publishEvent(ctx, caller, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticket.ID,
		Payload: events.TicketStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: newStatus,
		},
	})
	return ticket, nil
}

// Assign sets the assignee unconditionally, overwriting any prior
// assignment. The assignee id is not checked against the account store and
// its role is not verified. Unassignment is not supported.
func (s *TicketService) Assign(ctx context.Context, caller Caller, ticketID, assigneeID string) (*domain.Ticket, error) {
	if err := authz.Authorize(caller.Role, authz.OpAssignTicket); err != nil {
		return nil, err
	}
	if strings.TrimSpace(assigneeID) == "" {
		return nil, errorutil.NewValidationError("assignee id required", nil)
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, errorutil.MapStoreError(err, "ticket", map[string]any{"ticket_id": ticketID})
	}
	oldAssignee := ticket.AssignedTo
	ticket.AssignedTo = &assigneeID
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, errorutil.MapStoreError(err, "ticket", map[string]any{"ticket_id": ticketID})
	}
	s.publishEvent(ctx, caller, events.Event{
		Type:     events.EventTicketAssigned,
		TicketID: ticket.ID,
		Payload: events.TicketAssignedPayload{
			OldAssignee: oldAssignee,
			NewAssignee: assigneeID,
		},
	})
	return ticket, nil
}

// SetInternalNotes overwrites the support-only notes on a ticket.
func (s *TicketService) SetInternalNotes(ctx context.Context, caller Caller, ticketID, notes string) (*domain.Ticket, error) {
	if err := authz.Authorize(caller.Role, authz.OpUpdateInternalNotes); err != nil {
		return nil, err
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, errorutil.MapStoreError(err, "ticket", map[string]any{"ticket_id": ticketID})
	}
	ticket.InternalNotes = &notes
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, errorutil.MapStoreError(err, "ticket", map[string]any{"ticket_id": ticketID})
	}
	s.publishEvent(ctx, caller, events.Event{
		Type:     events.EventTicketNotesUpdated,
		TicketID: ticket.ID,
	})
	return ticket, nil
}

func (s *TicketService) publishEvent(ctx context.Context, caller Caller, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	event.Actor = events.Actor{AccountID: caller.ID, Role: caller.Role}
	_ = s.dispatcher.Publish(ctx, event)
}
