package service

import (
	"context"
	"math"
	"sort"

	"github.com/open-helpdesk/helpdesk-service/internal/authz"
	"github.com/open-helpdesk/helpdesk-service/internal/domain"
	"github.com/open-helpdesk/helpdesk-service/internal/repository"
	"github.com/open-helpdesk/helpdesk-service/pkg/util/errorutil"
)

const millisPerDay = 86_400_000

// CategoryCount is one (category, count) pair, in grouping traversal order.
type CategoryCount struct {
	Category domain.TicketCategory `json:"category"`
	Count    int                   `json:"count"`
}

// DateCount is one (calendar date, count) pair.
type DateCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// StatsReport summarizes a ticket population.
type StatsReport struct {
	TotalTickets            int                         `json:"totalTickets"`
	StatusCounts            map[domain.TicketStatus]int `json:"statusCounts"`
	AvgResolutionTimeInDays float64                     `json:"avgResolutionTimeInDays"`
	CategoryCounts          []CategoryCount             `json:"categoryCounts"`
	TicketsOverTime         []DateCount                 `json:"ticketsOverTime"`
}

// StatsService aggregates ticket populations. Every call recomputes from
// the store; there is no cache, so results are always fresh.
type StatsService struct {
	tickets repository.TicketRepository
}

// NewStatsService constructs the service.
func NewStatsService(tickets repository.TicketRepository) *StatsService {
	return &StatsService{tickets: tickets}
}

// Global aggregates every ticket. Admin only.
func (s *StatsService) Global(ctx context.Context, caller Caller) (*StatsReport, error) {
	if err := authz.Authorize(caller.Role, authz.OpViewGlobalStats); err != nil {
		return nil, err
	}
	return s.compute(ctx, repository.TicketFilter{})
}

// ForCreator aggregates the tickets the caller filed.
func (s *StatsService) ForCreator(ctx context.Context, caller Caller) (*StatsReport, error) {
	if err := authz.Authorize(caller.Role, authz.OpViewOwnStats); err != nil {
		return nil, err
	}
	callerID := caller.ID
	return s.compute(ctx, repository.TicketFilter{CreatedBy: &callerID})
}

// ForAssignee aggregates the tickets assigned to the caller.
func (s *StatsService) ForAssignee(ctx context.Context, caller Caller) (*StatsReport, error) {
	if err := authz.Authorize(caller.Role, authz.OpViewAssignedStats); err != nil {
		return nil, err
	}
	callerID := caller.ID
	return s.compute(ctx, repository.TicketFilter{AssignedTo: &callerID})
}

func (s *StatsService) compute(ctx context.Context, scope repository.TicketFilter) (*StatsReport, error) {
	tickets, err := s.tickets.ListWithFilter(ctx, scope)
	if err != nil {
		return nil, errorutil.NewStoreUnavailable(err)
	}

	report := &StatsReport{
		TotalTickets:    len(tickets),
		StatusCounts:    make(map[domain.TicketStatus]int, len(domain.TicketStatuses)),
		CategoryCounts:  []CategoryCount{},
		TicketsOverTime: []DateCount{},
	}
	for _, status := range domain.TicketStatuses {
		report.StatusCounts[status] = 0
	}

	var (
		resolvedCount  int
		resolvedDays   float64
		categoryIndex  = map[domain.TicketCategory]int{}
		ticketsPerDate = map[string]int{}
	)
	for i := range tickets {
		ticket := &tickets[i]
		if _, known := report.StatusCounts[ticket.Status]; known {
			report.StatusCounts[ticket.Status]++
		}

		if ticket.Status == domain.TicketStatusResolved {
			resolvedCount++
			// Day fractions, not calendar-day boundaries: a ticket
			// resolved in 36h contributes 1.5.
			resolvedDays += float64(ticket.UpdatedAt.Sub(ticket.CreatedAt).Milliseconds()) / millisPerDay
		}

		if idx, seen := categoryIndex[ticket.Category]; seen {
			report.CategoryCounts[idx].Count++
		} else {
			categoryIndex[ticket.Category] = len(report.CategoryCounts)
			report.CategoryCounts = append(report.CategoryCounts, CategoryCount{Category: ticket.Category, Count: 1})
		}

		ticketsPerDate[ticket.CreatedAt.Format("2006-01-02")]++
	}

	if resolvedCount > 0 {
		report.AvgResolutionTimeInDays = math.Round(resolvedDays/float64(resolvedCount)*10) / 10
	}

	dates := make([]string, 0, len(ticketsPerDate))
	for date := range ticketsPerDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	for _, date := range dates {
		report.TicketsOverTime = append(report.TicketsOverTime, DateCount{Date: date, Count: ticketsPerDate[date]})
	}

	return report, nil
}
