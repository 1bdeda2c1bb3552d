package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/open-helpdesk/helpdesk-service/internal/domain"
	"github.com/open-helpdesk/helpdesk-service/internal/repository"
)

func statsTicket(status domain.TicketStatus, category domain.TicketCategory, created time.Time, resolutionDays float64) domain.Ticket {
	return domain.Ticket{
		ID:        "tck-" + string(category) + "-" + created.Format("0102"),
		Title:     "sample",
		Category:  category,
		Status:    status,
		CreatedBy: "emp-1",
		CreatedAt: created,
		UpdatedAt: created.Add(time.Duration(resolutionDays * float64(24*time.Hour))),
	}
}

func TestStatsService_GlobalAggregation(t *testing.T) {
	day1 := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 5, 3, 10, 0, 0, 0, time.UTC)

	repo := new(MockTicketRepository)
	repo.On("ListWithFilter", mock.Anything, repository.TicketFilter{}).Return([]domain.Ticket{
		statsTicket(domain.TicketStatusOpen, domain.TicketCategoryHR, day1, 0),
		statsTicket(domain.TicketStatusResolved, domain.TicketCategoryIT, day1, 1.0),
		statsTicket(domain.TicketStatusResolved, domain.TicketCategoryHR, day2, 3.0),
	}, nil)
	svc := NewStatsService(repo)

	report, err := svc.Global(context.Background(), adminCaller)
	require.NoError(t, err)

	assert.Equal(t, 3, report.TotalTickets)
	assert.Equal(t, map[domain.TicketStatus]int{
		domain.TicketStatusOpen:       1,
		domain.TicketStatusInProgress: 0,
		domain.TicketStatusResolved:   2,
		domain.TicketStatusClosed:     0,
	}, report.StatusCounts)
	// (1.0 + 3.0) / 2 resolved tickets.
	assert.Equal(t, 2.0, report.AvgResolutionTimeInDays)
	// Categories appear in first-seen traversal order, not alphabetical.
	assert.Equal(t, []CategoryCount{
		{Category: domain.TicketCategoryHR, Count: 2},
		{Category: domain.TicketCategoryIT, Count: 1},
	}, report.CategoryCounts)
	assert.Equal(t, []DateCount{
		{Date: "2024-05-01", Count: 2},
		{Date: "2024-05-03", Count: 1},
	}, report.TicketsOverTime)
}

func TestStatsService_EmptyPopulation(t *testing.T) {
	repo := new(MockTicketRepository)
	repo.On("ListWithFilter", mock.Anything, repository.TicketFilter{}).Return([]domain.Ticket{}, nil)
	svc := NewStatsService(repo)

	report, err := svc.Global(context.Background(), adminCaller)
	require.NoError(t, err)

	assert.Equal(t, 0, report.TotalTickets)
	assert.Equal(t, 0.0, report.AvgResolutionTimeInDays)
	for _, status := range domain.TicketStatuses {
		assert.Equal(t, 0, report.StatusCounts[status])
	}
	assert.Empty(t, report.CategoryCounts)
	assert.NotNil(t, report.CategoryCounts)
	assert.Empty(t, report.TicketsOverTime)
	assert.NotNil(t, report.TicketsOverTime)
}

func TestStatsService_AverageRoundedToOneDecimal(t *testing.T) {
	day := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	repo := new(MockTicketRepository)
	repo.On("ListWithFilter", mock.Anything, mock.Anything).Return([]domain.Ticket{
		statsTicket(domain.TicketStatusResolved, domain.TicketCategoryIT, day, 1.0),
		statsTicket(domain.TicketStatusResolved, domain.TicketCategoryIT, day, 1.5),
		statsTicket(domain.TicketStatusResolved, domain.TicketCategoryIT, day, 2.0),
	}, nil)
	svc := NewStatsService(repo)

	report, err := svc.Global(context.Background(), adminCaller)
	require.NoError(t, err)

	// Mean is 1.5 exactly; a 36h resolution counts as 1.5 days, not 1 or 2.
	assert.Equal(t, 1.5, report.AvgResolutionTimeInDays)
}

func TestStatsService_OnlyResolvedContributeToAverage(t *testing.T) {
	day := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	repo := new(MockTicketRepository)
	repo.On("ListWithFilter", mock.Anything, mock.Anything).Return([]domain.Ticket{
		// Closed tickets sat for ten days but never count toward resolution time.
		statsTicket(domain.TicketStatusClosed, domain.TicketCategoryIT, day, 10.0),
		statsTicket(domain.TicketStatusResolved, domain.TicketCategoryIT, day, 2.0),
	}, nil)
	svc := NewStatsService(repo)

	report, err := svc.Global(context.Background(), adminCaller)
	require.NoError(t, err)

	assert.Equal(t, 2.0, report.AvgResolutionTimeInDays)
}

func TestStatsService_DatesSortedAscendingWithGapsOmitted(t *testing.T) {
	repo := new(MockTicketRepository)
	repo.On("ListWithFilter", mock.Anything, mock.Anything).Return([]domain.Ticket{
		statsTicket(domain.TicketStatusOpen, domain.TicketCategoryIT, time.Date(2024, 7, 9, 23, 50, 0, 0, time.UTC), 0),
		statsTicket(domain.TicketStatusOpen, domain.TicketCategoryIT, time.Date(2024, 7, 2, 1, 0, 0, 0, time.UTC), 0),
		statsTicket(domain.TicketStatusOpen, domain.TicketCategoryIT, time.Date(2024, 7, 9, 0, 5, 0, 0, time.UTC), 0),
	}, nil)
	svc := NewStatsService(repo)

	report, err := svc.Global(context.Background(), adminCaller)
	require.NoError(t, err)

	// July 3rd through 8th saw no tickets and do not appear as zero rows.
	assert.Equal(t, []DateCount{
		{Date: "2024-07-02", Count: 1},
		{Date: "2024-07-09", Count: 2},
	}, report.TicketsOverTime)
}

func TestStatsService_GlobalAdminOnly(t *testing.T) {
	repo := new(MockTicketRepository)
	svc := NewStatsService(repo)

	_, err := svc.Global(context.Background(), employeeCaller)
	assertCode(t, err, "FORBIDDEN")

	_, err = svc.Global(context.Background(), supportCaller)
	assertCode(t, err, "FORBIDDEN")

	repo.AssertNotCalled(t, "ListWithFilter", mock.Anything, mock.Anything)
}

func TestStatsService_ForCreatorScopesToCaller(t *testing.T) {
	repo := new(MockTicketRepository)
	repo.On("ListWithFilter", mock.Anything, mock.MatchedBy(func(filter repository.TicketFilter) bool {
		return filter.CreatedBy != nil && *filter.CreatedBy == employeeCaller.ID && filter.AssignedTo == nil
	})).Return([]domain.Ticket{}, nil)
	svc := NewStatsService(repo)

	_, err := svc.ForCreator(context.Background(), employeeCaller)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestStatsService_ForAssigneeScopesToCaller(t *testing.T) {
	repo := new(MockTicketRepository)
	repo.On("ListWithFilter", mock.Anything, mock.MatchedBy(func(filter repository.TicketFilter) bool {
		return filter.AssignedTo != nil && *filter.AssignedTo == supportCaller.ID && filter.CreatedBy == nil
	})).Return([]domain.Ticket{}, nil)
	svc := NewStatsService(repo)

	_, err := svc.ForAssignee(context.Background(), supportCaller)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}
