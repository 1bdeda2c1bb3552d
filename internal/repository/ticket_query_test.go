package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-helpdesk/helpdesk-service/internal/domain"
)

func TestBuildTicketQuery_NoCriteria(t *testing.T) {
	query, args := BuildTicketQuery(TicketFilter{})

	assert.Contains(t, query, "WHERE 1=1")
	assert.NotContains(t, query, "ORDER BY")
	assert.NotContains(t, query, "LIMIT")
	assert.Empty(t, args)
}

func TestBuildTicketQuery_SingleCriteria(t *testing.T) {
	status := domain.TicketStatusOpen
	priority := domain.TicketPriorityHigh
	category := domain.TicketCategoryIT
	assignee := "acc-42"

	tests := []struct {
		name   string
		filter TicketFilter
		clause string
		arg    any
	}{
		{"status", TicketFilter{Status: &status}, "t.status=$1", status},
		{"priority", TicketFilter{Priority: &priority}, "t.priority=$1", priority},
		{"category", TicketFilter{Category: &category}, "t.category=$1", category},
		{"assignedTo", TicketFilter{AssignedTo: &assignee}, "t.assigned_to=$1", assignee},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			query, args := BuildTicketQuery(tc.filter)
			assert.Contains(t, query, tc.clause)
			require.Len(t, args, 1)
			assert.Equal(t, tc.arg, args[0])
		})
	}
}

func TestBuildTicketQuery_SearchIsCaseInsensitiveSubstring(t *testing.T) {
	search := "  Printer Broken  "
	query, args := BuildTicketQuery(TicketFilter{Search: &search})

	assert.Contains(t, query, "LOWER(t.title) LIKE $1")
	require.Len(t, args, 1)
	assert.Equal(t, "%printer broken%", args[0])
}

func TestBuildTicketQuery_BlankSearchIgnored(t *testing.T) {
	search := "   "
	query, args := BuildTicketQuery(TicketFilter{Search: &search})

	assert.NotContains(t, query, "LIKE")
	assert.Empty(t, args)
}

func TestBuildTicketQuery_DateBoundsInclusive(t *testing.T) {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC)
	query, args := BuildTicketQuery(TicketFilter{DateFrom: &from, DateTo: &to})

	assert.Contains(t, query, "t.created_at >= $1")
	assert.Contains(t, query, "t.created_at <= $2")
	require.Len(t, args, 2)
	assert.Equal(t, from, args[0])
	assert.Equal(t, to, args[1])
}

func TestBuildTicketQuery_CriteriaAreConjoined(t *testing.T) {
	status := domain.TicketStatusOpen
	category := domain.TicketCategoryHR
	search := "badge"
	query, args := BuildTicketQuery(TicketFilter{
		Status:   &status,
		Category: &category,
		Search:   &search,
	})

	assert.Contains(t, query, "t.status=$1 AND t.category=$2 AND LOWER(t.title) LIKE $3")
	assert.Equal(t, []any{status, category, "%badge%"}, args)
}

func TestBuildTicketQuery_NewestFirstOrdering(t *testing.T) {
	query, _ := BuildTicketQuery(TicketFilter{NewestFirst: true})
	assert.Contains(t, query, "ORDER BY t.created_at DESC")
}

func TestBuildTicketQuery_Pagination(t *testing.T) {
	query, _ := BuildTicketQuery(TicketFilter{Limit: 20, Offset: 40})
	assert.Contains(t, query, "LIMIT 20 OFFSET 40")

	query, _ = BuildTicketQuery(TicketFilter{Limit: 10, Offset: -5})
	assert.Contains(t, query, "LIMIT 10 OFFSET 0")
}

func TestBuildTicketQuery_UnrecognizedValuePassesThrough(t *testing.T) {
	// The builder does not validate value domains; an unknown status is
	// bound as-is and simply matches nothing.
	status := domain.TicketStatus("Pending")
	_, args := BuildTicketQuery(TicketFilter{Status: &status})
	require.Len(t, args, 1)
	assert.Equal(t, status, args[0])
}
