package dto

import "github.com/open-helpdesk/helpdesk-service/internal/domain"

// StatsResponse mirrors the aggregation report. statusCounts is zero-filled
// for all four statuses; ticketsOverTime omits dates with no tickets.
type StatsResponse struct {
	TotalTickets            int                         `json:"totalTickets"`
	StatusCounts            map[domain.TicketStatus]int `json:"statusCounts"`
	AvgResolutionTimeInDays float64                     `json:"avgResolutionTimeInDays"`
	CategoryCounts          []CategoryCountResponse     `json:"categoryCounts"`
	TicketsOverTime         []DateCountResponse         `json:"ticketsOverTime"`
}

// CategoryCountResponse is one (category, count) pair.
type CategoryCountResponse struct {
	Category domain.TicketCategory `json:"category"`
	Count    int                   `json:"count"`
}

// DateCountResponse is one (date, count) pair, date formatted YYYY-MM-DD.
type DateCountResponse struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}
