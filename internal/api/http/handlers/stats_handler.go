package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/open-helpdesk/helpdesk-service/internal/api/dto"
	"github.com/open-helpdesk/helpdesk-service/internal/service"
)

// StatsHandler serves aggregate ticket statistics.
type StatsHandler struct {
	stats *service.StatsService
}

// NewStatsHandler constructs handler.
func NewStatsHandler(stats *service.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// Global GET /tickets/stats.
func (h *StatsHandler) Global(c *fiber.Ctx) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return err
	}
	report, err := h.stats.Global(c.Context(), caller)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": statsResponse(report)})
}

// My GET /tickets/stats/my.
func (h *StatsHandler) My(c *fiber.Ctx) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return err
	}
	report, err := h.stats.ForCreator(c.Context(), caller)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": statsResponse(report)})
}

// Assigned GET /tickets/stats/assigned.
func (h *StatsHandler) Assigned(c *fiber.Ctx) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return err
	}
	report, err := h.stats.ForAssignee(c.Context(), caller)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": statsResponse(report)})
}

func statsResponse(report *service.StatsReport) dto.StatsResponse {
	categories := make([]dto.CategoryCountResponse, 0, len(report.CategoryCounts))
	for _, entry := range report.CategoryCounts {
		categories = append(categories, dto.CategoryCountResponse{Category: entry.Category, Count: entry.Count})
	}
	timeline := make([]dto.DateCountResponse, 0, len(report.TicketsOverTime))
	for _, entry := range report.TicketsOverTime {
		timeline = append(timeline, dto.DateCountResponse{Date: entry.Date, Count: entry.Count})
	}
	return dto.StatsResponse{
		TotalTickets:            report.TotalTickets,
		StatusCounts:            report.StatusCounts,
		AvgResolutionTimeInDays: report.AvgResolutionTimeInDays,
		CategoryCounts:          categories,
		TicketsOverTime:         timeline,
	}
}
