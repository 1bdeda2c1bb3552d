package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-helpdesk/helpdesk-service/internal/auth"
	"github.com/open-helpdesk/helpdesk-service/internal/domain"
	"github.com/open-helpdesk/helpdesk-service/internal/repository"
	"github.com/open-helpdesk/helpdesk-service/internal/service"
)

// staticTicketRepo serves a fixed ticket set for handler tests.
type staticTicketRepo struct {
	tickets []domain.Ticket
}

func (r staticTicketRepo) Create(context.Context, *domain.Ticket) error { return nil }
func (r staticTicketRepo) Update(context.Context, *domain.Ticket) error { return nil }
func (r staticTicketRepo) GetByID(context.Context, string) (*domain.Ticket, error) {
	return nil, pgx.ErrNoRows
}
func (r staticTicketRepo) ListWithFilter(context.Context, repository.TicketFilter) ([]domain.Ticket, error) {
	return r.tickets, nil
}

func TestStatsEndpointWrapsReportInDataEnvelope(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	repo := staticTicketRepo{tickets: []domain.Ticket{
		{ID: "tck-1", Category: domain.TicketCategoryIT, Status: domain.TicketStatusOpen, CreatedAt: created, UpdatedAt: created},
		{ID: "tck-2", Category: domain.TicketCategoryHR, Status: domain.TicketStatusResolved, CreatedAt: created, UpdatedAt: created.Add(24 * time.Hour)},
	}}
	handler := NewStatsHandler(service.NewStatsService(repo))

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("auth_principal", &auth.Principal{
			Account: &domain.Account{ID: "adm-1", Role: domain.RoleAdmin},
		})
		return c.Next()
	})
	app.Get("/tickets/stats", handler.Global)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/tickets/stats", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Contains(t, body, "data")

	var report struct {
		TotalTickets            int     `json:"totalTickets"`
		AvgResolutionTimeInDays float64 `json:"avgResolutionTimeInDays"`
	}
	require.NoError(t, json.Unmarshal(body["data"], &report))
	assert.Equal(t, 2, report.TotalTickets)
	assert.Equal(t, 1.0, report.AvgResolutionTimeInDays)
}
