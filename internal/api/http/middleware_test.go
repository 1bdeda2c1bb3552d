package http

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/open-helpdesk/helpdesk-service/internal/observability"
	"github.com/open-helpdesk/helpdesk-service/pkg/util/errorutil"
)

func newObservedApp(t *testing.T) (*fiber.App, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.InfoLevel)
	app := fiber.New()
	RegisterMiddlewares(app, zap.New(core), observability.NewMetrics(), 0)
	return app, logs
}

func TestRequestLoggerRecordsConvertedErrorStatus(t *testing.T) {
	app, logs := newObservedApp(t)
	app.Get("/tickets/missing", func(c *fiber.Ctx) error {
		return errorutil.NewNotFound("ticket", nil)
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/tickets/missing", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(fiber.StatusNotFound), entries[0].ContextMap()["status"])
}

func TestRequestLoggerRecordsSuccessStatus(t *testing.T) {
	app, logs := newObservedApp(t)
	app.Get("/ok", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"data": "ok"})
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/ok", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(fiber.StatusOK), entries[0].ContextMap()["status"])
}
