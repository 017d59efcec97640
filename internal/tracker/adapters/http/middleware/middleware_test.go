package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"exercisetracker/internal/tracker/adapters/http/middleware"
	"exercisetracker/pkg/logger"
)

func observe(t *testing.T) *observer.ObservedLogs {
	t.Helper()

	core, recorded := observer.New(zapcore.DebugLevel)
	logger.SetGlobalLogger(logger.NewFromZap(zap.New(core)))
	t.Cleanup(func() { logger.SetGlobalLogger(nil) })
	return recorded
}

func newApp(handler fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())
	app.Get("/ping", handler)
	return app
}

func TestLoggerMiddleware_BindsRequestLogger(t *testing.T) {
	recorded := observe(t)

	app := newApp(func(c fiber.Ctx) error {
		ctx := middleware.RequestContext(c)
		logger.Log(ctx).Info(ctx, "inside handler")
		return c.SendStatus(fiber.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(logger.HeaderRequestID, "req-7")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	entries := recorded.FilterMessage("inside handler").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/ping", fields["path"])
	assert.Equal(t, http.MethodGet, fields["method"])
	assert.Equal(t, "req-7", fields[logger.RequestID])

	completed := recorded.FilterMessage("Request completed").All()
	require.Len(t, completed, 1)
	assert.Equal(t, int64(http.StatusNoContent), completed[0].ContextMap()["status"])
}

func TestRecoveryMiddleware(t *testing.T) {
	recorded := observe(t)

	app := newApp(func(fiber.Ctx) error {
		panic("boom")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(logger.HeaderRequestID))

	panics := recorded.FilterMessage("Server panic").All()
	require.Len(t, panics, 1)
	assert.Equal(t, "boom", panics[0].ContextMap()["error"])
}
