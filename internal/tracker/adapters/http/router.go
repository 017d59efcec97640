// Package http содержит компоненты HTTP сервера трекера.
package http

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"

	"exercisetracker/internal/tracker/adapters/http/middleware"
	"exercisetracker/internal/tracker/adapters/http/site"
	"exercisetracker/internal/tracker/adapters/http/users"
	"exercisetracker/internal/tracker/ports/api"
)

// ErrMsgRouteNotFound - тело ответа для несуществующих маршрутов.
const ErrMsgRouteNotFound = "Route not found"

// HealthEndpoint - маршрут проверки работоспособности для балансировщиков и оркестраторов.
const HealthEndpoint = "/healthz"

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, tracker api.TrackerUseCase) {
	usersHandler := users.NewHandler(tracker)
	staticSite := site.New()

	// Middleware для всех запросов.
	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())
	app.Use(cors.New())

	app.Get("/", staticSite.Index)
	app.Get("/public*", staticSite.Assets)

	health := healthcheck.NewHealthChecker()
	app.Get(HealthEndpoint, health)
	app.Get(healthcheck.DefaultLivenessEndpoint, health)
	app.Get(healthcheck.DefaultReadinessEndpoint, health)

	userRoutes := app.Group("/api/users")
	userRoutes.Post("/", usersHandler.CreateUser)
	userRoutes.Get("/", usersHandler.ListUsers)
	userRoutes.Post("/:id/exercises", usersHandler.AddExercise)
	userRoutes.Get("/:id/logs", usersHandler.GetLogs)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": ErrMsgRouteNotFound,
		})
	})
}
