// Package http содержит компоненты для HTTP сервера библиотечного сервиса.
package http

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"libledger/internal/library/adapters/http/books"
	"libledger/internal/library/adapters/http/members"
	"libledger/internal/library/adapters/http/middleware"
	"libledger/internal/library/adapters/http/reports"
	"libledger/internal/library/app"
)

// Pinger проверяет доступность хранилища для эндпоинта /health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(fiberApp *fiber.App, catalog *app.CatalogUseCase, registry *app.MemberUseCase, lending *app.LendingUseCase, reporting *app.ReportUseCase, pinger Pinger) {
	bookHandler := books.NewHandler(catalog)
	memberHandler := members.NewHandler(registry, lending)
	reportHandler := reports.NewHandler(reporting)

	// Middleware для всех запросов.
	fiberApp.Use(middleware.NewRequestIDMiddleware())
	fiberApp.Use(middleware.NewLoggerMiddleware())
	fiberApp.Use(middleware.NewRecoveryMiddleware())

	fiberApp.Get("/health", func(ctx fiber.Ctx) error {
		if err := pinger.Ping(middleware.RequestContext(ctx)); err != nil {
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "unavailable",
			})
		}
		return ctx.JSON(fiber.Map{"status": "ok"})
	})

	// API версии 1.
	apiV1 := fiberApp.Group("/api/v1")

	// Каталог книг.
	bookRoutes := apiV1.Group("/books")
	bookRoutes.Post("/", bookHandler.SaveBook)
	bookRoutes.Get("/:book_id", bookHandler.GetBook)
	bookRoutes.Put("/:book_id", bookHandler.UpdateBook)
	bookRoutes.Delete("/:book_id", bookHandler.DeleteBook)

	// Отчеты регистрируются раньше маршрутов с :member_id,
	// чтобы префикс /members/borrowed-books не перехватывался параметром.
	memberRoutes := apiV1.Group("/members")
	memberRoutes.Get("/borrowed-books/distinct", reportHandler.DistinctBorrowedTitles)
	memberRoutes.Get("/borrowed-books/count", reportHandler.BorrowedTitleCounts)
	memberRoutes.Get("/borrowed-books/:member_name", reportHandler.BorrowedByMemberName)

	// Реестр читателей и выдача книг.
	memberRoutes.Post("/", memberHandler.CreateMember)
	memberRoutes.Get("/:member_id", memberHandler.GetMember)
	memberRoutes.Put("/:member_id", memberHandler.UpdateMember)
	memberRoutes.Delete("/:member_id", memberHandler.DeleteMember)
	memberRoutes.Post("/:member_id/borrow/:book_id", memberHandler.BorrowBook)
	memberRoutes.Post("/:member_id/return/:book_id", memberHandler.ReturnBook)

	// Обработчик для несуществующих маршрутов.
	fiberApp.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}
