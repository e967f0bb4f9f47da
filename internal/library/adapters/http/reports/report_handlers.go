// Package reports содержит HTTP-обработчики отчетов по активным выдачам.
package reports

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"libledger/internal/library/adapters/http/middleware"
	"libledger/internal/library/app"
	"libledger/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogHandlerBorrowedByName = "handling borrowed-by-member-name request"
	LogHandlerDistinctTitles = "handling distinct borrowed titles request"
	LogHandlerTitleCounts    = "handling borrowed title counts request"

	ErrMsgMissingMemberName = "member name must be provided"
)

// Handler обработчик HTTP-запросов отчетов.
type Handler struct {
	reports *app.ReportUseCase
}

// NewHandler создает новый экземпляр обработчика отчетов.
func NewHandler(reports *app.ReportUseCase) *Handler {
	return &Handler{reports: reports}
}

// BorrowedByMemberName возвращает книги на руках у читателей с указанным именем.
func (h *Handler) BorrowedByMemberName(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.BorrowedByMemberName"))
	log.Debug(requestCtx, LogHandlerBorrowedByName)

	memberName := ctx.Params("member_name")
	if memberName == "" {
		log.Debug(requestCtx, ErrMsgMissingMemberName)
		if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgMissingMemberName,
		}); err != nil {
			return fmt.Errorf("failed to send bad request response: %w", err)
		}
		return nil
	}

	books, err := h.reports.BorrowedByMemberName(requestCtx, memberName)
	if err != nil {
		log.Error(requestCtx, "failed to build report", zap.Error(err))
		return internalError(ctx)
	}

	if err := ctx.JSON(books); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// DistinctBorrowedTitles возвращает уникальные названия книг по активным выдачам.
func (h *Handler) DistinctBorrowedTitles(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.DistinctBorrowedTitles"))
	log.Debug(requestCtx, LogHandlerDistinctTitles)

	titles, err := h.reports.DistinctBorrowedTitles(requestCtx)
	if err != nil {
		log.Error(requestCtx, "failed to build report", zap.Error(err))
		return internalError(ctx)
	}

	if err := ctx.JSON(titles); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// BorrowedTitleCounts возвращает число активных выдач по каждому названию.
func (h *Handler) BorrowedTitleCounts(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.BorrowedTitleCounts"))
	log.Debug(requestCtx, LogHandlerTitleCounts)

	counts, err := h.reports.BorrowedTitleCounts(requestCtx)
	if err != nil {
		log.Error(requestCtx, "failed to build report", zap.Error(err))
		return internalError(ctx)
	}

	if err := ctx.JSON(counts); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// internalError отправляет ответ 500.
func internalError(ctx fiber.Ctx) error {
	if err := ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Internal server error",
	}); err != nil {
		return fmt.Errorf("error sending 500 response: %w", err)
	}
	return nil
}
