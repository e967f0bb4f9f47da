// Package books содержит HTTP-обработчики каталога книг.
package books

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"libledger/internal/library/adapters/http/middleware"
	"libledger/internal/library/app"
	"libledger/internal/library/app/dto"
	"libledger/internal/library/domain/entities"
	"libledger/internal/library/validation"
	"libledger/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogHandlerSaveBook   = "handling save book request"
	LogHandlerGetBook    = "handling get book request"
	LogHandlerUpdateBook = "handling update book request"
	LogHandlerDeleteBook = "handling delete book request"

	ErrMsgInvalidBookID      = "invalid book id"
	ErrMsgInvalidRequestBody = "invalid request body"
)

// Handler обработчик HTTP-запросов каталога книг.
type Handler struct {
	catalog *app.CatalogUseCase
}

// NewHandler создает новый экземпляр обработчика каталога.
func NewHandler(catalog *app.CatalogUseCase) *Handler {
	return &Handler{catalog: catalog}
}

// SaveBook обрабатывает запрос на добавление книги в каталог.
func (h *Handler) SaveBook(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.SaveBook"))
	log.Debug(requestCtx, LogHandlerSaveBook)

	var req dto.CreateBookRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidRequestBody,
		}); err != nil {
			return fmt.Errorf("failed to send bad request response: %w", err)
		}
		return nil
	}

	if v := validateBookFields(req.Title, req.Author, req.Amount); !v.Valid() {
		log.Debug(requestCtx, "book validation failed")
		if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": v.Errors,
		}); err != nil {
			return fmt.Errorf("failed to send validation response: %w", err)
		}
		return nil
	}

	book, err := h.catalog.SaveBook(requestCtx, req.Title, req.Author, req.Amount)
	if err != nil {
		log.Error(requestCtx, "failed to save book", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.Status(fiber.StatusCreated).JSON(book); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// GetBook обрабатывает запрос на получение книги по ID.
func (h *Handler) GetBook(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.GetBook"))
	log.Debug(requestCtx, LogHandlerGetBook)

	bookID, err := strconv.ParseInt(ctx.Params("book_id"), 10, 64)
	if err != nil {
		log.Debug(requestCtx, ErrMsgInvalidBookID, zap.Error(err))
		if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidBookID,
		}); err != nil {
			return fmt.Errorf("failed to send bad request response: %w", err)
		}
		return nil
	}

	book, err := h.catalog.GetBook(requestCtx, bookID)
	if err != nil {
		log.Debug(requestCtx, "failed to get book", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.JSON(book); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// UpdateBook обрабатывает запрос на полную перезапись книги.
func (h *Handler) UpdateBook(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.UpdateBook"))
	log.Debug(requestCtx, LogHandlerUpdateBook)

	bookID, err := strconv.ParseInt(ctx.Params("book_id"), 10, 64)
	if err != nil {
		log.Debug(requestCtx, ErrMsgInvalidBookID, zap.Error(err))
		if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidBookID,
		}); err != nil {
			return fmt.Errorf("failed to send bad request response: %w", err)
		}
		return nil
	}

	var req dto.UpdateBookRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidRequestBody,
		}); err != nil {
			return fmt.Errorf("failed to send bad request response: %w", err)
		}
		return nil
	}

	if v := validateBookFields(req.Title, req.Author, req.Amount); !v.Valid() {
		log.Debug(requestCtx, "book validation failed")
		if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": v.Errors,
		}); err != nil {
			return fmt.Errorf("failed to send validation response: %w", err)
		}
		return nil
	}

	book, err := h.catalog.UpdateBook(requestCtx, bookID, req.Title, req.Author, req.Amount)
	if err != nil {
		log.Debug(requestCtx, "failed to update book", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.JSON(book); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// DeleteBook обрабатывает запрос на удаление книги.
func (h *Handler) DeleteBook(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.DeleteBook"))
	log.Debug(requestCtx, LogHandlerDeleteBook)

	bookID, err := strconv.ParseInt(ctx.Params("book_id"), 10, 64)
	if err != nil {
		log.Debug(requestCtx, ErrMsgInvalidBookID, zap.Error(err))
		if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidBookID,
		}); err != nil {
			return fmt.Errorf("failed to send bad request response: %w", err)
		}
		return nil
	}

	if err := h.catalog.DeleteBook(requestCtx, bookID); err != nil {
		log.Debug(requestCtx, "failed to delete book", zap.Error(err))
		return handleError(ctx, err)
	}

	ctx.Status(fiber.StatusNoContent)
	return nil
}

// validateBookFields проверяет форматы полей книги перед вызовом ядра.
func validateBookFields(title, author string, amount int64) *validation.Validator {
	v := validation.New()
	v.Check(title != "", "title", "must be provided")
	v.Check(len(title) >= validation.MinTitleLength, "title", "must be at least 3 characters long")
	v.Check(validation.Matches(title, validation.TitleRX), "title", "must start with a capital letter and contain only letters")
	v.Check(author != "", "author", "must be provided")
	v.Check(validation.Matches(author, validation.AuthorRX), "author", "must be in the format 'Name Surname' with capital letters")
	v.Check(amount >= 0, "amount", "must not be negative")
	return v
}

// handleError преобразует ошибки уровня бизнес-логики в HTTP-ответ:
// not-found в 404, отказ бизнес-правила в 400.
func handleError(ctx fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, entities.ErrBookNotFound):
		if err := ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": entities.ErrBookNotFound.Error(),
		}); err != nil {
			return fmt.Errorf("error sending 404 response: %w", err)
		}
		return nil

	case errors.Is(err, entities.ErrBookHasActiveLoans):
		if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": entities.ErrBookHasActiveLoans.Error(),
		}); err != nil {
			return fmt.Errorf("error sending 400 response: %w", err)
		}
		return nil
	}

	if err := ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Internal server error",
	}); err != nil {
		return fmt.Errorf("error sending 500 response: %w", err)
	}
	return nil
}
