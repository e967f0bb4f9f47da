// Package members содержит HTTP-обработчики реестра читателей и выдачи книг.
package members

import (
	"errors"
	"fmt"
	"strconv"
	"time"

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
	LogHandlerCreateMember = "handling create member request"
	LogHandlerGetMember    = "handling get member request"
	LogHandlerUpdateMember = "handling update member request"
	LogHandlerDeleteMember = "handling delete member request"
	LogHandlerBorrowBook   = "handling borrow book request"
	LogHandlerReturnBook   = "handling return book request"

	ErrMsgInvalidMemberID    = "invalid member id"
	ErrMsgInvalidBookID      = "invalid book id"
	ErrMsgInvalidDate        = "invalid membership date"
	ErrMsgInvalidRequestBody = "invalid request body"
)

// Handler обработчик HTTP-запросов реестра читателей.
type Handler struct {
	members *app.MemberUseCase
	lending *app.LendingUseCase
}

// NewHandler создает новый экземпляр обработчика читателей.
func NewHandler(members *app.MemberUseCase, lending *app.LendingUseCase) *Handler {
	return &Handler{
		members: members,
		lending: lending,
	}
}

// CreateMember обрабатывает запрос на регистрацию читателя.
func (h *Handler) CreateMember(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.CreateMember"))
	log.Debug(requestCtx, LogHandlerCreateMember)

	var req dto.CreateMemberRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return badRequest(ctx, ErrMsgInvalidRequestBody)
	}

	v := validation.New()
	v.Check(req.MemberName != "", "member_name", "must be provided")
	if !v.Valid() {
		log.Debug(requestCtx, "member validation failed")
		if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": v.Errors,
		}); err != nil {
			return fmt.Errorf("failed to send validation response: %w", err)
		}
		return nil
	}

	var membershipDate time.Time
	if req.MembershipDate != "" {
		parsed, err := dto.ParseDate(req.MembershipDate)
		if err != nil {
			log.Debug(requestCtx, ErrMsgInvalidDate, zap.Error(err))
			return badRequest(ctx, ErrMsgInvalidDate)
		}
		membershipDate = parsed
	}

	member, err := h.members.CreateMember(requestCtx, req.MemberName, membershipDate)
	if err != nil {
		log.Error(requestCtx, "failed to create member", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.Status(fiber.StatusCreated).JSON(dto.MemberFromEntity(member)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// GetMember обрабатывает запрос на получение читателя по ID.
func (h *Handler) GetMember(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.GetMember"))
	log.Debug(requestCtx, LogHandlerGetMember)

	memberID, err := strconv.ParseInt(ctx.Params("member_id"), 10, 64)
	if err != nil {
		log.Debug(requestCtx, ErrMsgInvalidMemberID, zap.Error(err))
		return badRequest(ctx, ErrMsgInvalidMemberID)
	}

	member, err := h.members.GetMember(requestCtx, memberID)
	if err != nil {
		log.Debug(requestCtx, "failed to get member", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.JSON(dto.MemberFromEntity(member)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// UpdateMember обрабатывает запрос на частичное обновление читателя:
// изменяются только переданные поля.
func (h *Handler) UpdateMember(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.UpdateMember"))
	log.Debug(requestCtx, LogHandlerUpdateMember)

	memberID, err := strconv.ParseInt(ctx.Params("member_id"), 10, 64)
	if err != nil {
		log.Debug(requestCtx, ErrMsgInvalidMemberID, zap.Error(err))
		return badRequest(ctx, ErrMsgInvalidMemberID)
	}

	var req dto.UpdateMemberRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return badRequest(ctx, ErrMsgInvalidRequestBody)
	}

	if req.MemberName != nil && *req.MemberName == "" {
		log.Debug(requestCtx, "member validation failed")
		if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": map[string]string{"member_name": "must not be empty"},
		}); err != nil {
			return fmt.Errorf("failed to send validation response: %w", err)
		}
		return nil
	}

	var membershipDate *time.Time
	if req.MembershipDate != nil {
		parsed, err := dto.ParseDate(*req.MembershipDate)
		if err != nil {
			log.Debug(requestCtx, ErrMsgInvalidDate, zap.Error(err))
			return badRequest(ctx, ErrMsgInvalidDate)
		}
		membershipDate = &parsed
	}

	member, err := h.members.UpdateMember(requestCtx, memberID, req.MemberName, membershipDate)
	if err != nil {
		log.Debug(requestCtx, "failed to update member", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.JSON(dto.MemberFromEntity(member)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// DeleteMember обрабатывает запрос на удаление читателя.
func (h *Handler) DeleteMember(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.DeleteMember"))
	log.Debug(requestCtx, LogHandlerDeleteMember)

	memberID, err := strconv.ParseInt(ctx.Params("member_id"), 10, 64)
	if err != nil {
		log.Debug(requestCtx, ErrMsgInvalidMemberID, zap.Error(err))
		return badRequest(ctx, ErrMsgInvalidMemberID)
	}

	if err := h.members.DeleteMember(requestCtx, memberID); err != nil {
		log.Debug(requestCtx, "failed to delete member", zap.Error(err))
		return handleError(ctx, err)
	}

	ctx.Status(fiber.StatusNoContent)
	return nil
}

// BorrowBook обрабатывает запрос на выдачу книги читателю.
func (h *Handler) BorrowBook(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.BorrowBook"))
	log.Debug(requestCtx, LogHandlerBorrowBook)

	memberID, bookID, err := parseLendingParams(ctx)
	if err != nil {
		log.Debug(requestCtx, "invalid lending params", zap.Error(err))
		return badRequest(ctx, err.Error())
	}

	loan, err := h.lending.BorrowBook(requestCtx, memberID, bookID)
	if err != nil {
		log.Debug(requestCtx, "failed to borrow book", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.Status(fiber.StatusCreated).JSON(dto.BorrowedBookFromEntity(loan)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// ReturnBook обрабатывает запрос на возврат книги.
func (h *Handler) ReturnBook(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.ReturnBook"))
	log.Debug(requestCtx, LogHandlerReturnBook)

	memberID, bookID, err := parseLendingParams(ctx)
	if err != nil {
		log.Debug(requestCtx, "invalid lending params", zap.Error(err))
		return badRequest(ctx, err.Error())
	}

	if err := h.lending.ReturnBook(requestCtx, memberID, bookID); err != nil {
		log.Debug(requestCtx, "failed to return book", zap.Error(err))
		return handleError(ctx, err)
	}

	ctx.Status(fiber.StatusNoContent)
	return nil
}

// parseLendingParams извлекает пару (member_id, book_id) из пути запроса.
func parseLendingParams(ctx fiber.Ctx) (int64, int64, error) {
	memberID, err := strconv.ParseInt(ctx.Params("member_id"), 10, 64)
	if err != nil {
		return 0, 0, errors.New(ErrMsgInvalidMemberID)
	}
	bookID, err := strconv.ParseInt(ctx.Params("book_id"), 10, 64)
	if err != nil {
		return 0, 0, errors.New(ErrMsgInvalidBookID)
	}
	return memberID, bookID, nil
}

// badRequest отправляет ответ 400 с сообщением об ошибке.
func badRequest(ctx fiber.Ctx, message string) error {
	if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": message,
	}); err != nil {
		return fmt.Errorf("failed to send bad request response: %w", err)
	}
	return nil
}

// handleError преобразует ошибки уровня бизнес-логики в HTTP-ответ:
// not-found в 404, отказ бизнес-правила в 400.
func handleError(ctx fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, entities.ErrMemberNotFound),
		errors.Is(err, entities.ErrBookNotFound),
		errors.Is(err, entities.ErrLoanNotFound):
		if err := ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		}); err != nil {
			return fmt.Errorf("error sending 404 response: %w", err)
		}
		return nil

	case errors.Is(err, entities.ErrBorrowLimitExceeded),
		errors.Is(err, entities.ErrNoCopiesAvailable),
		errors.Is(err, entities.ErrBookAlreadyBorrowed),
		errors.Is(err, entities.ErrMemberHasActiveLoans):
		if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
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
