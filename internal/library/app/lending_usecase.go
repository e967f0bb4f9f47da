package app

import (
	"context"
	"fmt"

	"libledger/internal/library/domain/entities"
	"libledger/internal/library/ports/repositories"
)

// DefaultBorrowLimit - лимит одновременных выдач на читателя по умолчанию.
const DefaultBorrowLimit int64 = 10

// LendingUseCase представляет собой бизнес-логику выдачи и возврата книг.
type LendingUseCase struct {
	lendingRepo repositories.LendingRepository
	borrowLimit int64
}

// NewLendingUseCase создает новый экземпляр LendingUseCase.
// Неположительный borrowLimit заменяется значением по умолчанию.
func NewLendingUseCase(lendingRepo repositories.LendingRepository, borrowLimit int64) *LendingUseCase {
	if borrowLimit <= 0 {
		borrowLimit = DefaultBorrowLimit
	}
	return &LendingUseCase{
		lendingRepo: lendingRepo,
		borrowLimit: borrowLimit,
	}
}

// BorrowBook выдает книгу читателю. Отказы: читатель или книга не найдены,
// превышен лимит выдач, нет доступных экземпляров. Проверки и изменение
// стока выполняются хранилищем как единая транзакция.
func (uc *LendingUseCase) BorrowBook(ctx context.Context, memberID, bookID int64) (*entities.BorrowedBook, error) {
	loan, err := uc.lendingRepo.Borrow(ctx, memberID, bookID, uc.borrowLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to borrow book: %w", err)
	}
	return loan, nil
}

// ReturnBook возвращает книгу. Отказ, если активной выдачи для пары
// (memberID, bookID) не существует.
func (uc *LendingUseCase) ReturnBook(ctx context.Context, memberID, bookID int64) error {
	if err := uc.lendingRepo.Return(ctx, memberID, bookID); err != nil {
		return fmt.Errorf("failed to return book: %w", err)
	}
	return nil
}
