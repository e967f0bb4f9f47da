package repositories

import (
	"context"

	"libledger/internal/library/domain/entities"
)

// LendingRepository определяет интерфейс для работы с выдачами.
// Borrow и Return выполняют многострочные изменения атомарно: проверка
// условий и изменение стока фиксируются либо целиком, либо никак.
type LendingRepository interface {
	// Borrow выдает книгу читателю: проверяет существование обеих сторон,
	// лимит выдач и доступность экземпляров, уменьшает сток и создает
	// запись выдачи с текущей датой.
	Borrow(ctx context.Context, memberID, bookID int64, borrowLimit int64) (*entities.BorrowedBook, error)
	// Return возвращает книгу: удаляет запись выдачи для пары
	// (memberID, bookID) и увеличивает сток.
	Return(ctx context.Context, memberID, bookID int64) error

	// ListActiveLoanTitles возвращает названия книг по всем активным выдачам,
	// по одному на выдачу, в естественном порядке хранилища.
	ListActiveLoanTitles(ctx context.Context) ([]string, error)
	// ListBooksByMemberName возвращает книги, находящиеся на руках у
	// читателей с указанным именем.
	ListBooksByMemberName(ctx context.Context, memberName string) ([]*entities.Book, error)
}
