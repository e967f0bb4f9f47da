// Package repositories defines repository interfaces for the library service.
package repositories

import (
	"context"

	"libledger/internal/library/domain/entities"
)

// BookRepository определяет интерфейс для работы с каталогом книг.
type BookRepository interface {
	// Save добавляет книгу в каталог. Если книга с такой же парой
	// (title, author) уже существует, увеличивает ее количество на единицу
	// вместо создания новой строки.
	Save(ctx context.Context, book *entities.Book) (*entities.Book, error)
	GetByID(ctx context.Context, id int64) (*entities.Book, error)
	// Update полностью перезаписывает title/author/amount существующей книги.
	Update(ctx context.Context, book *entities.Book) (*entities.Book, error)
	// Delete удаляет книгу; возвращает entities.ErrBookHasActiveLoans,
	// если на книгу есть активные выдачи.
	Delete(ctx context.Context, id int64) error
}
