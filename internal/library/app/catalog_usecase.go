// Package app implements application business logic for the library service.
package app

import (
	"context"
	"fmt"

	"libledger/internal/library/domain/entities"
	"libledger/internal/library/ports/repositories"
)

// CatalogUseCase представляет собой бизнес-логику каталога книг.
type CatalogUseCase struct {
	bookRepo repositories.BookRepository
}

// NewCatalogUseCase создает новый экземпляр CatalogUseCase.
func NewCatalogUseCase(bookRepo repositories.BookRepository) *CatalogUseCase {
	return &CatalogUseCase{bookRepo: bookRepo}
}

// SaveBook добавляет книгу в каталог. Повторная книга с той же парой
// (title, author) накапливает сток, а не создает дубликат.
func (uc *CatalogUseCase) SaveBook(ctx context.Context, title, author string, amount int64) (*entities.Book, error) {
	book, err := uc.bookRepo.Save(ctx, entities.NewBook(title, author, amount))
	if err != nil {
		return nil, fmt.Errorf("failed to save book: %w", err)
	}
	return book, nil
}

// GetBook возвращает книгу по ID.
func (uc *CatalogUseCase) GetBook(ctx context.Context, id int64) (*entities.Book, error) {
	book, err := uc.bookRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	return book, nil
}

// UpdateBook полностью перезаписывает данные существующей книги.
func (uc *CatalogUseCase) UpdateBook(ctx context.Context, id int64, title, author string, amount int64) (*entities.Book, error) {
	book, err := uc.bookRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	book.Title = title
	book.Author = author
	book.Amount = amount

	updated, err := uc.bookRepo.Update(ctx, book)
	if err != nil {
		return nil, fmt.Errorf("failed to update book: %w", err)
	}
	return updated, nil
}

// DeleteBook удаляет книгу из каталога. Книга с активными выдачами
// не может быть удалена.
func (uc *CatalogUseCase) DeleteBook(ctx context.Context, id int64) error {
	if err := uc.bookRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	return nil
}
