package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"libledger/internal/library/domain/entities"
	"libledger/internal/library/ports/repositories"
	"libledger/pkg/logger"
)

// BookRepository реализует интерфейс repositories.BookRepository для работы с Postgres.
type BookRepository struct {
	pool PgxPoolInterface
}

// NewBookRepository создает новый репозиторий каталога книг.
func NewBookRepository(pool PgxPoolInterface) repositories.BookRepository {
	return &BookRepository{pool: pool}
}

// Save добавляет книгу в каталог одним upsert: при конфликте по паре
// (title, author) сток существующей строки увеличивается на единицу.
// Конкурентные первые добавления одной книги арбитрирует уникальный
// индекс, проигравший переходит на ветку DO UPDATE.
func (r *BookRepository) Save(ctx context.Context, book *entities.Book) (*entities.Book, error) {
	log := logger.Log(ctx).With(zap.String("repository", "book"), zap.String("method", "Save"))

	saved := entities.Book{Title: book.Title, Author: book.Author}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO books (title, author, amount) VALUES ($1, $2, $3)
         ON CONFLICT (title, author) DO UPDATE SET amount = books.amount + 1
         RETURNING id, amount`,
		book.Title, book.Author, book.Amount,
	).Scan(&saved.ID, &saved.Amount)
	if err != nil {
		log.Error(ctx, "failed to save book", zap.Error(err))
		return nil, fmt.Errorf("failed to save book: %w", err)
	}

	log.Debug(ctx, "book saved", zap.Int64("bookID", saved.ID), zap.Int64("amount", saved.Amount))
	return &saved, nil
}

// GetByID находит книгу по ID.
func (r *BookRepository) GetByID(ctx context.Context, id int64) (*entities.Book, error) {
	log := logger.Log(ctx).With(zap.String("repository", "book"), zap.String("method", "GetByID"))

	var book entities.Book
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, author, amount FROM books WHERE id = $1`,
		id,
	).Scan(&book.ID, &book.Title, &book.Author, &book.Amount)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "book not found", zap.Int64("bookID", id))
			return nil, entities.ErrBookNotFound
		}
		log.Error(ctx, "failed to get book", zap.Error(err))
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	return &book, nil
}

// Update полностью перезаписывает данные книги.
func (r *BookRepository) Update(ctx context.Context, book *entities.Book) (*entities.Book, error) {
	log := logger.Log(ctx).With(zap.String("repository", "book"), zap.String("method", "Update"))

	result, err := r.pool.Exec(ctx,
		`UPDATE books SET title = $1, author = $2, amount = $3 WHERE id = $4`,
		book.Title, book.Author, book.Amount, book.ID,
	)
	if err != nil {
		log.Error(ctx, "failed to update book", zap.Error(err))
		return nil, fmt.Errorf("failed to update book: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "book not found", zap.Int64("bookID", book.ID))
		return nil, entities.ErrBookNotFound
	}

	return book, nil
}

// Delete удаляет книгу. Строка книги блокируется FOR UPDATE, поэтому
// проверка активных выдач и удаление сериализуются с конкурентными
// borrow-операциями, блокирующими ту же строку.
func (r *BookRepository) Delete(ctx context.Context, id int64) error {
	log := logger.Log(ctx).With(zap.String("repository", "book"), zap.String("method", "Delete"))

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		log.Error(ctx, "failed to begin transaction", zap.Error(err))
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var lockedID int64
	err = tx.QueryRow(ctx, `SELECT id FROM books WHERE id = $1 FOR UPDATE`, id).Scan(&lockedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "book not found", zap.Int64("bookID", id))
			return entities.ErrBookNotFound
		}
		log.Error(ctx, "failed to lock book", zap.Error(err))
		return fmt.Errorf("failed to lock book: %w", err)
	}

	var activeLoans int64
	err = tx.QueryRow(ctx, `SELECT COUNT(*) FROM borrowed_books WHERE book_id = $1`, id).Scan(&activeLoans)
	if err != nil {
		log.Error(ctx, "failed to count active loans", zap.Error(err))
		return fmt.Errorf("failed to count active loans: %w", err)
	}
	if activeLoans > 0 {
		log.Debug(ctx, "book has active loans", zap.Int64("bookID", id), zap.Int64("loans", activeLoans))
		return entities.ErrBookHasActiveLoans
	}

	if _, err := tx.Exec(ctx, `DELETE FROM books WHERE id = $1`, id); err != nil {
		log.Error(ctx, "failed to delete book", zap.Error(err))
		return fmt.Errorf("failed to delete book: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		log.Error(ctx, "failed to commit transaction", zap.Error(err))
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Debug(ctx, "book deleted", zap.Int64("bookID", id))
	return nil
}
