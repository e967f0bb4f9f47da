package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"libledger/internal/library/domain/entities"
	"libledger/internal/library/ports/repositories"
	"libledger/pkg/logger"
)

// uniqueViolationCode - код ошибки Postgres unique_violation.
const uniqueViolationCode = "23505"

// LendingRepository реализует интерфейс repositories.LendingRepository для работы с Postgres.
type LendingRepository struct {
	pool PgxPoolInterface
}

// NewLendingRepository создает новый репозиторий выдач.
func NewLendingRepository(pool PgxPoolInterface) repositories.LendingRepository {
	return &LendingRepository{pool: pool}
}

// Borrow выдает книгу читателю в одной транзакции. Строки книги и
// читателя блокируются FOR UPDATE до всех проверок (всегда в порядке
// книга, затем читатель): конкурентные выдачи последнего экземпляра
// сериализуются на строке книги, а выдачи одному читателю - на строке
// читателя, поэтому ни сток, ни лимит выдач не нарушаются.
func (r *LendingRepository) Borrow(ctx context.Context, memberID, bookID int64, borrowLimit int64) (*entities.BorrowedBook, error) {
	log := logger.Log(ctx).With(
		zap.String("repository", "lending"),
		zap.String("method", "Borrow"),
		zap.Int64("memberID", memberID),
		zap.Int64("bookID", bookID))

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		log.Error(ctx, "failed to begin transaction", zap.Error(err))
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var amount int64
	err = tx.QueryRow(ctx, `SELECT amount FROM books WHERE id = $1 FOR UPDATE`, bookID).Scan(&amount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "book not found")
			return nil, entities.ErrBookNotFound
		}
		log.Error(ctx, "failed to lock book", zap.Error(err))
		return nil, fmt.Errorf("failed to lock book: %w", err)
	}

	var lockedMemberID int64
	err = tx.QueryRow(ctx, `SELECT id FROM members WHERE id = $1 FOR UPDATE`, memberID).Scan(&lockedMemberID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "member not found")
			return nil, entities.ErrMemberNotFound
		}
		log.Error(ctx, "failed to lock member", zap.Error(err))
		return nil, fmt.Errorf("failed to lock member: %w", err)
	}

	var activeLoans int64
	err = tx.QueryRow(ctx, `SELECT COUNT(*) FROM borrowed_books WHERE member_id = $1`, memberID).Scan(&activeLoans)
	if err != nil {
		log.Error(ctx, "failed to count member loans", zap.Error(err))
		return nil, fmt.Errorf("failed to count member loans: %w", err)
	}
	if activeLoans >= borrowLimit {
		log.Debug(ctx, "borrow limit exceeded", zap.Int64("loans", activeLoans), zap.Int64("limit", borrowLimit))
		return nil, entities.ErrBorrowLimitExceeded
	}

	if amount <= 0 {
		log.Debug(ctx, "no copies available")
		return nil, entities.ErrNoCopiesAvailable
	}

	if _, err := tx.Exec(ctx, `UPDATE books SET amount = amount - 1 WHERE id = $1`, bookID); err != nil {
		log.Error(ctx, "failed to decrement book amount", zap.Error(err))
		return nil, fmt.Errorf("failed to decrement book amount: %w", err)
	}

	loan := entities.BorrowedBook{BookID: bookID, MemberID: memberID}
	err = tx.QueryRow(ctx,
		`INSERT INTO borrowed_books (book_id, member_id, borrowed_date)
         VALUES ($1, $2, CURRENT_DATE) RETURNING id, borrowed_date`,
		bookID, memberID,
	).Scan(&loan.ID, &loan.BorrowedDate)
	if err != nil {
		// Уникальный индекс (member_id, book_id): пара уже на руках.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			log.Debug(ctx, "book already borrowed by member")
			return nil, entities.ErrBookAlreadyBorrowed
		}
		log.Error(ctx, "failed to insert loan", zap.Error(err))
		return nil, fmt.Errorf("failed to insert loan: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		log.Error(ctx, "failed to commit transaction", zap.Error(err))
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Debug(ctx, "book borrowed", zap.Int64("loanID", loan.ID))
	return &loan, nil
}

// Return возвращает книгу в одной транзакции: удаляет запись выдачи
// и увеличивает сток той же книги.
func (r *LendingRepository) Return(ctx context.Context, memberID, bookID int64) error {
	log := logger.Log(ctx).With(
		zap.String("repository", "lending"),
		zap.String("method", "Return"),
		zap.Int64("memberID", memberID),
		zap.Int64("bookID", bookID))

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		log.Error(ctx, "failed to begin transaction", zap.Error(err))
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var loanID int64
	err = tx.QueryRow(ctx,
		`DELETE FROM borrowed_books WHERE member_id = $1 AND book_id = $2 RETURNING id`,
		memberID, bookID,
	).Scan(&loanID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "active loan not found")
			return entities.ErrLoanNotFound
		}
		log.Error(ctx, "failed to delete loan", zap.Error(err))
		return fmt.Errorf("failed to delete loan: %w", err)
	}

	if _, err := tx.Exec(ctx, `UPDATE books SET amount = amount + 1 WHERE id = $1`, bookID); err != nil {
		log.Error(ctx, "failed to increment book amount", zap.Error(err))
		return fmt.Errorf("failed to increment book amount: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		log.Error(ctx, "failed to commit transaction", zap.Error(err))
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Debug(ctx, "book returned", zap.Int64("loanID", loanID))
	return nil
}

// ListActiveLoanTitles возвращает названия книг по всем активным выдачам,
// по одному на выдачу, в порядке создания выдач.
func (r *LendingRepository) ListActiveLoanTitles(ctx context.Context) ([]string, error) {
	log := logger.Log(ctx).With(zap.String("repository", "lending"), zap.String("method", "ListActiveLoanTitles"))

	rows, err := r.pool.Query(ctx,
		`SELECT b.title
         FROM borrowed_books bb
         JOIN books b ON b.id = bb.book_id
         ORDER BY bb.id`)
	if err != nil {
		log.Error(ctx, "failed to list loan titles", zap.Error(err))
		return nil, fmt.Errorf("failed to list loan titles: %w", err)
	}
	defer rows.Close()

	titles := make([]string, 0)
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			log.Error(ctx, "failed to scan loan title", zap.Error(err))
			return nil, fmt.Errorf("failed to scan loan title: %w", err)
		}
		titles = append(titles, title)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return titles, nil
}

// ListBooksByMemberName возвращает книги на руках у читателей с указанным
// именем, в порядке создания выдач.
func (r *LendingRepository) ListBooksByMemberName(ctx context.Context, memberName string) ([]*entities.Book, error) {
	log := logger.Log(ctx).With(zap.String("repository", "lending"), zap.String("method", "ListBooksByMemberName"))

	rows, err := r.pool.Query(ctx,
		`SELECT b.id, b.title, b.author, b.amount
         FROM borrowed_books bb
         JOIN books b ON b.id = bb.book_id
         JOIN members m ON m.id = bb.member_id
         WHERE m.member_name = $1
         ORDER BY bb.id`,
		memberName)
	if err != nil {
		log.Error(ctx, "failed to list borrowed books", zap.Error(err))
		return nil, fmt.Errorf("failed to list borrowed books: %w", err)
	}
	defer rows.Close()

	books := make([]*entities.Book, 0)
	for rows.Next() {
		var book entities.Book
		if err := rows.Scan(&book.ID, &book.Title, &book.Author, &book.Amount); err != nil {
			log.Error(ctx, "failed to scan book", zap.Error(err))
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, &book)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return books, nil
}
