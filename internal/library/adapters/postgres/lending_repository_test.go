package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libledger/internal/library/adapters/postgres"
	"libledger/internal/library/domain/entities"
)

func TestLendingRepository_Borrow(t *testing.T) {
	ctx := context.Background()
	borrowed := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	t.Run("successful borrow", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT amount FROM books WHERE id = \$1 FOR UPDATE`).
			WithArgs(int64(2)).
			WillReturnRows(pgxmock.NewRows([]string{"amount"}).AddRow(int64(5)))
		mock.ExpectQuery(`SELECT id FROM members WHERE id = \$1 FOR UPDATE`).
			WithArgs(int64(1)).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(1)))
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM borrowed_books WHERE member_id = \$1`).
			WithArgs(int64(1)).
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(3)))
		mock.ExpectExec(`UPDATE books SET amount = amount - 1 WHERE id = \$1`).
			WithArgs(int64(2)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectQuery(`INSERT INTO borrowed_books \(book_id, member_id, borrowed_date\)\s+VALUES \(\$1, \$2, CURRENT_DATE\) RETURNING id, borrowed_date`).
			WithArgs(int64(2), int64(1)).
			WillReturnRows(pgxmock.NewRows([]string{"id", "borrowed_date"}).AddRow(int64(7), borrowed))
		mock.ExpectCommit()

		repo := postgres.NewLendingRepository(mock)
		loan, err := repo.Borrow(ctx, 1, 2, 10)

		require.NoError(t, err)
		assert.Equal(t, int64(7), loan.ID)
		assert.Equal(t, int64(2), loan.BookID)
		assert.Equal(t, int64(1), loan.MemberID)
		assert.Equal(t, borrowed, loan.BorrowedDate)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing book", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT amount FROM books WHERE id = \$1 FOR UPDATE`).
			WithArgs(int64(2)).
			WillReturnError(pgx.ErrNoRows)
		mock.ExpectRollback()

		repo := postgres.NewLendingRepository(mock)
		loan, err := repo.Borrow(ctx, 1, 2, 10)

		require.Error(t, err)
		assert.Nil(t, loan)
		assert.ErrorIs(t, err, entities.ErrBookNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing member", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT amount FROM books WHERE id = \$1 FOR UPDATE`).
			WithArgs(int64(2)).
			WillReturnRows(pgxmock.NewRows([]string{"amount"}).AddRow(int64(5)))
		mock.ExpectQuery(`SELECT id FROM members WHERE id = \$1 FOR UPDATE`).
			WithArgs(int64(1)).
			WillReturnError(pgx.ErrNoRows)
		mock.ExpectRollback()

		repo := postgres.NewLendingRepository(mock)
		loan, err := repo.Borrow(ctx, 1, 2, 10)

		require.Error(t, err)
		assert.Nil(t, loan)
		assert.ErrorIs(t, err, entities.ErrMemberNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("borrow limit exceeded", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT amount FROM books WHERE id = \$1 FOR UPDATE`).
			WithArgs(int64(2)).
			WillReturnRows(pgxmock.NewRows([]string{"amount"}).AddRow(int64(5)))
		mock.ExpectQuery(`SELECT id FROM members WHERE id = \$1 FOR UPDATE`).
			WithArgs(int64(1)).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(1)))
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM borrowed_books WHERE member_id = \$1`).
			WithArgs(int64(1)).
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(10)))
		mock.ExpectRollback()

		repo := postgres.NewLendingRepository(mock)
		loan, err := repo.Borrow(ctx, 1, 2, 10)

		require.Error(t, err)
		assert.Nil(t, loan)
		assert.ErrorIs(t, err, entities.ErrBorrowLimitExceeded)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no copies available", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT amount FROM books WHERE id = \$1 FOR UPDATE`).
			WithArgs(int64(2)).
			WillReturnRows(pgxmock.NewRows([]string{"amount"}).AddRow(int64(0)))
		mock.ExpectQuery(`SELECT id FROM members WHERE id = \$1 FOR UPDATE`).
			WithArgs(int64(1)).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(1)))
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM borrowed_books WHERE member_id = \$1`).
			WithArgs(int64(1)).
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(0)))
		mock.ExpectRollback()

		repo := postgres.NewLendingRepository(mock)
		loan, err := repo.Borrow(ctx, 1, 2, 10)

		require.Error(t, err)
		assert.Nil(t, loan)
		assert.ErrorIs(t, err, entities.ErrNoCopiesAvailable)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("pair already on loan is refused", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT amount FROM books WHERE id = \$1 FOR UPDATE`).
			WithArgs(int64(2)).
			WillReturnRows(pgxmock.NewRows([]string{"amount"}).AddRow(int64(5)))
		mock.ExpectQuery(`SELECT id FROM members WHERE id = \$1 FOR UPDATE`).
			WithArgs(int64(1)).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(1)))
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM borrowed_books WHERE member_id = \$1`).
			WithArgs(int64(1)).
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(3)))
		mock.ExpectExec(`UPDATE books SET amount = amount - 1 WHERE id = \$1`).
			WithArgs(int64(2)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectQuery(`INSERT INTO borrowed_books \(book_id, member_id, borrowed_date\)\s+VALUES \(\$1, \$2, CURRENT_DATE\) RETURNING id, borrowed_date`).
			WithArgs(int64(2), int64(1)).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "borrowed_books_member_id_book_id_key"})
		mock.ExpectRollback()

		repo := postgres.NewLendingRepository(mock)
		loan, err := repo.Borrow(ctx, 1, 2, 10)

		require.Error(t, err)
		assert.Nil(t, loan)
		assert.ErrorIs(t, err, entities.ErrBookAlreadyBorrowed)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLendingRepository_Return(t *testing.T) {
	ctx := context.Background()

	t.Run("successful return", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`DELETE FROM borrowed_books WHERE member_id = \$1 AND book_id = \$2 RETURNING id`).
			WithArgs(int64(1), int64(2)).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))
		mock.ExpectExec(`UPDATE books SET amount = amount \+ 1 WHERE id = \$1`).
			WithArgs(int64(2)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectCommit()

		repo := postgres.NewLendingRepository(mock)
		require.NoError(t, repo.Return(ctx, 1, 2))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no active loan", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`DELETE FROM borrowed_books WHERE member_id = \$1 AND book_id = \$2 RETURNING id`).
			WithArgs(int64(1), int64(2)).
			WillReturnError(pgx.ErrNoRows)
		mock.ExpectRollback()

		repo := postgres.NewLendingRepository(mock)
		err = repo.Return(ctx, 1, 2)

		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrLoanNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLendingRepository_ListActiveLoanTitles(t *testing.T) {
	ctx := context.Background()

	t.Run("titles in loan order with duplicates", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT b.title\s+FROM borrowed_books bb\s+JOIN books b ON b.id = bb.book_id\s+ORDER BY bb.id`).
			WillReturnRows(pgxmock.NewRows([]string{"title"}).
				AddRow("Dune").
				AddRow("Foundation").
				AddRow("Dune"))

		repo := postgres.NewLendingRepository(mock)
		titles, err := repo.ListActiveLoanTitles(ctx)

		require.NoError(t, err)
		assert.Equal(t, []string{"Dune", "Foundation", "Dune"}, titles)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no active loans", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT b.title\s+FROM borrowed_books bb\s+JOIN books b ON b.id = bb.book_id\s+ORDER BY bb.id`).
			WillReturnRows(pgxmock.NewRows([]string{"title"}))

		repo := postgres.NewLendingRepository(mock)
		titles, err := repo.ListActiveLoanTitles(ctx)

		require.NoError(t, err)
		assert.Empty(t, titles)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLendingRepository_ListBooksByMemberName(t *testing.T) {
	ctx := context.Background()

	t.Run("books for matching members", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT b.id, b.title, b.author, b.amount\s+FROM borrowed_books bb\s+JOIN books b ON b.id = bb.book_id\s+JOIN members m ON m.id = bb.member_id\s+WHERE m.member_name = \$1\s+ORDER BY bb.id`).
			WithArgs("John").
			WillReturnRows(pgxmock.NewRows([]string{"id", "title", "author", "amount"}).
				AddRow(int64(1), "Dune", "Frank Herbert", int64(4)).
				AddRow(int64(2), "Foundation", "Isaac Asimov", int64(2)))

		repo := postgres.NewLendingRepository(mock)
		books, err := repo.ListBooksByMemberName(ctx, "John")

		require.NoError(t, err)
		require.Len(t, books, 2)
		assert.Equal(t, "Dune", books[0].Title)
		assert.Equal(t, "Foundation", books[1].Title)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown member name", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`WHERE m.member_name = \$1`).
			WithArgs("Nobody").
			WillReturnRows(pgxmock.NewRows([]string{"id", "title", "author", "amount"}))

		repo := postgres.NewLendingRepository(mock)
		books, err := repo.ListBooksByMemberName(ctx, "Nobody")

		require.NoError(t, err)
		assert.Empty(t, books)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
