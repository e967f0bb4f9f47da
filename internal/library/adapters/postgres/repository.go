// Package postgres provides PostgreSQL implementations of repositories.
package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"libledger/internal/library/ports/repositories"
)

// PgxPoolInterface описывает используемую часть pgxpool.Pool,
// чтобы в тестах пул можно было заменить на pgxmock.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

// RepositoryFactory создает репозитории для работы с базой данных.
type RepositoryFactory struct {
	pool PgxPoolInterface
}

// NewRepositoryFactory создает новую фабрику репозиториев.
func NewRepositoryFactory(pool PgxPoolInterface) *RepositoryFactory {
	return &RepositoryFactory{pool: pool}
}

// BookRepository возвращает репозиторий каталога книг.
func (f *RepositoryFactory) BookRepository() repositories.BookRepository {
	return NewBookRepository(f.pool)
}

// MemberRepository возвращает репозиторий читателей.
func (f *RepositoryFactory) MemberRepository() repositories.MemberRepository {
	return NewMemberRepository(f.pool)
}

// LendingRepository возвращает репозиторий выдач.
func (f *RepositoryFactory) LendingRepository() repositories.LendingRepository {
	return NewLendingRepository(f.pool)
}
