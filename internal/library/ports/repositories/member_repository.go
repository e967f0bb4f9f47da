package repositories

import (
	"context"

	"libledger/internal/library/domain/entities"
)

// MemberRepository определяет интерфейс для работы с читателями.
type MemberRepository interface {
	Create(ctx context.Context, member *entities.Member) (*entities.Member, error)
	GetByID(ctx context.Context, id int64) (*entities.Member, error)
	Update(ctx context.Context, member *entities.Member) (*entities.Member, error)
	// Delete удаляет читателя; возвращает entities.ErrMemberHasActiveLoans,
	// если у читателя есть активные выдачи.
	Delete(ctx context.Context, id int64) error
}
