package app_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"libledger/internal/library/domain/entities"
)

type mockBookRepository struct {
	mock.Mock
}

func (m *mockBookRepository) Save(ctx context.Context, book *entities.Book) (*entities.Book, error) {
	args := m.Called(ctx, book)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Book), args.Error(1)
}

func (m *mockBookRepository) GetByID(ctx context.Context, id int64) (*entities.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Book), args.Error(1)
}

func (m *mockBookRepository) Update(ctx context.Context, book *entities.Book) (*entities.Book, error) {
	args := m.Called(ctx, book)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Book), args.Error(1)
}

func (m *mockBookRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockMemberRepository struct {
	mock.Mock
}

func (m *mockMemberRepository) Create(ctx context.Context, member *entities.Member) (*entities.Member, error) {
	args := m.Called(ctx, member)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Member), args.Error(1)
}

func (m *mockMemberRepository) GetByID(ctx context.Context, id int64) (*entities.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Member), args.Error(1)
}

func (m *mockMemberRepository) Update(ctx context.Context, member *entities.Member) (*entities.Member, error) {
	args := m.Called(ctx, member)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Member), args.Error(1)
}

func (m *mockMemberRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockLendingRepository struct {
	mock.Mock
}

func (m *mockLendingRepository) Borrow(ctx context.Context, memberID, bookID int64, borrowLimit int64) (*entities.BorrowedBook, error) {
	args := m.Called(ctx, memberID, bookID, borrowLimit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.BorrowedBook), args.Error(1)
}

func (m *mockLendingRepository) Return(ctx context.Context, memberID, bookID int64) error {
	args := m.Called(ctx, memberID, bookID)
	return args.Error(0)
}

func (m *mockLendingRepository) ListActiveLoanTitles(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockLendingRepository) ListBooksByMemberName(ctx context.Context, memberName string) ([]*entities.Book, error) {
	args := m.Called(ctx, memberName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Book), args.Error(1)
}
