package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"libledger/internal/library/app"
	"libledger/internal/library/domain/entities"
)

func TestCreateMember(t *testing.T) {
	ctx := context.Background()

	t.Run("explicit membership date is kept", func(t *testing.T) {
		memberRepo := new(mockMemberRepository)
		joined := time.Date(2020, time.January, 2, 0, 0, 0, 0, time.UTC)
		created := &entities.Member{ID: 1, MemberName: "John", MembershipDate: joined}
		memberRepo.On("Create", ctx, entities.NewMember("John", joined)).Return(created, nil)

		uc := app.NewMemberUseCase(memberRepo)
		member, err := uc.CreateMember(ctx, "John", joined)

		require.NoError(t, err)
		assert.Equal(t, created, member)
		memberRepo.AssertExpectations(t)
	})

	t.Run("zero membership date defaults to today", func(t *testing.T) {
		memberRepo := new(mockMemberRepository)
		memberRepo.On("Create", ctx, mock.MatchedBy(func(member *entities.Member) bool {
			return member.MemberName == "John" && !member.MembershipDate.IsZero()
		})).Return(&entities.Member{ID: 1, MemberName: "John"}, nil)

		uc := app.NewMemberUseCase(memberRepo)
		_, err := uc.CreateMember(ctx, "John", time.Time{})

		require.NoError(t, err)
		memberRepo.AssertExpectations(t)
	})
}

func TestGetMember(t *testing.T) {
	ctx := context.Background()

	t.Run("missing member", func(t *testing.T) {
		memberRepo := new(mockMemberRepository)
		memberRepo.On("GetByID", ctx, int64(9)).Return(nil, entities.ErrMemberNotFound)

		uc := app.NewMemberUseCase(memberRepo)
		member, err := uc.GetMember(ctx, 9)

		require.Error(t, err)
		assert.Nil(t, member)
		assert.ErrorIs(t, err, entities.ErrMemberNotFound)
	})
}

func TestUpdateMember(t *testing.T) {
	ctx := context.Background()
	joined := time.Date(2020, time.January, 2, 0, 0, 0, 0, time.UTC)

	t.Run("only provided fields are applied", func(t *testing.T) {
		memberRepo := new(mockMemberRepository)
		existing := &entities.Member{ID: 3, MemberName: "John", MembershipDate: joined}
		memberRepo.On("GetByID", ctx, int64(3)).Return(existing, nil)

		renamed := &entities.Member{ID: 3, MemberName: "Jane", MembershipDate: joined}
		memberRepo.On("Update", ctx, renamed).Return(renamed, nil)

		uc := app.NewMemberUseCase(memberRepo)
		newName := "Jane"
		member, err := uc.UpdateMember(ctx, 3, &newName, nil)

		require.NoError(t, err)
		assert.Equal(t, "Jane", member.MemberName)
		assert.Equal(t, joined, member.MembershipDate)
		memberRepo.AssertExpectations(t)
	})

	t.Run("missing member", func(t *testing.T) {
		memberRepo := new(mockMemberRepository)
		memberRepo.On("GetByID", ctx, int64(3)).Return(nil, entities.ErrMemberNotFound)

		uc := app.NewMemberUseCase(memberRepo)
		newName := "Jane"
		member, err := uc.UpdateMember(ctx, 3, &newName, nil)

		require.Error(t, err)
		assert.Nil(t, member)
		assert.ErrorIs(t, err, entities.ErrMemberNotFound)
	})
}

func TestDeleteMember(t *testing.T) {
	ctx := context.Background()

	t.Run("member without loans is deleted", func(t *testing.T) {
		memberRepo := new(mockMemberRepository)
		memberRepo.On("Delete", ctx, int64(3)).Return(nil)

		uc := app.NewMemberUseCase(memberRepo)
		require.NoError(t, uc.DeleteMember(ctx, 3))
	})

	t.Run("member with active loans is refused", func(t *testing.T) {
		memberRepo := new(mockMemberRepository)
		memberRepo.On("Delete", ctx, int64(3)).Return(entities.ErrMemberHasActiveLoans)

		uc := app.NewMemberUseCase(memberRepo)
		err := uc.DeleteMember(ctx, 3)

		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrMemberHasActiveLoans)
	})
}
