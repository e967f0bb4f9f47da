package app

import (
	"context"
	"fmt"
	"time"

	"libledger/internal/library/domain/entities"
	"libledger/internal/library/ports/repositories"
)

// MemberUseCase представляет собой бизнес-логику реестра читателей.
type MemberUseCase struct {
	memberRepo repositories.MemberRepository
}

// NewMemberUseCase создает новый экземпляр MemberUseCase.
func NewMemberUseCase(memberRepo repositories.MemberRepository) *MemberUseCase {
	return &MemberUseCase{memberRepo: memberRepo}
}

// CreateMember регистрирует нового читателя. Нулевая дата вступления
// заменяется текущей датой.
func (uc *MemberUseCase) CreateMember(ctx context.Context, memberName string, membershipDate time.Time) (*entities.Member, error) {
	member, err := uc.memberRepo.Create(ctx, entities.NewMember(memberName, membershipDate))
	if err != nil {
		return nil, fmt.Errorf("failed to create member: %w", err)
	}
	return member, nil
}

// GetMember возвращает читателя по ID.
func (uc *MemberUseCase) GetMember(ctx context.Context, id int64) (*entities.Member, error) {
	member, err := uc.memberRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return member, nil
}

// UpdateMember обновляет только переданные поля читателя: текущая запись
// читается, изменения накладываются поверх и сохраняются целиком.
func (uc *MemberUseCase) UpdateMember(ctx context.Context, id int64, memberName *string, membershipDate *time.Time) (*entities.Member, error) {
	member, err := uc.memberRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	if memberName != nil {
		member.MemberName = *memberName
	}
	if membershipDate != nil {
		member.MembershipDate = *membershipDate
	}

	updated, err := uc.memberRepo.Update(ctx, member)
	if err != nil {
		return nil, fmt.Errorf("failed to update member: %w", err)
	}
	return updated, nil
}

// DeleteMember удаляет читателя. Читатель с книгами на руках
// не может быть удален.
func (uc *MemberUseCase) DeleteMember(ctx context.Context, id int64) error {
	if err := uc.memberRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}
	return nil
}
