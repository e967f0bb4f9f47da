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

// MemberRepository реализует интерфейс repositories.MemberRepository для работы с Postgres.
type MemberRepository struct {
	pool PgxPoolInterface
}

// NewMemberRepository создает новый репозиторий читателей.
func NewMemberRepository(pool PgxPoolInterface) repositories.MemberRepository {
	return &MemberRepository{pool: pool}
}

// Create сохраняет нового читателя.
func (r *MemberRepository) Create(ctx context.Context, member *entities.Member) (*entities.Member, error) {
	log := logger.Log(ctx).With(zap.String("repository", "member"), zap.String("method", "Create"))

	err := r.pool.QueryRow(ctx,
		`INSERT INTO members (member_name, membership_date) VALUES ($1, $2) RETURNING id`,
		member.MemberName, member.MembershipDate,
	).Scan(&member.ID)

	if err != nil {
		log.Error(ctx, "failed to create member", zap.Error(err))
		return nil, fmt.Errorf("failed to create member: %w", err)
	}

	log.Debug(ctx, "member created", zap.Int64("memberID", member.ID))
	return member, nil
}

// GetByID находит читателя по ID.
func (r *MemberRepository) GetByID(ctx context.Context, id int64) (*entities.Member, error) {
	log := logger.Log(ctx).With(zap.String("repository", "member"), zap.String("method", "GetByID"))

	var member entities.Member
	err := r.pool.QueryRow(ctx,
		`SELECT id, member_name, membership_date FROM members WHERE id = $1`,
		id,
	).Scan(&member.ID, &member.MemberName, &member.MembershipDate)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "member not found", zap.Int64("memberID", id))
			return nil, entities.ErrMemberNotFound
		}
		log.Error(ctx, "failed to get member", zap.Error(err))
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	return &member, nil
}

// Update перезаписывает изменяемые поля читателя.
func (r *MemberRepository) Update(ctx context.Context, member *entities.Member) (*entities.Member, error) {
	log := logger.Log(ctx).With(zap.String("repository", "member"), zap.String("method", "Update"))

	result, err := r.pool.Exec(ctx,
		`UPDATE members SET member_name = $1, membership_date = $2 WHERE id = $3`,
		member.MemberName, member.MembershipDate, member.ID,
	)
	if err != nil {
		log.Error(ctx, "failed to update member", zap.Error(err))
		return nil, fmt.Errorf("failed to update member: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "member not found", zap.Int64("memberID", member.ID))
		return nil, entities.ErrMemberNotFound
	}

	return member, nil
}

// Delete удаляет читателя, если у него нет книг на руках. Строка читателя
// блокируется FOR UPDATE; гонку с конкурентной выдачей закрывает внешний
// ключ borrowed_books.member_id (ON DELETE RESTRICT).
func (r *MemberRepository) Delete(ctx context.Context, id int64) error {
	log := logger.Log(ctx).With(zap.String("repository", "member"), zap.String("method", "Delete"))

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		log.Error(ctx, "failed to begin transaction", zap.Error(err))
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var lockedID int64
	err = tx.QueryRow(ctx, `SELECT id FROM members WHERE id = $1 FOR UPDATE`, id).Scan(&lockedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "member not found", zap.Int64("memberID", id))
			return entities.ErrMemberNotFound
		}
		log.Error(ctx, "failed to lock member", zap.Error(err))
		return fmt.Errorf("failed to lock member: %w", err)
	}

	var activeLoans int64
	err = tx.QueryRow(ctx, `SELECT COUNT(*) FROM borrowed_books WHERE member_id = $1`, id).Scan(&activeLoans)
	if err != nil {
		log.Error(ctx, "failed to count active loans", zap.Error(err))
		return fmt.Errorf("failed to count active loans: %w", err)
	}
	if activeLoans > 0 {
		log.Debug(ctx, "member has active loans", zap.Int64("memberID", id), zap.Int64("loans", activeLoans))
		return entities.ErrMemberHasActiveLoans
	}

	if _, err := tx.Exec(ctx, `DELETE FROM members WHERE id = $1`, id); err != nil {
		log.Error(ctx, "failed to delete member", zap.Error(err))
		return fmt.Errorf("failed to delete member: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		log.Error(ctx, "failed to commit transaction", zap.Error(err))
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Debug(ctx, "member deleted", zap.Int64("memberID", id))
	return nil
}
