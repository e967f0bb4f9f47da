package app

import (
	"context"
	"fmt"
	"sort"

	"libledger/internal/library/domain/entities"
	"libledger/internal/library/ports/repositories"
)

// ReportUseCase представляет собой read-only проекции над активными выдачами.
// Результаты пересчитываются при каждом вызове, без кэширования.
type ReportUseCase struct {
	lendingRepo repositories.LendingRepository
}

// NewReportUseCase создает новый экземпляр ReportUseCase.
func NewReportUseCase(lendingRepo repositories.LendingRepository) *ReportUseCase {
	return &ReportUseCase{lendingRepo: lendingRepo}
}

// BorrowedByMemberName возвращает книги на руках у читателей с указанным
// именем, в естественном порядке хранилища.
func (uc *ReportUseCase) BorrowedByMemberName(ctx context.Context, memberName string) ([]*entities.Book, error) {
	books, err := uc.lendingRepo.ListBooksByMemberName(ctx, memberName)
	if err != nil {
		return nil, fmt.Errorf("failed to list borrowed books: %w", err)
	}
	return books, nil
}

// DistinctBorrowedTitles возвращает уникальные названия книг по всем
// активным выдачам, отсортированные для детерминированного ответа.
func (uc *ReportUseCase) DistinctBorrowedTitles(ctx context.Context) ([]string, error) {
	titles, err := uc.lendingRepo.ListActiveLoanTitles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list loan titles: %w", err)
	}

	seen := make(map[string]struct{}, len(titles))
	distinct := make([]string, 0, len(titles))
	for _, title := range titles {
		if _, ok := seen[title]; ok {
			continue
		}
		seen[title] = struct{}{}
		distinct = append(distinct, title)
	}
	sort.Strings(distinct)

	return distinct, nil
}

// BorrowedTitleCounts возвращает число активных выдач по каждому названию.
func (uc *ReportUseCase) BorrowedTitleCounts(ctx context.Context) (map[string]int64, error) {
	titles, err := uc.lendingRepo.ListActiveLoanTitles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list loan titles: %w", err)
	}

	counts := make(map[string]int64, len(titles))
	for _, title := range titles {
		counts[title]++
	}

	return counts, nil
}
