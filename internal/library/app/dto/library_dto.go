// Package dto содержит структуры запросов и ответов HTTP-слоя.
package dto

import (
	"time"

	"libledger/internal/library/domain/entities"
)

// DateFormat - формат календарных дат в API.
const DateFormat = "2006-01-02"

// CreateBookRequest содержит данные для добавления книги в каталог.
type CreateBookRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Amount int64  `json:"amount"`
}

// UpdateBookRequest содержит данные для полной перезаписи книги.
type UpdateBookRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Amount int64  `json:"amount"`
}

// CreateMemberRequest содержит данные для регистрации читателя.
// Пустая дата вступления заменяется текущей датой.
type CreateMemberRequest struct {
	MemberName     string `json:"member_name"`
	MembershipDate string `json:"membership_date"`
}

// UpdateMemberRequest содержит данные для частичного обновления читателя.
// Nil-поля не изменяются.
type UpdateMemberRequest struct {
	MemberName     *string `json:"member_name"`
	MembershipDate *string `json:"membership_date"`
}

// Member представляет читателя в ответе API, с датой вступления
// в календарном формате.
type Member struct {
	ID             int64  `json:"id"`
	MemberName     string `json:"member_name"`
	MembershipDate string `json:"membership_date"`
}

// MemberFromEntity преобразует доменного читателя в ответ API.
func MemberFromEntity(member *entities.Member) *Member {
	return &Member{
		ID:             member.ID,
		MemberName:     member.MemberName,
		MembershipDate: member.MembershipDate.Format(DateFormat),
	}
}

// BorrowedBook представляет активную выдачу в ответе API.
type BorrowedBook struct {
	ID           int64  `json:"id"`
	BookID       int64  `json:"book_id"`
	MemberID     int64  `json:"member_id"`
	BorrowedDate string `json:"borrowed_date"`
}

// BorrowedBookFromEntity преобразует доменную выдачу в ответ API.
func BorrowedBookFromEntity(loan *entities.BorrowedBook) *BorrowedBook {
	return &BorrowedBook{
		ID:           loan.ID,
		BookID:       loan.BookID,
		MemberID:     loan.MemberID,
		BorrowedDate: loan.BorrowedDate.Format(DateFormat),
	}
}

// ParseDate разбирает календарную дату из строки запроса.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateFormat, value)
}
