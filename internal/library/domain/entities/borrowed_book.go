package entities

import "time"

// BorrowedBook представляет активную выдачу: одна строка на пару
// (читатель, книга), удаляется при возврате.
type BorrowedBook struct {
	ID           int64     `json:"id"`
	BookID       int64     `json:"book_id"`
	MemberID     int64     `json:"member_id"`
	BorrowedDate time.Time `json:"borrowed_date"`
}
