package entities

import "errors"

// Ошибки доменного уровня. Отказы бизнес-правил возвращаются как значения,
// вызывающая сторона различает их через errors.Is.
var (
	ErrBookNotFound   = errors.New("book not found")
	ErrMemberNotFound = errors.New("member not found")
	ErrLoanNotFound   = errors.New("active loan not found")

	ErrBorrowLimitExceeded  = errors.New("borrow limit exceeded")
	ErrNoCopiesAvailable    = errors.New("no copies available")
	ErrBookAlreadyBorrowed  = errors.New("book already borrowed by member")
	ErrBookHasActiveLoans   = errors.New("book has active loans")
	ErrMemberHasActiveLoans = errors.New("member has active loans")
)
