package entities

import "time"

// Member представляет читателя библиотеки.
type Member struct {
	ID             int64     `json:"id"`
	MemberName     string    `json:"member_name"`
	MembershipDate time.Time `json:"membership_date"`
}

// NewMember создает нового читателя. Если дата вступления не указана,
// используется текущая дата.
func NewMember(memberName string, membershipDate time.Time) *Member {
	if membershipDate.IsZero() {
		membershipDate = time.Now()
	}
	return &Member{
		MemberName:     memberName,
		MembershipDate: membershipDate,
	}
}
