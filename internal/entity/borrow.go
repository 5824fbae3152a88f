package entity

import "time"

// BorrowRecord is one loan of a book to a member. A record with a nil
// ReturnDate is open: the book it references is out on loan.
type BorrowRecord struct {
	ID         string     `json:"id"`
	BookID     string     `json:"book"`
	MemberID   string     `json:"member"`
	BorrowDate time.Time  `json:"borrow_date"`
	ReturnDate *time.Time `json:"return_date"`
}

func (r BorrowRecord) Open() bool {
	return r.ReturnDate == nil
}
