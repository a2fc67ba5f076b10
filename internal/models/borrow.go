package models

import "time"

// RequestStatus is the lifecycle state of a borrow request.
type RequestStatus string

const (
	RequestPending  RequestStatus = "Pending"
	RequestApproved RequestStatus = "Approved"
	RequestRejected RequestStatus = "Rejected"
)

// BorrowStatus is the lifecycle state of a borrow record.
type BorrowStatus string

const (
	BorrowActive   BorrowStatus = "Borrowed"
	BorrowReturned BorrowStatus = "Returned"
)

// BorrowRequest represents a row in the borrow_requests table.
type BorrowRequest struct {
	ID          int64         `db:"id" json:"id"`
	UserID      int64         `db:"user_id" json:"user_id"`
	BookID      int64         `db:"book_id" json:"book_id"`
	RequestDate time.Time     `db:"request_date" json:"request_date"`
	Status      RequestStatus `db:"status" json:"status"`
}

// BorrowedBook represents a row in the borrowed_books table.
type BorrowedBook struct {
	ID         int64        `db:"id" json:"id"`
	UserID     int64        `db:"user_id" json:"user_id"`
	BookID     int64        `db:"book_id" json:"book_id"`
	BorrowDate time.Time    `db:"borrow_date" json:"borrow_date"`
	ReturnDate *time.Time   `db:"return_date" json:"return_date,omitempty"`
	Status     BorrowStatus `db:"status" json:"status"`
}

// PendingRequestDetail is the librarian queue view, joined with requester and
// book.
type PendingRequestDetail struct {
	RequestID   int64     `db:"request_id" json:"request_id"`
	RequestDate time.Time `db:"request_date" json:"request_date"`
	Username    string    `db:"username" json:"username"`
	Email       string    `db:"email" json:"email"`
	BookTitle   string    `db:"book_title" json:"book_title"`
	Author      string    `db:"author" json:"author"`
}

// BorrowedBookDetail is the dashboard view of a borrow record.
type BorrowedBookDetail struct {
	BorrowID   int64         `db:"borrow_id" json:"borrow_id"`
	BorrowDate time.Time     `db:"borrow_date" json:"borrow_date"`
	ReturnDate *time.Time    `db:"return_date" json:"return_date,omitempty"`
	Status     BorrowStatus  `db:"borrow_status" json:"status"`
	BookTitle  string        `db:"book_title" json:"book_title"`
	Author     string        `db:"author" json:"author"`
	Condition  BookCondition `db:"book_condition" json:"book_condition"`
}

// BorrowRequestDetail is the dashboard view of a pending request.
type BorrowRequestDetail struct {
	RequestID   int64         `db:"request_id" json:"request_id"`
	RequestDate time.Time     `db:"request_date" json:"request_date"`
	Status      RequestStatus `db:"request_status" json:"status"`
	BookTitle   string        `db:"book_title" json:"book_title"`
	Author      string        `db:"author" json:"author"`
}
