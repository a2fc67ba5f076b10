package models

// Dashboard aggregates a member's borrow history, open requests, and orders
// for the account overview.
type Dashboard struct {
	BorrowedBooks   []BorrowedBookDetail  `json:"borrowed_books"`
	PendingRequests []BorrowRequestDetail `json:"pending_requests"`
	Orders          []OrderSummary        `json:"orders"`
}
