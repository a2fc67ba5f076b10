package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/bookhive/bookhive-api/internal/models"
)

// BorrowRepository provides database access for the borrow request and
// borrow record lifecycle.
type BorrowRepository struct {
	db *sqlx.DB
}

// NewBorrowRepository creates a new instance of BorrowRepository.
func NewBorrowRepository(db *sqlx.DB) *BorrowRepository {
	return &BorrowRepository{db: db}
}

// PendingRequestExists reports whether the user already has a Pending request
// for the book.
func (r *BorrowRepository) PendingRequestExists(ctx context.Context, userID, bookID int64) (bool, error) {
	const query = `SELECT COUNT(*) FROM borrow_requests WHERE user_id = ? AND book_id = ? AND status = 'Pending'`
	var count int
	if err := r.db.GetContext(ctx, &count, query, userID, bookID); err != nil {
		return false, fmt.Errorf("check pending request: %w", err)
	}
	return count > 0, nil
}

// ActiveBorrowExists reports whether the user currently holds the book.
func (r *BorrowRepository) ActiveBorrowExists(ctx context.Context, userID, bookID int64) (bool, error) {
	const query = `SELECT COUNT(*) FROM borrowed_books WHERE user_id = ? AND book_id = ? AND status = 'Borrowed'`
	var count int
	if err := r.db.GetContext(ctx, &count, query, userID, bookID); err != nil {
		return false, fmt.Errorf("check active borrow: %w", err)
	}
	return count > 0, nil
}

// CreateRequest inserts a new borrow request and fills in the assigned id.
func (r *BorrowRepository) CreateRequest(ctx context.Context, req *models.BorrowRequest) error {
	const query = `INSERT INTO borrow_requests (user_id, book_id, request_date, status) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, req.UserID, req.BookID, req.RequestDate, req.Status)
	if err != nil {
		return fmt.Errorf("create borrow request: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create borrow request id: %w", err)
	}
	req.ID = id
	return nil
}

// FindPendingRequest returns a borrow request by id when it is still Pending.
func (r *BorrowRepository) FindPendingRequest(ctx context.Context, id int64) (*models.BorrowRequest, error) {
	const query = `SELECT id, user_id, book_id, request_date, status FROM borrow_requests WHERE id = ? AND status = 'Pending' LIMIT 1`
	var req models.BorrowRequest
	if err := r.db.GetContext(ctx, &req, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find pending request: %w", err)
	}
	return &req, nil
}

// UpdateRequestStatus transitions a request to the given status.
func (r *BorrowRepository) UpdateRequestStatus(ctx context.Context, id int64, status models.RequestStatus) error {
	const query = `UPDATE borrow_requests SET status = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update request status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update request rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Approve executes the approval transition in one transaction. The book's
// status is re-read inside the transaction; when it has left the acquirable
// states since the request was submitted, the request is marked Rejected and
// ErrBookUnavailable is returned with that rejection committed.
func (r *BorrowRepository) Approve(ctx context.Context, requestID, userID, bookID int64, borrowDate time.Time) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin approve: %w", err)
	}
	defer func() {
		if err != nil && err != ErrBookUnavailable {
			_ = tx.Rollback()
		}
	}()

	var status models.BookStatus
	if err = tx.GetContext(ctx, &status, `SELECT book_status FROM books WHERE id = ?`, bookID); err != nil {
		if err != sql.ErrNoRows {
			return fmt.Errorf("read book status: %w", err)
		}
		status = ""
	}

	if !status.Acquirable() {
		if _, execErr := tx.ExecContext(ctx, `UPDATE borrow_requests SET status = 'Rejected' WHERE id = ?`, requestID); execErr != nil {
			err = fmt.Errorf("reject stale request: %w", execErr)
			_ = tx.Rollback()
			return err
		}
		if commitErr := tx.Commit(); commitErr != nil {
			err = fmt.Errorf("commit stale rejection: %w", commitErr)
			return err
		}
		err = ErrBookUnavailable
		return err
	}

	if _, err = tx.ExecContext(ctx, `UPDATE books SET book_status = 'Borrowed', is_available = 0 WHERE id = ?`, bookID); err != nil {
		return fmt.Errorf("mark book borrowed: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `INSERT INTO borrowed_books (user_id, book_id, borrow_date, status) VALUES (?, ?, ?, 'Borrowed')`, userID, bookID, borrowDate); err != nil {
		return fmt.Errorf("insert borrow record: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `UPDATE borrow_requests SET status = 'Approved' WHERE id = ?`, requestID); err != nil {
		return fmt.Errorf("approve request: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit approve: %w", err)
	}
	return nil
}

// FindActiveBorrow returns the user's own active borrow record by id.
func (r *BorrowRepository) FindActiveBorrow(ctx context.Context, borrowID, userID int64) (*models.BorrowedBook, error) {
	const query = `SELECT id, user_id, book_id, borrow_date, return_date, status FROM borrowed_books WHERE id = ? AND user_id = ? AND status = 'Borrowed' LIMIT 1`
	var record models.BorrowedBook
	if err := r.db.GetContext(ctx, &record, query, borrowID, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find active borrow: %w", err)
	}
	return &record, nil
}

// Return executes the return transition in one transaction: the borrow record
// is closed and the book goes back on the shelves.
func (r *BorrowRepository) Return(ctx context.Context, borrowID, bookID int64, returnDate time.Time) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin return: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `UPDATE borrowed_books SET status = 'Returned', return_date = ? WHERE id = ?`, returnDate, borrowID); err != nil {
		return fmt.Errorf("close borrow record: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `UPDATE books SET book_status = 'On Shelves', is_available = 1 WHERE id = ?`, bookID); err != nil {
		return fmt.Errorf("reshelve book: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit return: %w", err)
	}
	return nil
}

// ListPendingDetails returns the librarian queue of pending requests joined
// with requester and book, oldest first.
func (r *BorrowRepository) ListPendingDetails(ctx context.Context) ([]models.PendingRequestDetail, error) {
	const query = `SELECT br.id AS request_id, br.request_date, u.username, u.email, b.title AS book_title, b.author
FROM borrow_requests br
JOIN users u ON br.user_id = u.id
JOIN books b ON br.book_id = b.id
WHERE br.status = 'Pending'
ORDER BY br.request_date ASC`
	var details []models.PendingRequestDetail
	if err := r.db.SelectContext(ctx, &details, query); err != nil {
		return nil, fmt.Errorf("list pending requests: %w", err)
	}
	return details, nil
}

// ListUserBorrowed returns the user's borrow history, newest first.
func (r *BorrowRepository) ListUserBorrowed(ctx context.Context, userID int64) ([]models.BorrowedBookDetail, error) {
	const query = `SELECT bb.id AS borrow_id, bb.borrow_date, bb.return_date, bb.status AS borrow_status, b.title AS book_title, b.author, b.book_condition
FROM borrowed_books bb
JOIN books b ON bb.book_id = b.id
WHERE bb.user_id = ?
ORDER BY bb.borrow_date DESC`
	var details []models.BorrowedBookDetail
	if err := r.db.SelectContext(ctx, &details, query, userID); err != nil {
		return nil, fmt.Errorf("list user borrows: %w", err)
	}
	return details, nil
}

// ListUserPending returns the user's pending requests, newest first.
func (r *BorrowRepository) ListUserPending(ctx context.Context, userID int64) ([]models.BorrowRequestDetail, error) {
	const query = `SELECT br.id AS request_id, br.request_date, br.status AS request_status, b.title AS book_title, b.author
FROM borrow_requests br
JOIN books b ON br.book_id = b.id
WHERE br.user_id = ? AND br.status = 'Pending'
ORDER BY br.request_date DESC`
	var details []models.BorrowRequestDetail
	if err := r.db.SelectContext(ctx, &details, query, userID); err != nil {
		return nil, fmt.Errorf("list user pending requests: %w", err)
	}
	return details, nil
}
