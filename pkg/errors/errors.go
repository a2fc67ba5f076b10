package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Message categories for user-facing display.
const (
	CategoryError   = "error"
	CategoryWarning = "warning"
	CategoryInfo    = "info"
	CategorySuccess = "success"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Status   int    `json:"status"`
	Category string `json:"category"`
	Err      error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance with the default error category.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Category: CategoryError}
}

// NewWithCategory creates a new Error carrying an explicit display category.
func NewWithCategory(code string, status int, category, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Category: category}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Category: CategoryError, Err: err}
}

// Predefined errors for the account, catalog and acquisition flows.
var (
	ErrValidation         = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrNotFound           = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrDuplicate          = New("DUPLICATE", http.StatusConflict, "username or email already exists")
	ErrDuplicateRequest   = NewWithCategory("DUPLICATE_REQUEST", http.StatusConflict, CategoryInfo, "a pending borrow request already exists for this book")
	ErrAlreadyBorrowed    = NewWithCategory("ALREADY_BORROWED", http.StatusConflict, CategoryInfo, "this book is already borrowed and not yet returned")
	ErrBookUnavailable    = New("BOOK_UNAVAILABLE", http.StatusConflict, "book is not available")
	ErrSelfDelete         = New("SELF_DELETE", http.StatusForbidden, "cannot delete your own account")
	ErrProtectedAccount   = New("PROTECTED_ACCOUNT", http.StatusForbidden, "cannot delete an administrator or librarian account")
	ErrNotApproved        = NewWithCategory("NOT_APPROVED", http.StatusForbidden, CategoryWarning, "account is awaiting administrator approval")
	ErrInvalidCredentials = New("INVALID_CREDENTIALS", http.StatusUnauthorized, "invalid username/email or password")
	ErrUnauthorized       = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrForbidden          = New("FORBIDDEN", http.StatusForbidden, "forbidden")
	ErrStorage            = New("STORAGE_ERROR", http.StatusInternalServerError, "storage failure")

	// ErrCacheMiss is an internal sentinel, never surfaced to callers.
	ErrCacheMiss = New("CACHE_MISS", http.StatusNotFound, "cache miss")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrStorage.Code, ErrStorage.Status, ErrStorage.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
