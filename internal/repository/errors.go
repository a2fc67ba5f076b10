package repository

import (
	"errors"

	sqlite3 "github.com/mattn/go-sqlite3"
)

// Sentinel errors surfaced to the service layer, which maps them onto typed
// API errors.
var (
	// ErrDuplicate reports a unique constraint violation (username/email).
	ErrDuplicate = errors.New("unique constraint violated")

	// ErrBookUnavailable reports that a book left the acquirable states
	// between request submission and approval.
	ErrBookUnavailable = errors.New("book no longer available")
)

func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.ExtendedCode == sqlite3.ErrConstraintUnique || se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
