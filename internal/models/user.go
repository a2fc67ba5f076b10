package models

// UserRole is the effective role derived from the account's role flags.
type UserRole string

const (
	RoleAdmin     UserRole = "ADMIN"
	RoleLibrarian UserRole = "LIBRARIAN"
	RoleMember    UserRole = "MEMBER"
)

// User represents an account stored in the users table.
type User struct {
	ID           int64   `db:"id" json:"id"`
	Username     string  `db:"username" json:"username"`
	Email        string  `db:"email" json:"email"`
	PasswordHash string  `db:"password" json:"-"`
	FirstName    *string `db:"first_name" json:"first_name,omitempty"`
	LastName     *string `db:"last_name" json:"last_name,omitempty"`
	IsAdmin      bool    `db:"is_admin" json:"is_admin"`
	IsLibrarian  bool    `db:"is_librarian" json:"is_librarian"`
	IsApproved   bool    `db:"is_approved" json:"is_approved"`
}

// Role maps the account's flags to its effective role. Admin wins when both
// flags are set.
func (u *User) Role() UserRole {
	switch {
	case u.IsAdmin:
		return RoleAdmin
	case u.IsLibrarian:
		return RoleLibrarian
	default:
		return RoleMember
	}
}

// Protected reports whether the account may not be deleted.
func (u *User) Protected() bool {
	return u.IsAdmin || u.IsLibrarian
}
