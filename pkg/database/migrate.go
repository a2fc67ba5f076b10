package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Table layout is a compatibility contract with the existing book_hive.db
// deployments: column names, nullability and defaults must not change.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT UNIQUE NOT NULL,
		email TEXT UNIQUE NOT NULL,
		password TEXT NOT NULL,
		first_name TEXT,
		last_name TEXT,
		is_admin BOOLEAN DEFAULT 0,
		is_librarian BOOLEAN DEFAULT 0,
		is_approved BOOLEAN DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS books (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		author TEXT,
		category TEXT,
		publisher TEXT,
		price REAL NOT NULL,
		book_condition TEXT NOT NULL DEFAULT 'New',
		book_status TEXT NOT NULL DEFAULT 'Available',
		is_available BOOLEAN DEFAULT 1
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		order_date TEXT NOT NULL,
		total_amount REAL NOT NULL,
		status TEXT NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id)
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		order_id INTEGER NOT NULL,
		book_id INTEGER NOT NULL,
		quantity INTEGER NOT NULL,
		price_at_purchase REAL NOT NULL,
		FOREIGN KEY (order_id) REFERENCES orders(id),
		FOREIGN KEY (book_id) REFERENCES books(id)
	)`,
	`CREATE TABLE IF NOT EXISTS payments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		order_id INTEGER NOT NULL,
		user_id INTEGER NOT NULL,
		payment_date TEXT NOT NULL,
		amount REAL NOT NULL,
		payment_type TEXT,
		status TEXT,
		FOREIGN KEY (order_id) REFERENCES orders(id),
		FOREIGN KEY (user_id) REFERENCES users(id)
	)`,
	`CREATE TABLE IF NOT EXISTS borrowed_books (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		book_id INTEGER NOT NULL,
		borrow_date TEXT NOT NULL,
		return_date TEXT,
		status TEXT NOT NULL DEFAULT 'Borrowed',
		FOREIGN KEY (user_id) REFERENCES users(id),
		FOREIGN KEY (book_id) REFERENCES books(id)
	)`,
	`CREATE TABLE IF NOT EXISTS borrow_requests (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		book_id INTEGER NOT NULL,
		request_date TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'Pending',
		FOREIGN KEY (user_id) REFERENCES users(id),
		FOREIGN KEY (book_id) REFERENCES books(id)
	)`,
}

// Migrate creates the schema when absent.
func Migrate(db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
