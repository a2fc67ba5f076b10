package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type seedAccount struct {
	username    string
	email       string
	password    string
	firstName   string
	lastName    string
	isAdmin     bool
	isLibrarian bool
}

var defaultAccounts = []seedAccount{
	{username: "admin", email: "admin@bookhive.com", password: "adminpass", firstName: "Admin", lastName: "User", isAdmin: true},
	{username: "librarian", email: "librarian@bookhive.com", password: "libpass", firstName: "Library", lastName: "Keeper", isLibrarian: true},
}

type seedBook struct {
	title     string
	author    string
	category  string
	publisher string
	price     float64
	condition string
}

var starterInventory = []seedBook{
	{"The Quantum Realm", "Dr. Alice Smith", "Science Fiction", "Future Press", 25.99, "New"},
	{"Culinary Delights", "Chef Antoine", "Cookbook", "Gourmet Prints", 32.50, "New"},
	{"Secrets of the Ancient City", "Prof. Indiana Jones", "History", "Discovery Books", 18.00, "Second Hand"},
	{"The Silent Witness", "Agatha Christie", "Mystery", "Classic Reads", 10.50, "Second Hand"},
	{"Quantum Computing Explained", "Dr. Qubit", "Technology", "Bitstream Press", 60.00, "New"},
	{"Introduction to Python", "Guido van Rossum", "Programming", "Open Source Pub", 0, "New"},
	{"Classic Fairy Tales", "Various Authors", "Children", "Storytime Press", 0, "Second Hand"},
	{"World Atlas 2024", "Cartography Dept.", "Reference", "Map Makers Inc.", 0, "New"},
	{"A Brief History of Time", "Stephen Hawking", "Science", "Cosmos Books", 0, "New"},
}

// Seed inserts the default admin and librarian accounts when missing, and a
// starter inventory when the books table is empty.
func Seed(db *sqlx.DB, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	for _, acct := range defaultAccounts {
		var count int
		if err := db.Get(&count, `SELECT COUNT(*) FROM users WHERE username = ?`, acct.username); err != nil {
			return fmt.Errorf("check seed account %s: %w", acct.username, err)
		}
		if count > 0 {
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(acct.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash seed password: %w", err)
		}

		const query = `INSERT INTO users (username, email, password, first_name, last_name, is_admin, is_librarian, is_approved)
VALUES (?, ?, ?, ?, ?, ?, ?, 1)`
		if _, err := db.Exec(query, acct.username, acct.email, string(hash), acct.firstName, acct.lastName, acct.isAdmin, acct.isLibrarian); err != nil {
			return fmt.Errorf("insert seed account %s: %w", acct.username, err)
		}
		logger.Info("seeded default account", zap.String("username", acct.username))
	}

	var bookCount int
	if err := db.Get(&bookCount, `SELECT COUNT(*) FROM books`); err != nil {
		return fmt.Errorf("count books: %w", err)
	}
	if bookCount > 0 {
		return nil
	}

	const insertBook = `INSERT INTO books (title, author, category, publisher, price, book_condition, book_status, is_available)
VALUES (?, ?, ?, ?, ?, ?, 'Available', 1)`
	for _, b := range starterInventory {
		if _, err := db.Exec(insertBook, b.title, b.author, b.category, b.publisher, b.price, b.condition); err != nil {
			return fmt.Errorf("insert starter book %q: %w", b.title, err)
		}
	}
	logger.Info("seeded starter inventory", zap.Int("books", len(starterInventory)))

	return nil
}
