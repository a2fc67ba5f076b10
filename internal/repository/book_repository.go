package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/bookhive/bookhive-api/internal/models"
)

// BookRepository provides database access for the inventory.
type BookRepository struct {
	db *sqlx.DB
}

// NewBookRepository creates a new instance of BookRepository.
func NewBookRepository(db *sqlx.DB) *BookRepository {
	return &BookRepository{db: db}
}

const bookColumns = `id, title, author, category, publisher, price, book_condition, book_status, is_available`

// FindByID returns a book by identifier.
func (r *BookRepository) FindByID(ctx context.Context, id int64) (*models.Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM books WHERE id = ? LIMIT 1`, bookColumns)
	var book models.Book
	if err := r.db.GetContext(ctx, &book, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find book by id: %w", err)
	}
	return &book, nil
}

// List returns books for the requested catalog view in insertion order.
func (r *BookRepository) List(ctx context.Context, filter models.CatalogFilter) ([]models.Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM books`, bookColumns)
	switch filter {
	case models.CatalogBorrow:
		query += ` WHERE price = 0 AND book_status IN ('Available', 'On Shelves')`
	case models.CatalogSale:
		query += ` WHERE price > 0 AND book_status IN ('Available', 'On Shelves')`
	}
	query += ` ORDER BY id ASC`

	var books []models.Book
	if err := r.db.SelectContext(ctx, &books, query); err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

// Create inserts a new book and fills in the assigned id.
func (r *BookRepository) Create(ctx context.Context, book *models.Book) error {
	const query = `INSERT INTO books (title, author, category, publisher, price, book_condition, book_status, is_available)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		book.Title, book.Author, book.Category, book.Publisher, book.Price,
		book.Condition, book.Status, book.IsAvailable)
	if err != nil {
		return fmt.Errorf("create book: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create book id: %w", err)
	}
	book.ID = id
	return nil
}

// Update overwrites all mutable fields of a book.
func (r *BookRepository) Update(ctx context.Context, book *models.Book) error {
	const query = `UPDATE books SET title = ?, author = ?, category = ?, publisher = ?, price = ?, book_condition = ?, book_status = ?, is_available = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		book.Title, book.Author, book.Category, book.Publisher, book.Price,
		book.Condition, book.Status, book.IsAvailable, book.ID)
	if err != nil {
		return fmt.Errorf("update book: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update book rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteCascade removes a book and every row referencing it in one
// transaction; a failure on any step leaves no partial cleanup behind.
func (r *BookRepository) DeleteCascade(ctx context.Context, id int64) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin book delete: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	steps := []string{
		`DELETE FROM borrowed_books WHERE book_id = ?`,
		`DELETE FROM borrow_requests WHERE book_id = ?`,
		`DELETE FROM order_items WHERE book_id = ?`,
	}
	for _, stmt := range steps {
		if _, err = tx.ExecContext(ctx, stmt, id); err != nil {
			return fmt.Errorf("cascade book delete: %w", err)
		}
	}

	var res sql.Result
	if res, err = tx.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	var affected int64
	if affected, err = res.RowsAffected(); err != nil {
		return fmt.Errorf("delete book rows: %w", err)
	}
	if affected == 0 {
		err = sql.ErrNoRows
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit book delete: %w", err)
	}
	return nil
}
