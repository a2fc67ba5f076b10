package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/bookhive/bookhive-api/internal/models"
)

// OrderRepository provides database access for the purchase lifecycle.
type OrderRepository struct {
	db *sqlx.DB
}

// NewOrderRepository creates a new instance of OrderRepository.
func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// CreatePurchase executes the purchase transition in one transaction: a
// Completed order, an order item snapshotting the price at purchase time, and
// the book marked Sold. Sold is terminal.
func (r *OrderRepository) CreatePurchase(ctx context.Context, userID int64, book *models.Book, orderDate time.Time) (order *models.Order, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin purchase: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `INSERT INTO orders (user_id, order_date, total_amount, status) VALUES (?, ?, ?, ?)`,
		userID, orderDate, book.Price, models.OrderCompleted)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}
	orderID, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert order id: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `INSERT INTO order_items (order_id, book_id, quantity, price_at_purchase) VALUES (?, ?, 1, ?)`,
		orderID, book.ID, book.Price); err != nil {
		return nil, fmt.Errorf("insert order item: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `UPDATE books SET book_status = 'Sold', is_available = 0 WHERE id = ?`, book.ID); err != nil {
		return nil, fmt.Errorf("mark book sold: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit purchase: %w", err)
	}

	return &models.Order{
		ID:          orderID,
		UserID:      userID,
		OrderDate:   orderDate,
		TotalAmount: book.Price,
		Status:      models.OrderCompleted,
	}, nil
}

type orderRow struct {
	OrderID         int64     `db:"order_id"`
	OrderDate       time.Time `db:"order_date"`
	TotalAmount     float64   `db:"total_amount"`
	Status          string    `db:"status"`
	BookTitle       string    `db:"book_title"`
	Author          string    `db:"author"`
	Quantity        int       `db:"quantity"`
	PriceAtPurchase float64   `db:"price_at_purchase"`
}

// ListUserOrders returns the user's orders with their purchased lines,
// newest first.
func (r *OrderRepository) ListUserOrders(ctx context.Context, userID int64) ([]models.OrderSummary, error) {
	const query = `SELECT o.id AS order_id, o.order_date, o.total_amount, o.status,
b.title AS book_title, b.author, oi.quantity, oi.price_at_purchase
FROM orders o
JOIN order_items oi ON o.id = oi.order_id
JOIN books b ON oi.book_id = b.id
WHERE o.user_id = ?
ORDER BY o.order_date DESC`

	var rows []orderRow
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("list user orders: %w", err)
	}

	var summaries []models.OrderSummary
	index := make(map[int64]int)
	for _, row := range rows {
		pos, seen := index[row.OrderID]
		if !seen {
			summaries = append(summaries, models.OrderSummary{
				OrderID:     row.OrderID,
				OrderDate:   row.OrderDate,
				TotalAmount: row.TotalAmount,
				Status:      row.Status,
			})
			pos = len(summaries) - 1
			index[row.OrderID] = pos
		}
		summaries[pos].Items = append(summaries[pos].Items, models.OrderItemDetail{
			BookTitle:       row.BookTitle,
			Author:          row.Author,
			Quantity:        row.Quantity,
			PriceAtPurchase: row.PriceAtPurchase,
		})
	}
	return summaries, nil
}
