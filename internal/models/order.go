package models

import "time"

// OrderCompleted is the only order status this system writes; the column
// exists for future payment flows.
const OrderCompleted = "Completed"

// Order represents a row in the orders table.
type Order struct {
	ID          int64     `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"user_id"`
	OrderDate   time.Time `db:"order_date" json:"order_date"`
	TotalAmount float64   `db:"total_amount" json:"total_amount"`
	Status      string    `db:"status" json:"status"`
}

// OrderItem represents a row in the order_items table. PriceAtPurchase is a
// snapshot taken at purchase time and never updated afterwards.
type OrderItem struct {
	ID              int64   `db:"id" json:"id"`
	OrderID         int64   `db:"order_id" json:"order_id"`
	BookID          int64   `db:"book_id" json:"book_id"`
	Quantity        int     `db:"quantity" json:"quantity"`
	PriceAtPurchase float64 `db:"price_at_purchase" json:"price_at_purchase"`
}

// OrderItemDetail is the dashboard view of a purchased line.
type OrderItemDetail struct {
	BookTitle       string  `db:"book_title" json:"book_title"`
	Author          string  `db:"author" json:"author"`
	Quantity        int     `db:"quantity" json:"quantity"`
	PriceAtPurchase float64 `db:"price_at_purchase" json:"price_at_purchase"`
}

// OrderSummary groups an order with its purchased lines for display.
type OrderSummary struct {
	OrderID     int64             `json:"order_id"`
	OrderDate   time.Time         `json:"order_date"`
	TotalAmount float64           `json:"total_amount"`
	Status      string            `json:"status"`
	Items       []OrderItemDetail `json:"items"`
}
