package models

import "time"

// Payment represents a row in the payments table. Nothing in the API writes
// payments yet; the table participates in user deletion cleanup only.
type Payment struct {
	ID          int64     `db:"id" json:"id"`
	OrderID     int64     `db:"order_id" json:"order_id"`
	UserID      int64     `db:"user_id" json:"user_id"`
	PaymentDate time.Time `db:"payment_date" json:"payment_date"`
	Amount      float64   `db:"amount" json:"amount"`
	PaymentType *string   `db:"payment_type" json:"payment_type,omitempty"`
	Status      *string   `db:"status" json:"status,omitempty"`
}
