package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/bookhive/bookhive-api/internal/models"
)

func TestOrderRepositoryCreatePurchase(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewOrderRepository(db)

	book := &models.Book{ID: 3, Title: "Dune", Price: 12.5, Status: models.StatusAvailable}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO orders (user_id, order_date, total_amount, status) VALUES (?, ?, ?, ?)")).
		WithArgs(int64(5), sqlmock.AnyArg(), 12.5, models.OrderCompleted).
		WillReturnResult(sqlmock.NewResult(31, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO order_items (order_id, book_id, quantity, price_at_purchase) VALUES (?, ?, 1, ?)")).
		WithArgs(int64(31), int64(3), 12.5).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE books SET book_status = 'Sold', is_available = 0 WHERE id = ?")).
		WithArgs(int64(3)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	order, err := repo.CreatePurchase(context.Background(), 5, book, time.Now())
	require.NoError(t, err)
	require.Equal(t, int64(31), order.ID)
	require.Equal(t, 12.5, order.TotalAmount)
	require.Equal(t, models.OrderCompleted, order.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepositoryCreatePurchaseRollsBackOnFailure(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewOrderRepository(db)

	book := &models.Book{ID: 3, Title: "Dune", Price: 12.5, Status: models.StatusAvailable}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO orders")).
		WithArgs(int64(5), sqlmock.AnyArg(), 12.5, models.OrderCompleted).
		WillReturnResult(sqlmock.NewResult(31, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO order_items")).
		WillReturnError(errors.New("database is locked"))
	mock.ExpectRollback()

	_, err := repo.CreatePurchase(context.Background(), 5, book, time.Now())
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepositoryListUserOrdersGroupsItems(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewOrderRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"order_id", "order_date", "total_amount", "status", "book_title", "author", "quantity", "price_at_purchase"}).
		AddRow(31, now, 12.5, "Completed", "Dune", "Frank Herbert", 1, 12.5).
		AddRow(30, now.Add(-24*time.Hour), 8.0, "Completed", "1984", "George Orwell", 1, 8.0)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE o.user_id = ?")).
		WithArgs(int64(5)).
		WillReturnRows(rows)

	orders, err := repo.ListUserOrders(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	require.Equal(t, int64(31), orders[0].OrderID)
	require.Len(t, orders[0].Items, 1)
	require.Equal(t, "Dune", orders[0].Items[0].BookTitle)
	require.NoError(t, mock.ExpectationsWereMet())
}
