package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/bookhive/bookhive-api/internal/models"
	"github.com/bookhive/bookhive-api/internal/repository"
	appErrors "github.com/bookhive/bookhive-api/pkg/errors"
)

type borrowRepository interface {
	PendingRequestExists(ctx context.Context, userID, bookID int64) (bool, error)
	ActiveBorrowExists(ctx context.Context, userID, bookID int64) (bool, error)
	CreateRequest(ctx context.Context, req *models.BorrowRequest) error
	FindPendingRequest(ctx context.Context, id int64) (*models.BorrowRequest, error)
	UpdateRequestStatus(ctx context.Context, id int64, status models.RequestStatus) error
	Approve(ctx context.Context, requestID, userID, bookID int64, borrowDate time.Time) error
	FindActiveBorrow(ctx context.Context, borrowID, userID int64) (*models.BorrowedBook, error)
	Return(ctx context.Context, borrowID, bookID int64, returnDate time.Time) error
	ListPendingDetails(ctx context.Context) ([]models.PendingRequestDetail, error)
	ListUserBorrowed(ctx context.Context, userID int64) ([]models.BorrowedBookDetail, error)
	ListUserPending(ctx context.Context, userID int64) ([]models.BorrowRequestDetail, error)
}

type orderRepository interface {
	CreatePurchase(ctx context.Context, userID int64, book *models.Book, orderDate time.Time) (*models.Order, error)
	ListUserOrders(ctx context.Context, userID int64) ([]models.OrderSummary, error)
}

// AcquisitionService drives the borrow/purchase/return state machine.
type AcquisitionService struct {
	books   bookRepository
	borrows borrowRepository
	orders  orderRepository
	cache   *CacheService
	logger  *zap.Logger
}

// NewAcquisitionService constructs an AcquisitionService instance.
func NewAcquisitionService(books bookRepository, borrows borrowRepository, orders orderRepository, cache *CacheService, logger *zap.Logger) *AcquisitionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AcquisitionService{books: books, borrows: borrows, orders: orders, cache: cache, logger: logger}
}

// SubmitBorrowRequest places a Pending request for a borrow-catalog book. The
// book itself is not touched; its state is re-checked at approval time.
func (s *AcquisitionService) SubmitBorrowRequest(ctx context.Context, userID, bookID int64) (*models.BorrowRequest, error) {
	book, err := s.findBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	if !book.BorrowOnly() || !book.Status.Acquirable() {
		return nil, appErrors.Clone(appErrors.ErrBookUnavailable, "book is not available for borrowing")
	}

	pending, err := s.borrows.PendingRequestExists(ctx, userID, bookID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to check pending requests")
	}
	if pending {
		return nil, appErrors.ErrDuplicateRequest
	}

	borrowed, err := s.borrows.ActiveBorrowExists(ctx, userID, bookID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to check active borrows")
	}
	if borrowed {
		return nil, appErrors.ErrAlreadyBorrowed
	}

	req := &models.BorrowRequest{
		UserID:      userID,
		BookID:      bookID,
		RequestDate: time.Now().UTC(),
		Status:      models.RequestPending,
	}
	if err := s.borrows.CreateRequest(ctx, req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to create borrow request")
	}

	s.logger.Info("borrow request submitted",
		zap.Int64("request_id", req.ID),
		zap.Int64("user_id", userID),
		zap.Int64("book_id", bookID))
	return req, nil
}

// ApproveRequest approves a Pending request. When the book left the
// acquirable states since submission, the request is rejected instead and
// BookUnavailable is reported to the librarian.
func (s *AcquisitionService) ApproveRequest(ctx context.Context, requestID int64) error {
	req, err := s.borrows.FindPendingRequest(ctx, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "pending request not found")
		}
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to fetch request")
	}

	if err := s.borrows.Approve(ctx, req.ID, req.UserID, req.BookID, time.Now().UTC()); err != nil {
		if errors.Is(err, repository.ErrBookUnavailable) {
			s.logger.Warn("stale borrow request rejected",
				zap.Int64("request_id", req.ID),
				zap.Int64("book_id", req.BookID))
			return appErrors.Clone(appErrors.ErrBookUnavailable, "book is no longer available; request rejected")
		}
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to approve request")
	}

	s.invalidateCatalog(ctx)
	s.logger.Info("borrow request approved",
		zap.Int64("request_id", req.ID),
		zap.Int64("user_id", req.UserID),
		zap.Int64("book_id", req.BookID))
	return nil
}

// RejectRequest rejects a Pending request. The book is untouched.
func (s *AcquisitionService) RejectRequest(ctx context.Context, requestID int64) error {
	req, err := s.borrows.FindPendingRequest(ctx, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "pending request not found")
		}
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to fetch request")
	}

	if err := s.borrows.UpdateRequestStatus(ctx, req.ID, models.RequestRejected); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to reject request")
	}

	s.logger.Info("borrow request rejected", zap.Int64("request_id", req.ID))
	return nil
}

// Return closes the user's own active borrow record and puts the book back
// on the shelves.
func (s *AcquisitionService) Return(ctx context.Context, userID, borrowID int64) error {
	record, err := s.borrows.FindActiveBorrow(ctx, borrowID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "borrow record not found")
		}
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to fetch borrow record")
	}

	if err := s.borrows.Return(ctx, record.ID, record.BookID, time.Now().UTC()); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to return book")
	}

	s.invalidateCatalog(ctx)
	s.logger.Info("book returned",
		zap.Int64("borrow_id", record.ID),
		zap.Int64("user_id", userID),
		zap.Int64("book_id", record.BookID))
	return nil
}

// Purchase buys a sale-catalog book outright. Sold is terminal.
func (s *AcquisitionService) Purchase(ctx context.Context, userID, bookID int64) (*models.Order, error) {
	book, err := s.findBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	if book.BorrowOnly() || !book.Status.Acquirable() {
		return nil, appErrors.Clone(appErrors.ErrBookUnavailable, "book is not available for purchase")
	}

	order, err := s.orders.CreatePurchase(ctx, userID, book, time.Now().UTC())
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to complete purchase")
	}

	s.invalidateCatalog(ctx)
	s.logger.Info("book purchased",
		zap.Int64("order_id", order.ID),
		zap.Int64("user_id", userID),
		zap.Int64("book_id", bookID),
		zap.Float64("amount", order.TotalAmount))
	return order, nil
}

// ListPendingRequests returns the librarian queue, oldest first.
func (s *AcquisitionService) ListPendingRequests(ctx context.Context) ([]models.PendingRequestDetail, error) {
	details, err := s.borrows.ListPendingDetails(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to list pending requests")
	}
	return details, nil
}

// Dashboard aggregates the user's borrow history, open requests, and orders.
func (s *AcquisitionService) Dashboard(ctx context.Context, userID int64) (*models.Dashboard, error) {
	borrowed, err := s.borrows.ListUserBorrowed(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to list borrowed books")
	}
	pending, err := s.borrows.ListUserPending(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to list pending requests")
	}
	orders, err := s.orders.ListUserOrders(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to list orders")
	}

	return &models.Dashboard{
		BorrowedBooks:   borrowed,
		PendingRequests: pending,
		Orders:          orders,
	}, nil
}

func (s *AcquisitionService) findBook(ctx context.Context, bookID int64) (*models.Book, error) {
	book, err := s.books.FindByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "book not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to fetch book")
	}
	return book, nil
}

func (s *AcquisitionService) invalidateCatalog(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, cacheKeyCatalogAll, cacheKeyCatalogBorrow, cacheKeyCatalogSale); err != nil {
		s.logger.Warn("catalog cache invalidation failed", zap.Error(err))
	}
}
