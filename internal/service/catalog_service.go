package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/bookhive/bookhive-api/internal/models"
	appErrors "github.com/bookhive/bookhive-api/pkg/errors"
	"github.com/bookhive/bookhive-api/pkg/export"
)

type bookRepository interface {
	FindByID(ctx context.Context, id int64) (*models.Book, error)
	List(ctx context.Context, filter models.CatalogFilter) ([]models.Book, error)
	Create(ctx context.Context, book *models.Book) error
	Update(ctx context.Context, book *models.Book) error
	DeleteCascade(ctx context.Context, id int64) error
}

// Catalog cache keys, one per catalog view. All three are invalidated on any
// inventory mutation.
const (
	cacheKeyCatalogAll    = "catalog:all"
	cacheKeyCatalogBorrow = "catalog:borrow"
	cacheKeyCatalogSale   = "catalog:sale"
)

// CatalogService provides the inventory management and browsing use cases.
type CatalogService struct {
	repo      bookRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCatalogService constructs a CatalogService instance.
func NewCatalogService(repo bookRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &CatalogService{repo: repo, cache: cache, validator: validate, logger: logger}
}

func catalogCacheKey(filter models.CatalogFilter) string {
	switch filter {
	case models.CatalogBorrow:
		return cacheKeyCatalogBorrow
	case models.CatalogSale:
		return cacheKeyCatalogSale
	default:
		return cacheKeyCatalogAll
	}
}

// List returns books for the requested catalog view, serving from cache when
// a fresh entry exists.
func (s *CatalogService) List(ctx context.Context, filter models.CatalogFilter) ([]models.Book, error) {
	key := catalogCacheKey(filter)

	var cached []models.Book
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	books, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to list books")
	}

	if err := s.cache.Set(ctx, key, books, 0); err != nil {
		s.logger.Warn("catalog cache write failed", zap.Error(err))
	}

	return books, nil
}

// Get returns a single book by id.
func (s *CatalogService) Get(ctx context.Context, id int64) (*models.Book, error) {
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "book not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to fetch book")
	}
	return book, nil
}

// Add creates a new book. The availability flag is derived from the status,
// never taken from the request.
func (s *CatalogService) Add(ctx context.Context, req models.BookUpsertRequest) (*models.Book, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid book payload")
	}

	book := &models.Book{
		Title:       req.Title,
		Author:      req.Author,
		Category:    req.Category,
		Publisher:   req.Publisher,
		Price:       req.Price,
		Condition:   req.Condition,
		Status:      req.Status,
		IsAvailable: req.Status.Acquirable(),
	}

	if err := s.repo.Create(ctx, book); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to create book")
	}

	s.invalidateCatalog(ctx)
	s.logger.Info("book added", zap.Int64("book_id", book.ID), zap.String("title", book.Title))
	return book, nil
}

// Update overwrites a book's fields, re-deriving the availability flag.
func (s *CatalogService) Update(ctx context.Context, id int64, req models.BookUpsertRequest) (*models.Book, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid book payload")
	}

	book := &models.Book{
		ID:          id,
		Title:       req.Title,
		Author:      req.Author,
		Category:    req.Category,
		Publisher:   req.Publisher,
		Price:       req.Price,
		Condition:   req.Condition,
		Status:      req.Status,
		IsAvailable: req.Status.Acquirable(),
	}

	if err := s.repo.Update(ctx, book); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "book not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to update book")
	}

	s.invalidateCatalog(ctx)
	s.logger.Info("book updated", zap.Int64("book_id", id))
	return book, nil
}

// Delete removes a book together with its borrow records, requests, and
// order lines.
func (s *CatalogService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteCascade(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "book not found")
		}
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to delete book")
	}

	s.invalidateCatalog(ctx)
	s.logger.Info("book deleted", zap.Int64("book_id", id))
	return nil
}

// Donate accepts a donated copy into the borrow catalog. Donations always
// enter at price 0 with status On Shelves.
func (s *CatalogService) Donate(ctx context.Context, req models.DonateBookRequest) (*models.Book, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid donation payload")
	}

	book := &models.Book{
		Title:       req.Title,
		Author:      req.Author,
		Category:    req.Category,
		Publisher:   req.Publisher,
		Price:       0,
		Condition:   models.ConditionSecondHand,
		Status:      models.StatusOnShelves,
		IsAvailable: true,
	}

	if err := s.repo.Create(ctx, book); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to record donation")
	}

	s.invalidateCatalog(ctx)
	s.logger.Info("book donated", zap.Int64("book_id", book.ID), zap.String("title", book.Title))
	return book, nil
}

// InventoryDataset flattens the full inventory into a tabular dataset for
// CSV and PDF export.
func (s *CatalogService) InventoryDataset(ctx context.Context) (export.Dataset, error) {
	books, err := s.repo.List(ctx, models.CatalogAll)
	if err != nil {
		return export.Dataset{}, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to list books")
	}

	ds := export.Dataset{
		Headers: []string{"ID", "Title", "Author", "Category", "Publisher", "Price", "Condition", "Status"},
	}
	for _, b := range books {
		ds.Rows = append(ds.Rows, map[string]string{
			"ID":        strconv.FormatInt(b.ID, 10),
			"Title":     b.Title,
			"Author":    b.Author,
			"Category":  b.Category,
			"Publisher": b.Publisher,
			"Price":     fmt.Sprintf("%.2f", b.Price),
			"Condition": string(b.Condition),
			"Status":    string(b.Status),
		})
	}
	return ds, nil
}

func (s *CatalogService) invalidateCatalog(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, cacheKeyCatalogAll, cacheKeyCatalogBorrow, cacheKeyCatalogSale); err != nil {
		s.logger.Warn("catalog cache invalidation failed", zap.Error(err))
	}
}
