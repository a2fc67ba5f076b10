package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookhive/bookhive-api/internal/models"
	appErrors "github.com/bookhive/bookhive-api/pkg/errors"
)

type mockBookRepo struct {
	books  map[int64]*models.Book
	nextID int64
}

func (m *mockBookRepo) FindByID(ctx context.Context, id int64) (*models.Book, error) {
	if book, ok := m.books[id]; ok {
		copy := *book
		return &copy, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockBookRepo) List(ctx context.Context, filter models.CatalogFilter) ([]models.Book, error) {
	var books []models.Book
	for id := int64(1); id <= m.nextID; id++ {
		book, ok := m.books[id]
		if !ok {
			continue
		}
		switch filter {
		case models.CatalogBorrow:
			if book.Price != 0 || !book.Status.Acquirable() {
				continue
			}
		case models.CatalogSale:
			if book.Price == 0 || !book.Status.Acquirable() {
				continue
			}
		}
		books = append(books, *book)
	}
	return books, nil
}

func (m *mockBookRepo) Create(ctx context.Context, book *models.Book) error {
	if m.books == nil {
		m.books = make(map[int64]*models.Book)
	}
	m.nextID++
	book.ID = m.nextID
	copy := *book
	m.books[book.ID] = &copy
	return nil
}

func (m *mockBookRepo) Update(ctx context.Context, book *models.Book) error {
	if _, ok := m.books[book.ID]; !ok {
		return sql.ErrNoRows
	}
	copy := *book
	m.books[book.ID] = &copy
	return nil
}

func (m *mockBookRepo) DeleteCascade(ctx context.Context, id int64) error {
	if _, ok := m.books[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.books, id)
	return nil
}

// memCacheRepo is an in-memory stand-in for the Redis-backed cache.
type memCacheRepo struct {
	entries map[string][]byte
	hits    int
	misses  int
}

func newMemCacheRepo() *memCacheRepo {
	return &memCacheRepo{entries: make(map[string][]byte)}
}

func (m *memCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := m.entries[key]
	if !ok {
		m.misses++
		return appErrors.ErrCacheMiss
	}
	m.hits++
	return json.Unmarshal(raw, dest)
}

func (m *memCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[key] = raw
	return nil
}

func (m *memCacheRepo) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.entries, key)
	}
	return nil
}

func saleBookRequest() models.BookUpsertRequest {
	return models.BookUpsertRequest{
		Title:     "Dune",
		Author:    "Frank Herbert",
		Category:  "Sci-Fi",
		Publisher: "Ace",
		Price:     12.5,
		Condition: models.ConditionNew,
		Status:    models.StatusAvailable,
	}
}

func TestCatalogServiceAddDerivesAvailability(t *testing.T) {
	repo := &mockBookRepo{}
	svc := NewCatalogService(repo, nil, nil, nil)

	book, err := svc.Add(context.Background(), saleBookRequest())
	require.NoError(t, err)
	assert.True(t, book.IsAvailable)

	req := saleBookRequest()
	req.Status = models.StatusSold
	sold, err := svc.Add(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, sold.IsAvailable)
}

func TestCatalogServiceAddRejectsInvalidPayload(t *testing.T) {
	svc := NewCatalogService(&mockBookRepo{}, nil, nil, nil)

	req := saleBookRequest()
	req.Title = ""
	_, err := svc.Add(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	req = saleBookRequest()
	req.Condition = "Pristine"
	_, err = svc.Add(context.Background(), req)
	require.Error(t, err)
}

func TestCatalogServiceRequiresCategoryAndPublisher(t *testing.T) {
	svc := NewCatalogService(&mockBookRepo{}, nil, nil, nil)

	req := saleBookRequest()
	req.Category = ""
	_, err := svc.Add(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	req = saleBookRequest()
	req.Publisher = ""
	_, err = svc.Update(context.Background(), 1, req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestCatalogServiceUpdateMissing(t *testing.T) {
	svc := NewCatalogService(&mockBookRepo{}, nil, nil, nil)

	_, err := svc.Update(context.Background(), 99, saleBookRequest())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestCatalogServiceDonateForcesBorrowCatalogEntry(t *testing.T) {
	repo := &mockBookRepo{}
	svc := NewCatalogService(repo, nil, nil, nil)

	book, err := svc.Donate(context.Background(), models.DonateBookRequest{
		Title:     "Old Atlas",
		Author:    "Various",
		Category:  "Reference",
		Publisher: "Unknown",
	})
	require.NoError(t, err)
	assert.Zero(t, book.Price)
	assert.Equal(t, models.ConditionSecondHand, book.Condition)
	assert.Equal(t, models.StatusOnShelves, book.Status)
	assert.True(t, book.IsAvailable)
	assert.True(t, book.BorrowOnly())
}

func TestCatalogServiceListFilters(t *testing.T) {
	repo := &mockBookRepo{}
	svc := NewCatalogService(repo, nil, nil, nil)

	_, err := svc.Add(context.Background(), saleBookRequest())
	require.NoError(t, err)
	_, err = svc.Donate(context.Background(), models.DonateBookRequest{
		Title: "Old Atlas", Author: "Various", Category: "Reference", Publisher: "Unknown",
	})
	require.NoError(t, err)

	all, err := svc.List(context.Background(), models.CatalogAll)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	borrow, err := svc.List(context.Background(), models.CatalogBorrow)
	require.NoError(t, err)
	require.Len(t, borrow, 1)
	assert.Equal(t, "Old Atlas", borrow[0].Title)

	sale, err := svc.List(context.Background(), models.CatalogSale)
	require.NoError(t, err)
	require.Len(t, sale, 1)
	assert.Equal(t, "Dune", sale[0].Title)
}

func TestCatalogServiceListServesFromCacheUntilInvalidated(t *testing.T) {
	repo := &mockBookRepo{}
	cacheRepo := newMemCacheRepo()
	cache := NewCacheService(cacheRepo, nil, time.Minute, nil, true)
	svc := NewCatalogService(repo, cache, nil, nil)

	_, err := svc.Add(context.Background(), saleBookRequest())
	require.NoError(t, err)

	first, err := svc.List(context.Background(), models.CatalogSale)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 0, cacheRepo.hits)

	second, err := svc.List(context.Background(), models.CatalogSale)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, cacheRepo.hits)

	// Any inventory mutation invalidates all catalog views.
	_, err = svc.Add(context.Background(), saleBookRequest())
	require.NoError(t, err)

	third, err := svc.List(context.Background(), models.CatalogSale)
	require.NoError(t, err)
	assert.Len(t, third, 2)
}

func TestCatalogServiceInventoryDataset(t *testing.T) {
	repo := &mockBookRepo{}
	svc := NewCatalogService(repo, nil, nil, nil)

	_, err := svc.Add(context.Background(), saleBookRequest())
	require.NoError(t, err)

	ds, err := svc.InventoryDataset(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"ID", "Title", "Author", "Category", "Publisher", "Price", "Condition", "Status"}, ds.Headers)
	require.Len(t, ds.Rows, 1)
	assert.Equal(t, "Dune", ds.Rows[0]["Title"])
	assert.Equal(t, "12.50", ds.Rows[0]["Price"])
}

func TestCatalogServiceGetMissing(t *testing.T) {
	svc := NewCatalogService(&mockBookRepo{}, nil, nil, nil)

	_, err := svc.Get(context.Background(), 42)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
