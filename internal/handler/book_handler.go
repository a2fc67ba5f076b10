package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bookhive/bookhive-api/internal/models"
	"github.com/bookhive/bookhive-api/internal/service"
	appErrors "github.com/bookhive/bookhive-api/pkg/errors"
	"github.com/bookhive/bookhive-api/pkg/response"
)

// BookHandler wires HTTP endpoints to the catalog service.
type BookHandler struct {
	catalog *service.CatalogService
}

// NewBookHandler creates a new handler.
func NewBookHandler(catalog *service.CatalogService) *BookHandler {
	return &BookHandler{catalog: catalog}
}

// ListBorrowCatalog godoc
// @Summary List the borrow catalog
// @Description Free books currently available to borrow
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /books [get]
func (h *BookHandler) ListBorrowCatalog(c *gin.Context) {
	books, err := h.catalog.List(c.Request.Context(), models.CatalogBorrow)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, books)
}

// ListSaleCatalog godoc
// @Summary List the sale catalog
// @Description Priced books currently available to purchase
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /books/for-sale [get]
func (h *BookHandler) ListSaleCatalog(c *gin.Context) {
	books, err := h.catalog.List(c.Request.Context(), models.CatalogSale)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, books)
}

// ListInventory godoc
// @Summary List the full inventory
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/books [get]
func (h *BookHandler) ListInventory(c *gin.Context) {
	books, err := h.catalog.List(c.Request.Context(), models.CatalogAll)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, books)
}

// Get godoc
// @Summary Fetch a single book
// @Tags Catalog
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /books/{id} [get]
func (h *BookHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid book id"))
		return
	}

	book, err := h.catalog.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, book)
}

// Create godoc
// @Summary Add a book to the inventory
// @Tags Catalog
// @Accept json
// @Produce json
// @Param payload body models.BookUpsertRequest true "Book payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/books [post]
func (h *BookHandler) Create(c *gin.Context) {
	var req models.BookUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid book payload"))
		return
	}

	book, err := h.catalog.Add(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, book, "book added")
}

// Update godoc
// @Summary Update a book
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path int true "Book ID"
// @Param payload body models.BookUpsertRequest true "Book payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/books/{id} [put]
func (h *BookHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid book id"))
		return
	}

	var req models.BookUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid book payload"))
		return
	}

	book, err := h.catalog.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, book, "book updated")
}

// Delete godoc
// @Summary Remove a book and its history
// @Tags Catalog
// @Produce json
// @Param id path int true "Book ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /admin/books/{id} [delete]
func (h *BookHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid book id"))
		return
	}

	if err := h.catalog.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Donate godoc
// @Summary Donate a book to the library
// @Description Donated copies join the borrow catalog at price 0
// @Tags Catalog
// @Accept json
// @Produce json
// @Param payload body models.DonateBookRequest true "Donation payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /books/donate [post]
func (h *BookHandler) Donate(c *gin.Context) {
	var req models.DonateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid donation payload"))
		return
	}

	book, err := h.catalog.Donate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, book, "thank you for your donation")
}
