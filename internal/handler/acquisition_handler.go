package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bookhive/bookhive-api/internal/service"
	appErrors "github.com/bookhive/bookhive-api/pkg/errors"
	"github.com/bookhive/bookhive-api/pkg/response"
)

// AcquisitionHandler wires HTTP endpoints to the acquisition state machine.
type AcquisitionHandler struct {
	acquisition *service.AcquisitionService
}

// NewAcquisitionHandler creates a new handler.
func NewAcquisitionHandler(acquisition *service.AcquisitionService) *AcquisitionHandler {
	return &AcquisitionHandler{acquisition: acquisition}
}

// Borrow godoc
// @Summary Submit a borrow request
// @Tags Acquisition
// @Produce json
// @Param id path int true "Book ID"
// @Success 201 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /books/{id}/borrow [post]
func (h *AcquisitionHandler) Borrow(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	bookID, ok := idParam(c, "id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid book id"))
		return
	}

	req, err := h.acquisition.SubmitBorrowRequest(c.Request.Context(), claims.UserID, bookID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, req, "borrow request submitted; awaiting librarian approval")
}

// Purchase godoc
// @Summary Purchase a book
// @Tags Acquisition
// @Produce json
// @Param id path int true "Book ID"
// @Success 201 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /books/{id}/purchase [post]
func (h *AcquisitionHandler) Purchase(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	bookID, ok := idParam(c, "id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid book id"))
		return
	}

	order, err := h.acquisition.Purchase(c.Request.Context(), claims.UserID, bookID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, order, "purchase completed")
}

// Return godoc
// @Summary Return a borrowed book
// @Tags Acquisition
// @Produce json
// @Param id path int true "Borrow record ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /borrowed/{id}/return [post]
func (h *AcquisitionHandler) Return(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	borrowID, ok := idParam(c, "id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid borrow record id"))
		return
	}

	if err := h.acquisition.Return(c.Request.Context(), claims.UserID, borrowID); err != nil {
		response.Error(c, err)
		return
	}
	response.Notice(c, http.StatusOK, appErrors.CategorySuccess, "book returned")
}

// ListPendingRequests godoc
// @Summary List pending borrow requests
// @Tags Acquisition
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/borrow-requests [get]
func (h *AcquisitionHandler) ListPendingRequests(c *gin.Context) {
	queue, err := h.acquisition.ListPendingRequests(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, queue)
}

// Approve godoc
// @Summary Approve a pending borrow request
// @Tags Acquisition
// @Produce json
// @Param id path int true "Request ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/borrow-requests/{id}/approve [post]
func (h *AcquisitionHandler) Approve(c *gin.Context) {
	requestID, ok := idParam(c, "id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request id"))
		return
	}

	if err := h.acquisition.ApproveRequest(c.Request.Context(), requestID); err != nil {
		response.Error(c, err)
		return
	}
	response.Notice(c, http.StatusOK, appErrors.CategorySuccess, "borrow request approved")
}

// Reject godoc
// @Summary Reject a pending borrow request
// @Tags Acquisition
// @Produce json
// @Param id path int true "Request ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/borrow-requests/{id}/reject [post]
func (h *AcquisitionHandler) Reject(c *gin.Context) {
	requestID, ok := idParam(c, "id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request id"))
		return
	}

	if err := h.acquisition.RejectRequest(c.Request.Context(), requestID); err != nil {
		response.Error(c, err)
		return
	}
	response.Notice(c, http.StatusOK, appErrors.CategorySuccess, "borrow request rejected")
}

// Dashboard godoc
// @Summary Account dashboard
// @Description Borrow history, open requests, and orders for the current user
// @Tags Acquisition
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /dashboard [get]
func (h *AcquisitionHandler) Dashboard(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	dash, err := h.acquisition.Dashboard(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dash)
}
