package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bookhive/bookhive-api/internal/service"
	appErrors "github.com/bookhive/bookhive-api/pkg/errors"
	"github.com/bookhive/bookhive-api/pkg/response"
)

// UserHandler wires HTTP endpoints to the account management service.
type UserHandler struct {
	users *service.UserService
}

// NewUserHandler creates a new handler.
func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// List godoc
// @Summary List accounts
// @Description All accounts, unapproved ones first
// @Tags Accounts
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/users [get]
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, users)
}

// Approve godoc
// @Summary Approve an account
// @Tags Accounts
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/users/{id}/approve [post]
func (h *UserHandler) Approve(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid user id"))
		return
	}

	if err := h.users.Approve(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Notice(c, http.StatusOK, appErrors.CategorySuccess, "account approved")
}

// Delete godoc
// @Summary Delete an account and its history
// @Tags Accounts
// @Produce json
// @Param id path int true "User ID"
// @Success 204
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid user id"))
		return
	}

	if err := h.users.Delete(c.Request.Context(), claimsFromContext(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
