package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agendavista/task-api/internal/core/ports"
)

type UserHandler struct {
	users ports.UserRepository
}

func NewUserHandler(users ports.UserRepository) *UserHandler {
	return &UserHandler{users: users}
}

// Profile returns the authenticated user's account.
//
// @Summary      Get the current user's profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  verifyResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.users.FindByID(c.Request().Context(), ident.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, verifyResponse{User: toUserResponse(user)})
}
