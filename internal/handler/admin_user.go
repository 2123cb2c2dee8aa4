package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dkovacev/apartment-manager/internal/model"
	"github.com/dkovacev/apartment-manager/internal/repository"
)

// AdminHandler exposes the user management endpoints.  All routes that
// reach it sit behind RequireRole("Admin").
type AdminHandler struct {
	Users *repository.UserRepo
}

func NewAdminHandler(users *repository.UserRepo) *AdminHandler {
	if users == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{Users: users}
}

// ListUsers handles GET /v1/users.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	items, err := h.Users.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if items == nil {
		items = []model.User{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetUser handles GET /v1/users/:id.
func (h *AdminHandler) GetUser(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	u, err := h.Users.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrUserNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, u)
}

// DeleteUser handles DELETE /v1/users/:id.  The repository removes the
// user's apartments, their income/expense rows and refresh tokens in one
// transaction.
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Users.DeleteByID(c.Request().Context(), id); err != nil {
		if err == repository.ErrUserNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
