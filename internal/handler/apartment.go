package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dkovacev/apartment-manager/internal/model"
	"github.com/dkovacev/apartment-manager/internal/repository"
)

type apartmentReq struct {
	Name     string  `json:"name"`
	Location *string `json:"location"`
}

// CreateApartment handles POST /v1/apartments.  The apartment is owned by
// the authenticated user; name is the only required field.
func (h *PropertyHandler) CreateApartment(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req apartmentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	apt := &model.Apartment{UserID: userID, Name: name, Location: req.Location}
	if err := h.Apartments.Create(c.Request().Context(), apt); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create apartment"})
	}
	return c.JSON(http.StatusCreated, apt)
}

// ListApartments handles GET /v1/apartments and returns the caller's own
// apartments only.
func (h *PropertyHandler) ListApartments(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.Apartments.ListByOwner(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if items == nil {
		items = []*model.Apartment{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetApartment handles GET /v1/apartments/:id.  A foreign apartment is
// indistinguishable from a missing one: both are 404.
func (h *PropertyHandler) GetApartment(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	apt, err := h.Apartments.GetByIDAndOwner(c.Request().Context(), id, userID)
	if err != nil {
		if err == repository.ErrApartmentNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "apartment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, apt)
}

// UpdateApartment handles PUT /v1/apartments/:id as a full-field replace.
func (h *PropertyHandler) UpdateApartment(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req apartmentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	if err := h.Apartments.Update(c.Request().Context(), id, userID, name, req.Location); err != nil {
		if err == repository.ErrApartmentNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "apartment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	apt, err := h.Apartments.GetByIDAndOwner(c.Request().Context(), id, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, apt)
}

// DeleteApartment handles DELETE /v1/apartments/:id.  Dependent income and
// expense rows are removed in the same transaction.
func (h *PropertyHandler) DeleteApartment(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Apartments.DeleteByIDAndOwner(c.Request().Context(), id, userID); err != nil {
		if err == repository.ErrApartmentNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "apartment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
