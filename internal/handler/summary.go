package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dkovacev/apartment-manager/internal/repository"
	"github.com/dkovacev/apartment-manager/internal/service"
)

// MonthlySummary handles GET /v1/summary/monthly?apartment_id&year&month.
// Ownership is enforced inside the service: a foreign apartment is 404.
func (h *PropertyHandler) MonthlySummary(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	apartmentID, err := strconv.ParseUint(c.QueryParam("apartment_id"), 10, 64)
	if err != nil || apartmentID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "apartment_id is required"})
	}
	year, err := strconv.Atoi(c.QueryParam("year"))
	if err != nil || year <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "year is required"})
	}
	month, err := strconv.Atoi(c.QueryParam("month"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "month is required"})
	}

	sum, err := h.Summaries.Monthly(c.Request().Context(), apartmentID, year, month, userID)
	if err != nil {
		switch err {
		case service.ErrInvalidMonth:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "month must be between 1 and 12"})
		case repository.ErrApartmentNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "apartment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "summary failed"})
	}
	return c.JSON(http.StatusOK, sum)
}

// YearlySummary handles GET /v1/summary/yearly?year and returns one entry
// per owned apartment per month with activity, sorted by month then name.
func (h *PropertyHandler) YearlySummary(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	year, err := strconv.Atoi(c.QueryParam("year"))
	if err != nil || year <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "year is required"})
	}

	items, err := h.Summaries.Yearly(c.Request().Context(), year, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "summary failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
