package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dkovacev/apartment-manager/internal/model"
	"github.com/dkovacev/apartment-manager/internal/money"
	"github.com/dkovacev/apartment-manager/internal/repository"
)

type expenseCreateReq struct {
	ApartmentID uint64  `json:"apartment_id"`
	Amount      string  `json:"amount"` // decimal string, e.g. "80.00"
	Date        string  `json:"date"`   // YYYY-MM-DD
	Category    string  `json:"category"`
	Description *string `json:"description"`
}

type expenseUpdateReq struct {
	Amount      string  `json:"amount"`
	Date        string  `json:"date"`
	Category    string  `json:"category"`
	Description *string `json:"description"`
}

// CreateExpense handles POST /v1/expenses.  Same shape as income creation
// plus the required category label; a foreign apartment is Forbidden.
func (h *PropertyHandler) CreateExpense(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req expenseCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.ApartmentID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "apartment_id is required"})
	}
	category := strings.TrimSpace(req.Category)
	if category == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "category is required"})
	}
	cents, err := money.ParseCents(req.Amount)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "amount must be a positive decimal"})
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}

	owned, err := h.Apartments.OwnedByUser(c.Request().Context(), req.ApartmentID, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if !owned {
		return c.JSON(http.StatusForbidden, echo.Map{"error": repository.ErrForbidden.Error()})
	}

	e := &model.Expense{
		ApartmentID: req.ApartmentID,
		AmountCents: cents,
		Date:        date,
		Category:    category,
		Description: req.Description,
	}
	if err := h.Expenses.Create(c.Request().Context(), e); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create expense"})
	}

	h.publishEntryRecorded("expense", e.ID, e.ApartmentID, userID, e.AmountCents, req.Date, category)

	return c.JSON(http.StatusCreated, e)
}

// ListExpensesByApartment handles GET /v1/apartments/:id/expenses with the
// same unowned-means-empty behavior as incomes.
func (h *PropertyHandler) ListExpensesByApartment(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	apartmentID, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	owned, err := h.Apartments.OwnedByUser(c.Request().Context(), apartmentID, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if !owned {
		return c.JSON(http.StatusOK, echo.Map{"items": []model.Expense{}})
	}
	items, err := h.Expenses.ListByApartment(c.Request().Context(), apartmentID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if items == nil {
		items = []model.Expense{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetExpense handles GET /v1/expenses/:id.
func (h *PropertyHandler) GetExpense(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	e, err := h.Expenses.GetByIDForUser(c.Request().Context(), id, userID)
	if err != nil {
		if err == repository.ErrExpenseNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "expense not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, e)
}

// UpdateExpense handles PUT /v1/expenses/:id as a full-field replace.
func (h *PropertyHandler) UpdateExpense(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req expenseUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	category := strings.TrimSpace(req.Category)
	if category == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "category is required"})
	}
	cents, err := money.ParseCents(req.Amount)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "amount must be a positive decimal"})
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}

	if err := h.Expenses.UpdateForUser(c.Request().Context(), id, userID, cents, date, category, req.Description); err != nil {
		if err == repository.ErrExpenseNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "expense not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	e, err := h.Expenses.GetByIDForUser(c.Request().Context(), id, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, e)
}

// DeleteExpense handles DELETE /v1/expenses/:id.
func (h *PropertyHandler) DeleteExpense(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Expenses.DeleteForUser(c.Request().Context(), id, userID); err != nil {
		if err == repository.ErrExpenseNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "expense not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
