package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dkovacev/apartment-manager/internal/model"
	"github.com/dkovacev/apartment-manager/internal/money"
	"github.com/dkovacev/apartment-manager/internal/queue"
	"github.com/dkovacev/apartment-manager/internal/repository"
)

const dateLayout = "2006-01-02"

type incomeCreateReq struct {
	ApartmentID uint64  `json:"apartment_id"`
	Amount      string  `json:"amount"` // decimal string, e.g. "120.50"
	Date        string  `json:"date"`   // YYYY-MM-DD
	Description *string `json:"description"`
}

type incomeUpdateReq struct {
	Amount      string  `json:"amount"`
	Date        string  `json:"date"`
	Description *string `json:"description"`
}

// CreateIncome handles POST /v1/incomes.  The payload names the target
// apartment, so a foreign apartment is a Forbidden case: the caller proved
// knowledge of the id but does not own it.
func (h *PropertyHandler) CreateIncome(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req incomeCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.ApartmentID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "apartment_id is required"})
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

	in := &model.Income{
		ApartmentID: req.ApartmentID,
		AmountCents: cents,
		Date:        date,
		Description: req.Description,
	}
	if err := h.Incomes.Create(c.Request().Context(), in); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create income"})
	}

	h.publishEntryRecorded("income", in.ID, in.ApartmentID, userID, in.AmountCents, req.Date, "")

	return c.JSON(http.StatusCreated, in)
}

// ListIncomesByApartment handles GET /v1/apartments/:id/incomes.  An
// apartment the caller does not own yields an empty collection, not an
// error.
func (h *PropertyHandler) ListIncomesByApartment(c echo.Context) error {
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
		return c.JSON(http.StatusOK, echo.Map{"items": []model.Income{}})
	}
	items, err := h.Incomes.ListByApartment(c.Request().Context(), apartmentID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if items == nil {
		items = []model.Income{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetIncome handles GET /v1/incomes/:id.  Foreign rows are 404.
func (h *PropertyHandler) GetIncome(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	in, err := h.Incomes.GetByIDForUser(c.Request().Context(), id, userID)
	if err != nil {
		if err == repository.ErrIncomeNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "income not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, in)
}

// UpdateIncome handles PUT /v1/incomes/:id as a full-field replace.
func (h *PropertyHandler) UpdateIncome(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req incomeUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	cents, err := money.ParseCents(req.Amount)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "amount must be a positive decimal"})
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}

	if err := h.Incomes.UpdateForUser(c.Request().Context(), id, userID, cents, date, req.Description); err != nil {
		if err == repository.ErrIncomeNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "income not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	in, err := h.Incomes.GetByIDForUser(c.Request().Context(), id, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, in)
}

// DeleteIncome handles DELETE /v1/incomes/:id.
func (h *PropertyHandler) DeleteIncome(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Incomes.DeleteForUser(c.Request().Context(), id, userID); err != nil {
		if err == repository.ErrIncomeNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "income not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// publishEntryRecorded emits the EntryRecordedEvent for a freshly created
// entry.  Runs detached from the request: the broker being down must never
// fail the create, and the apartment name lookup is best effort.
func (h *PropertyHandler) publishEntryRecorded(entryType string, entryID, apartmentID, userID uint64, amountCents int64, date, category string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		name := ""
		if apt, err := h.Apartments.GetByIDAndOwner(ctx, apartmentID, userID); err == nil {
			name = apt.Name
		}
		_ = queue.PublishEntryRecorded(ctx, queue.EntryRecordedEvent{
			EntryType:     entryType,
			EntryID:       entryID,
			ApartmentID:   apartmentID,
			ApartmentName: name,
			UserID:        userID,
			AmountCents:   amountCents,
			Date:          date,
			Category:      category,
			RecordedAt:    time.Now().UTC().Format(time.RFC3339),
		})
	}()
}
