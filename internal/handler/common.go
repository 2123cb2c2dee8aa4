package handler // handler defines http handlers

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dkovacev/apartment-manager/internal/repository"
	"github.com/dkovacev/apartment-manager/internal/service"
)

// PropertyHandler bundles the repositories and services behind the
// owner-scoped endpoints: apartments, incomes, expenses and summaries.
type PropertyHandler struct {
	Apartments *repository.ApartmentRepo
	Incomes    *repository.IncomeRepo
	Expenses   *repository.ExpenseRepo
	Summaries  *service.SummaryService
}

// NewPropertyHandler constructs a PropertyHandler and panics if any
// dependency is nil.
func NewPropertyHandler(apartments *repository.ApartmentRepo, incomes *repository.IncomeRepo, expenses *repository.ExpenseRepo, summaries *service.SummaryService) *PropertyHandler {
	if apartments == nil || incomes == nil || expenses == nil || summaries == nil {
		panic("nil dependency passed to NewPropertyHandler")
	}
	return &PropertyHandler{
		Apartments: apartments,
		Incomes:    incomes,
		Expenses:   expenses,
		Summaries:  summaries,
	}
}

// getUserID extracts the user_id placed in context by the JWT middleware
// and converts it to uint64.  JWT numeric claims decode as float64, so a
// few representations are accepted.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// parseIDParam parses the :id path parameter.
func parseIDParam(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}
