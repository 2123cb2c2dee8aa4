// Package service holds domain logic that spans multiple repositories.
// SummaryService is the financial aggregator: it turns raw income/expense
// rows into per-apartment monthly totals and yearly reports.
package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/dkovacev/apartment-manager/internal/model"
	"github.com/dkovacev/apartment-manager/internal/repository"
)

// ErrInvalidMonth is returned for month values outside 1..12.
var ErrInvalidMonth = errors.New("month must be between 1 and 12")

// ApartmentSource is the slice of ApartmentRepo the aggregator needs.
type ApartmentSource interface {
	GetByIDAndOwner(ctx context.Context, id, ownerID uint64) (*model.Apartment, error)
	ListByOwner(ctx context.Context, ownerID uint64) ([]*model.Apartment, error)
}

// IncomeSource yields income rows for an apartment inside a date range.
type IncomeSource interface {
	ListByApartmentAndDateRange(ctx context.Context, apartmentID uint64, from, to time.Time) ([]model.Income, error)
}

// ExpenseSource yields expense rows for an apartment inside a date range.
type ExpenseSource interface {
	ListByApartmentAndDateRange(ctx context.Context, apartmentID uint64, from, to time.Time) ([]model.Expense, error)
}

// Summary aggregates one apartment's income/expense totals for one
// calendar month.  All money fields are integer cents; NetProfitCents is
// exactly TotalIncomeCents - TotalExpensesCents.
type Summary struct {
	ApartmentID        uint64 `json:"apartment_id"`
	ApartmentName      string `json:"apartment_name"`
	Year               int    `json:"year"`
	Month              int    `json:"month"`
	TotalIncomeCents   int64  `json:"total_income_cents"`
	TotalExpensesCents int64  `json:"total_expenses_cents"`
	NetProfitCents     int64  `json:"net_profit_cents"`
	IncomeCount        int    `json:"income_count"`
	ExpenseCount       int    `json:"expense_count"`
}

// SummaryService computes monthly and yearly financial summaries.
type SummaryService struct {
	apartments ApartmentSource
	incomes    IncomeSource
	expenses   ExpenseSource
}

func NewSummaryService(apartments ApartmentSource, incomes IncomeSource, expenses ExpenseSource) *SummaryService {
	return &SummaryService{apartments: apartments, incomes: incomes, expenses: expenses}
}

// Monthly computes the summary for one apartment and month.  Ownership is
// verified first: an apartment that is absent or owned by another user
// yields repository.ErrApartmentNotFound, never the data.
func (s *SummaryService) Monthly(ctx context.Context, apartmentID uint64, year, month int, userID uint64) (*Summary, error) {
	if month < 1 || month > 12 {
		return nil, ErrInvalidMonth
	}
	apt, err := s.apartments.GetByIDAndOwner(ctx, apartmentID, userID)
	if err != nil {
		return nil, err
	}

	// Inclusive month bounds: last day = first of month + 1 month - 1 day.
	// AddDate handles the December -> January rollover.
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	incomes, err := s.incomes.ListByApartmentAndDateRange(ctx, apartmentID, first, last)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenses.ListByApartmentAndDateRange(ctx, apartmentID, first, last)
	if err != nil {
		return nil, err
	}

	var incomeTotal, expenseTotal int64
	for _, in := range incomes {
		incomeTotal += in.AmountCents
	}
	for _, e := range expenses {
		expenseTotal += e.AmountCents
	}

	return &Summary{
		ApartmentID:        apt.ID,
		ApartmentName:      apt.Name,
		Year:               year,
		Month:              month,
		TotalIncomeCents:   incomeTotal,
		TotalExpensesCents: expenseTotal,
		NetProfitCents:     incomeTotal - expenseTotal,
		IncomeCount:        len(incomes),
		ExpenseCount:       len(expenses),
	}, nil
}

// Yearly computes monthly summaries for every apartment the user owns and
// every month of the year, keeping only months with activity.  Results are
// sorted by month ascending, then apartment name (byte-wise).
//
// This is an O(apartments x 12) loop of range queries.  Fine at the
// cardinalities this application sees; batch-fetch and bucket locally
// before reusing it at larger scale.
func (s *SummaryService) Yearly(ctx context.Context, year int, userID uint64) ([]Summary, error) {
	apartments, err := s.apartments.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]Summary, 0)
	for _, apt := range apartments {
		for month := 1; month <= 12; month++ {
			sum, err := s.Monthly(ctx, apt.ID, year, month, userID)
			if err != nil {
				if errors.Is(err, repository.ErrApartmentNotFound) {
					// Apartment vanished between the list and the per-month
					// lookup; skip it rather than failing the whole report.
					break
				}
				return nil, err
			}
			if sum.TotalIncomeCents > 0 || sum.TotalExpensesCents > 0 {
				summaries = append(summaries, *sum)
			}
		}
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Month != summaries[j].Month {
			return summaries[i].Month < summaries[j].Month
		}
		return summaries[i].ApartmentName < summaries[j].ApartmentName
	})
	return summaries, nil
}
