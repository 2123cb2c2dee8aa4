package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dkovacev/apartment-manager/internal/model"
)

// ExpenseRepo mirrors IncomeRepo for expense rows; the only structural
// difference is the required category column.
type ExpenseRepo struct {
	db *sql.DB
}

func NewExpenseRepo(db *sql.DB) *ExpenseRepo { return &ExpenseRepo{db: db} }

// Create inserts a new expense row and fills in the DB-assigned fields.
func (r *ExpenseRepo) Create(ctx context.Context, e *model.Expense) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO expenses (apartment_id, amount_cents, date, category, description) VALUES (?, ?, ?, ?, ?)",
		e.ApartmentID, e.AmountCents, e.Date.Format("2006-01-02"), e.Category, e.Description)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)

	return r.db.QueryRowContext(ctx,
		"SELECT date, created_at FROM expenses WHERE id = ?", e.ID).Scan(&e.Date, &e.CreatedAt)
}

// GetByIDForUser fetches an expense row only if its apartment belongs to
// the user.
func (r *ExpenseRepo) GetByIDForUser(ctx context.Context, id, userID uint64) (*model.Expense, error) {
	var e model.Expense
	err := r.db.QueryRowContext(ctx,
		`SELECT e.id, e.apartment_id, e.amount_cents, e.date, e.category, e.description, e.created_at
		 FROM expenses e
		 JOIN apartments a ON a.id = e.apartment_id
		 WHERE e.id = ? AND a.user_id = ?`,
		id, userID).Scan(&e.ID, &e.ApartmentID, &e.AmountCents, &e.Date, &e.Category, &e.Description, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrExpenseNotFound
		}
		return nil, err
	}
	return &e, nil
}

// ListByApartment returns all expense rows of an apartment, newest first.
func (r *ExpenseRepo) ListByApartment(ctx context.Context, apartmentID uint64) ([]model.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, apartment_id, amount_cents, date, category, description, created_at
		 FROM expenses WHERE apartment_id = ? ORDER BY date DESC, id DESC`, apartmentID)
	if err != nil {
		return nil, err
	}
	return scanExpenses(rows)
}

// ListByApartmentAndDateRange returns expense rows inside the inclusive
// [from, to] bound.
func (r *ExpenseRepo) ListByApartmentAndDateRange(ctx context.Context, apartmentID uint64, from, to time.Time) ([]model.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, apartment_id, amount_cents, date, category, description, created_at
		 FROM expenses
		 WHERE apartment_id = ? AND date >= ? AND date <= ?
		 ORDER BY date, id`,
		apartmentID, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	return scanExpenses(rows)
}

// UpdateForUser replaces all mutable fields, ownership-guarded in the same
// statement.
func (r *ExpenseRepo) UpdateForUser(ctx context.Context, id, userID uint64, amountCents int64, date time.Time, category string, description *string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE expenses e
		 JOIN apartments a ON a.id = e.apartment_id
		 SET e.amount_cents = ?, e.date = ?, e.category = ?, e.description = ?
		 WHERE e.id = ? AND a.user_id = ?`,
		amountCents, date.Format("2006-01-02"), category, description, id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrExpenseNotFound
	}
	return nil
}

// DeleteForUser removes an expense row, ownership-guarded.
func (r *ExpenseRepo) DeleteForUser(ctx context.Context, id, userID uint64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE e FROM expenses e
		 JOIN apartments a ON a.id = e.apartment_id
		 WHERE e.id = ? AND a.user_id = ?`,
		id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrExpenseNotFound
	}
	return nil
}

func scanExpenses(rows *sql.Rows) ([]model.Expense, error) {
	defer rows.Close()
	var out []model.Expense
	for rows.Next() {
		var e model.Expense
		if err := rows.Scan(&e.ID, &e.ApartmentID, &e.AmountCents, &e.Date, &e.Category, &e.Description, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
