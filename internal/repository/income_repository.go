package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dkovacev/apartment-manager/internal/model"
)

// IncomeRepo encapsulates database queries for income rows.  Every method
// that addresses a row by id joins through apartments and filters on the
// owning user, so the ownership check and the mutation are a single
// statement with no time-of-check/time-of-use window.
type IncomeRepo struct {
	db *sql.DB
}

func NewIncomeRepo(db *sql.DB) *IncomeRepo { return &IncomeRepo{db: db} }

// Create inserts a new income row.  Ownership of the target apartment must
// already have been established by the caller (the create payload names the
// apartment, so a foreign apartment is a Forbidden case, not NotFound).
func (r *IncomeRepo) Create(ctx context.Context, in *model.Income) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO incomes (apartment_id, amount_cents, date, description) VALUES (?, ?, ?, ?)",
		in.ApartmentID, in.AmountCents, in.Date.Format("2006-01-02"), in.Description)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	in.ID = uint64(id)

	return r.db.QueryRowContext(ctx,
		"SELECT date, created_at FROM incomes WHERE id = ?", in.ID).Scan(&in.Date, &in.CreatedAt)
}

// GetByIDForUser fetches an income row only if its apartment belongs to the
// user.  Absent and foreign rows are indistinguishable to the caller.
func (r *IncomeRepo) GetByIDForUser(ctx context.Context, id, userID uint64) (*model.Income, error) {
	var in model.Income
	err := r.db.QueryRowContext(ctx,
		`SELECT i.id, i.apartment_id, i.amount_cents, i.date, i.description, i.created_at
		 FROM incomes i
		 JOIN apartments a ON a.id = i.apartment_id
		 WHERE i.id = ? AND a.user_id = ?`,
		id, userID).Scan(&in.ID, &in.ApartmentID, &in.AmountCents, &in.Date, &in.Description, &in.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrIncomeNotFound
		}
		return nil, err
	}
	return &in, nil
}

// ListByApartment returns all income rows of an apartment ordered by date
// descending, newest first.
func (r *IncomeRepo) ListByApartment(ctx context.Context, apartmentID uint64) ([]model.Income, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, apartment_id, amount_cents, date, description, created_at
		 FROM incomes WHERE apartment_id = ? ORDER BY date DESC, id DESC`, apartmentID)
	if err != nil {
		return nil, err
	}
	return scanIncomes(rows)
}

// ListByApartmentAndDateRange returns income rows whose date falls inside
// the inclusive [from, to] bound.  Used by the financial aggregator.
func (r *IncomeRepo) ListByApartmentAndDateRange(ctx context.Context, apartmentID uint64, from, to time.Time) ([]model.Income, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, apartment_id, amount_cents, date, description, created_at
		 FROM incomes
		 WHERE apartment_id = ? AND date >= ? AND date <= ?
		 ORDER BY date, id`,
		apartmentID, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	return scanIncomes(rows)
}

// UpdateForUser replaces all mutable fields of an income row (full replace,
// not a partial patch), guarded by ownership in the same statement.
// ErrIncomeNotFound when the row is absent or owned by another user.
func (r *IncomeRepo) UpdateForUser(ctx context.Context, id, userID uint64, amountCents int64, date time.Time, description *string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE incomes i
		 JOIN apartments a ON a.id = i.apartment_id
		 SET i.amount_cents = ?, i.date = ?, i.description = ?
		 WHERE i.id = ? AND a.user_id = ?`,
		amountCents, date.Format("2006-01-02"), description, id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrIncomeNotFound
	}
	return nil
}

// DeleteForUser removes an income row, guarded by ownership in the same
// statement.  ErrIncomeNotFound when nothing matched.
func (r *IncomeRepo) DeleteForUser(ctx context.Context, id, userID uint64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE i FROM incomes i
		 JOIN apartments a ON a.id = i.apartment_id
		 WHERE i.id = ? AND a.user_id = ?`,
		id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrIncomeNotFound
	}
	return nil
}

func scanIncomes(rows *sql.Rows) ([]model.Income, error) {
	defer rows.Close()
	var out []model.Income
	for rows.Next() {
		var in model.Income
		if err := rows.Scan(&in.ID, &in.ApartmentID, &in.AmountCents, &in.Date, &in.Description, &in.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
