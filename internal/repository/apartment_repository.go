// Package repository contains data access logic separated from HTTP handlers.
// This file defines repository methods for apartments.  Apartments are the
// ownership boundary of the whole application: the OwnedByUser predicate and
// the `AND user_id = ?` clauses here are the single place where ownership of
// apartment-scoped data is decided.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dkovacev/apartment-manager/internal/model"
)

// ApartmentRepo encapsulates all database queries related to apartments.
type ApartmentRepo struct {
	db *sql.DB
}

// NewApartmentRepo constructs an ApartmentRepo with the provided DB handle.
func NewApartmentRepo(db *sql.DB) *ApartmentRepo {
	return &ApartmentRepo{db: db}
}

// Create inserts a new apartment.  On success the ID field is populated with
// the auto-generated value and a follow-up SELECT fills the timestamp fields
// so callers receive a fully populated record.
func (r *ApartmentRepo) Create(ctx context.Context, a *model.Apartment) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO apartments (user_id, name, location) VALUES (?, ?, ?)",
		a.UserID, a.Name, a.Location)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)

	return r.db.QueryRowContext(ctx,
		"SELECT user_id, name, location, created_at, updated_at FROM apartments WHERE id = ?",
		a.ID).Scan(&a.UserID, &a.Name, &a.Location, &a.CreatedAt, &a.UpdatedAt)
}

// GetByIDAndOwner fetches an apartment by id but only if it belongs to the
// given owner.  Whether the apartment is absent or owned by someone else,
// the caller sees the same ErrApartmentNotFound.
func (r *ApartmentRepo) GetByIDAndOwner(ctx context.Context, id, ownerID uint64) (*model.Apartment, error) {
	var a model.Apartment
	err := r.db.QueryRowContext(ctx,
		"SELECT id, user_id, name, location, created_at, updated_at FROM apartments WHERE id = ? AND user_id = ?",
		id, ownerID).Scan(&a.ID, &a.UserID, &a.Name, &a.Location, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrApartmentNotFound
		}
		return nil, err
	}
	return &a, nil
}

// OwnedByUser reports whether the apartment exists and belongs to userID.
// Every create path that takes an apartment id from a request payload, and
// every list-by-apartment path, goes through this predicate.
func (r *ApartmentRepo) OwnedByUser(ctx context.Context, id, userID uint64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM apartments WHERE id = ? AND user_id = ?", id, userID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListByOwner returns all apartments for a specific owner ordered by id.
func (r *ApartmentRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]*model.Apartment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, name, location, created_at, updated_at
		 FROM apartments WHERE user_id = ? ORDER BY id`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Apartment
	for rows.Next() {
		a := new(model.Apartment)
		if err := rows.Scan(&a.ID, &a.UserID, &a.Name, &a.Location, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update replaces name and location if the apartment belongs to the owner.
// The ownership check lives in the WHERE clause of the same statement, so
// check and mutation observe one snapshot.  ErrApartmentNotFound when no
// row matched (absent or foreign).
func (r *ApartmentRepo) Update(ctx context.Context, id, ownerID uint64, name string, location *string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE apartments
		 SET name = ?, location = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND user_id = ?`,
		name, location, id, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrApartmentNotFound
	}
	return nil
}

// DeleteByIDAndOwner removes an apartment and its dependent income/expense
// rows, provided it belongs to the given owner.  The deletion occurs within
// a transaction to maintain integrity.  A foreign or missing apartment both
// yield ErrApartmentNotFound.
func (r *ApartmentRepo) DeleteByIDAndOwner(ctx context.Context, id, ownerID uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()

	var found uint64
	if err = tx.QueryRowContext(ctx,
		"SELECT id FROM apartments WHERE id = ? AND user_id = ?", id, ownerID).Scan(&found); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrApartmentNotFound
		}
		return err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM incomes WHERE apartment_id = ?", id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM expenses WHERE apartment_id = ?", id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM apartments WHERE id = ?", id); err != nil {
		return err
	}
	return nil
}
