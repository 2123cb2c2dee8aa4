package model

import "time"

// Expense records money spent on an apartment on a given date.  Unlike
// Income it carries a required category label ("Maintenance", "Utilities",
// ...).  Amounts are stored as integer cents.
//
// Fields:
//  ID          – primary key identifier.
//  ApartmentID – apartment this expense belongs to.
//  AmountCents – positive amount in cents.
//  Date        – the day the expense applies to (date only, UTC).
//  Category    – required free-text category label.
//  Description – optional free-text note.
//  CreatedAt   – timestamp when the row was created.
type Expense struct {
    ID          uint64    `json:"id"`                    // expenses.id
    ApartmentID uint64    `json:"apartment_id"`          // expenses.apartment_id
    AmountCents int64     `json:"amount_cents"`          // expenses.amount_cents
    Date        time.Time `json:"date"`                  // expenses.date
    Category    string    `json:"category"`              // expenses.category
    Description *string   `json:"description,omitempty"` // expenses.description (nullable)
    CreatedAt   time.Time `json:"created_at"`            // expenses.created_at
}
