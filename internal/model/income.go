package model

import "time"

// Income records money received against an apartment on a given date.
// Amounts are stored as integer cents to keep summation exact.
//
// Fields:
//  ID          – primary key identifier.
//  ApartmentID – apartment this income belongs to.
//  AmountCents – positive amount in cents.
//  Date        – the day the income applies to (date only, UTC).
//  Description – optional free-text note.
//  CreatedAt   – timestamp when the row was created.
type Income struct {
    ID          uint64    `json:"id"`                    // incomes.id
    ApartmentID uint64    `json:"apartment_id"`          // incomes.apartment_id
    AmountCents int64     `json:"amount_cents"`          // incomes.amount_cents
    Date        time.Time `json:"date"`                  // incomes.date
    Description *string   `json:"description,omitempty"` // incomes.description (nullable)
    CreatedAt   time.Time `json:"created_at"`            // incomes.created_at
}
