package model

// Booking payment status values.
const (
    PaymentPaid    = "paid"
    PaymentPending = "pending"
)

// Booking status values.  Creation always assigns StatusConfirmed; the
// other two values are legal states of the field but no workflow drives
// them.
const (
    StatusConfirmed = "confirmed"
    StatusPending   = "pending"
    StatusCancelled = "cancelled"
)

// Booking is a guest reservation held against an apartment's calendar.
// Bookings never touch the relational store: the list for an apartment
// lives wholesale in a key-value backend (see package booking) and is
// rewritten on every mutation.
//
// Dates are YYYY-MM-DD strings.  The format sorts lexicographically in
// date order, so plain string comparison implements the interval checks.
// CheckOut is exclusive: the checkout day itself is free for the next
// guest, which allows back-to-back turnover bookings.
//
// Fields:
//  ID            – time-based identifier assigned at creation.
//  ApartmentID   – apartment whose calendar this booking occupies.
//  GuestName     – name of the guest.
//  CheckIn       – first occupied day (inclusive).
//  CheckOut      – first free day (exclusive).
//  PriceCents    – positive total price in cents.
//  PaymentStatus – "paid" or "pending".
//  Status        – "confirmed", "pending" or "cancelled".
//  Notes         – optional free-text note.
type Booking struct {
    ID            string  `json:"id"`
    ApartmentID   uint64  `json:"apartment_id"`
    GuestName     string  `json:"guest_name"`
    CheckIn       string  `json:"check_in"`
    CheckOut      string  `json:"check_out"`
    PriceCents    int64   `json:"price_cents"`
    PaymentStatus string  `json:"payment_status"`
    Status        string  `json:"status"`
    Notes         *string `json:"notes,omitempty"`
}
