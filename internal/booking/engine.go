// Package booking maintains per-apartment guest reservation calendars with
// overlap detection.  Intervals are half-open: [checkIn, checkOut), so the
// checkout day itself is free and back-to-back turnover bookings (one
// guest's checkout equals the next guest's check-in) are allowed.
//
// The engine is deliberately store-agnostic.  State lives behind the Store
// interface as one list per apartment, loaded whole and saved whole, which
// matches how the original client keeps these lists in browser storage.
package booking

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/dkovacev/apartment-manager/internal/model"
)

const dateLayout = "2006-01-02"

var (
	// ErrInvalidRange is returned when checkOut is not strictly after checkIn
	// or a date is not a valid YYYY-MM-DD string.
	ErrInvalidRange = errors.New("check-out must be after check-in")
	// ErrOverlap is returned when the requested dates collide with an
	// existing booking.  Recoverable: the caller picks different dates.
	ErrOverlap = errors.New("dates overlap with an existing booking")
	// ErrBookingNotFound is returned when the referenced booking id does
	// not exist in the apartment's list.
	ErrBookingNotFound = errors.New("booking not found")
	// ErrInvalidBooking is returned for field-level validation failures.
	ErrInvalidBooking = errors.New("invalid booking")
)

// Request carries the mutable fields of a booking for create and update.
type Request struct {
	GuestName     string
	CheckIn       string // YYYY-MM-DD, inclusive
	CheckOut      string // YYYY-MM-DD, exclusive
	PriceCents    int64
	PaymentStatus string // "paid" | "pending"
	Notes         *string
}

// Engine implements the calendar operations for any number of apartments
// over a pluggable Store.
type Engine struct {
	store Store
}

func NewEngine(store Store) *Engine { return &Engine{store: store} }

// newID returns a time-based identifier.  Nanosecond precision keeps ids
// unique even when bookings are created in quick succession.
var newID = func() string {
	return strconv.FormatInt(time.Now().UnixNano(), 10)
}

func validDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

// validate checks the field-level constraints shared by create and update.
func validate(req Request) error {
	if strings.TrimSpace(req.GuestName) == "" {
		return errors.Join(ErrInvalidBooking, errors.New("guest name is required"))
	}
	if req.PriceCents <= 0 {
		return errors.Join(ErrInvalidBooking, errors.New("price must be positive"))
	}
	if req.PaymentStatus != model.PaymentPaid && req.PaymentStatus != model.PaymentPending {
		return errors.Join(ErrInvalidBooking, errors.New("payment status must be paid or pending"))
	}
	if !validDate(req.CheckIn) || !validDate(req.CheckOut) {
		return ErrInvalidRange
	}
	if req.CheckIn >= req.CheckOut {
		return ErrInvalidRange
	}
	return nil
}

// hasOverlap reports whether [checkIn, checkOut) collides with any booking
// in the list other than excludeID.  Equal boundary dates do not overlap.
// YYYY-MM-DD strings compare lexicographically in date order.
func hasOverlap(bookings []model.Booking, checkIn, checkOut, excludeID string) bool {
	for _, b := range bookings {
		if excludeID != "" && b.ID == excludeID {
			continue
		}
		if checkIn < b.CheckOut && checkOut > b.CheckIn {
			return true
		}
	}
	return false
}

// List returns the apartment's bookings for calendar rendering.
func (e *Engine) List(ctx context.Context, apartmentID uint64) ([]model.Booking, error) {
	return e.store.Load(ctx, apartmentID)
}

// Create validates the request, rejects overlapping dates and appends the
// new booking with a fresh id.  Status is always "confirmed" at creation.
func (e *Engine) Create(ctx context.Context, apartmentID uint64, req Request) (model.Booking, error) {
	if err := validate(req); err != nil {
		return model.Booking{}, err
	}
	bookings, err := e.store.Load(ctx, apartmentID)
	if err != nil {
		return model.Booking{}, err
	}
	if hasOverlap(bookings, req.CheckIn, req.CheckOut, "") {
		return model.Booking{}, ErrOverlap
	}
	b := model.Booking{
		ID:            newID(),
		ApartmentID:   apartmentID,
		GuestName:     strings.TrimSpace(req.GuestName),
		CheckIn:       req.CheckIn,
		CheckOut:      req.CheckOut,
		PriceCents:    req.PriceCents,
		PaymentStatus: req.PaymentStatus,
		Status:        model.StatusConfirmed,
		Notes:         req.Notes,
	}
	if err := e.store.Save(ctx, apartmentID, append(bookings, b)); err != nil {
		return model.Booking{}, err
	}
	return b, nil
}

// Update replaces the mutable fields of the booking with the given id.
// The overlap check excludes the booking itself, so shifting a booking
// onto dates that only collide with its own previous range succeeds.
func (e *Engine) Update(ctx context.Context, apartmentID uint64, id string, req Request) (model.Booking, error) {
	if err := validate(req); err != nil {
		return model.Booking{}, err
	}
	bookings, err := e.store.Load(ctx, apartmentID)
	if err != nil {
		return model.Booking{}, err
	}
	idx := -1
	for i, b := range bookings {
		if b.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return model.Booking{}, ErrBookingNotFound
	}
	if hasOverlap(bookings, req.CheckIn, req.CheckOut, id) {
		return model.Booking{}, ErrOverlap
	}
	b := bookings[idx]
	b.GuestName = strings.TrimSpace(req.GuestName)
	b.CheckIn = req.CheckIn
	b.CheckOut = req.CheckOut
	b.PriceCents = req.PriceCents
	b.PaymentStatus = req.PaymentStatus
	b.Notes = req.Notes
	bookings[idx] = b
	if err := e.store.Save(ctx, apartmentID, bookings); err != nil {
		return model.Booking{}, err
	}
	return b, nil
}

// Delete removes the booking unconditionally.  Bookings have no dependents,
// so no referential checks are needed.
func (e *Engine) Delete(ctx context.Context, apartmentID uint64, id string) error {
	bookings, err := e.store.Load(ctx, apartmentID)
	if err != nil {
		return err
	}
	out := bookings[:0]
	for _, b := range bookings {
		if b.ID != id {
			out = append(out, b)
		}
	}
	if len(out) == len(bookings) {
		return ErrBookingNotFound
	}
	return e.store.Save(ctx, apartmentID, out)
}

// TogglePayment flips paid <-> pending on a single booking.  Independent of
// the overlap checks.
func (e *Engine) TogglePayment(ctx context.Context, apartmentID uint64, id string) (model.Booking, error) {
	bookings, err := e.store.Load(ctx, apartmentID)
	if err != nil {
		return model.Booking{}, err
	}
	for i, b := range bookings {
		if b.ID != id {
			continue
		}
		if b.PaymentStatus == model.PaymentPaid {
			b.PaymentStatus = model.PaymentPending
		} else {
			b.PaymentStatus = model.PaymentPaid
		}
		bookings[i] = b
		if err := e.store.Save(ctx, apartmentID, bookings); err != nil {
			return model.Booking{}, err
		}
		return b, nil
	}
	return model.Booking{}, ErrBookingNotFound
}

// IsDateBooked reports whether some booking occupies the given day, i.e.
// date is in [checkIn, checkOut).  The checkout day itself is free.
func (e *Engine) IsDateBooked(ctx context.Context, apartmentID uint64, date string) (bool, error) {
	if !validDate(date) {
		return false, ErrInvalidRange
	}
	bookings, err := e.store.Load(ctx, apartmentID)
	if err != nil {
		return false, err
	}
	for _, b := range bookings {
		if date >= b.CheckIn && date < b.CheckOut {
			return true, nil
		}
	}
	return false, nil
}

// IsApartmentAvailable answers the search query.  With endDate empty the
// question is about a single day; otherwise about the whole [startDate,
// endDate) range.  This is a read-only check, so no id is excluded.
func (e *Engine) IsApartmentAvailable(ctx context.Context, apartmentID uint64, startDate, endDate string) (bool, error) {
	if endDate == "" {
		booked, err := e.IsDateBooked(ctx, apartmentID, startDate)
		return !booked, err
	}
	if !validDate(startDate) || !validDate(endDate) || startDate >= endDate {
		return false, ErrInvalidRange
	}
	bookings, err := e.store.Load(ctx, apartmentID)
	if err != nil {
		return false, err
	}
	return !hasOverlap(bookings, startDate, endDate, ""), nil
}
