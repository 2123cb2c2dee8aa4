package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkovacev/apartment-manager/internal/model"
)

const apt = uint64(1)

func newTestEngine() *Engine {
	return NewEngine(NewMemoryStore())
}

func mustCreate(t *testing.T, e *Engine, checkIn, checkOut string) model.Booking {
	t.Helper()
	b, err := e.Create(context.Background(), apt, Request{
		GuestName:     "Guest",
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		PriceCents:    10000,
		PaymentStatus: model.PaymentPending,
	})
	require.NoError(t, err)
	return b
}

func TestCreateRejectsBadRange(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	_, err := e.Create(ctx, apt, Request{GuestName: "G", CheckIn: "2024-01-10", CheckOut: "2024-01-10", PriceCents: 100, PaymentStatus: model.PaymentPaid})
	assert.ErrorIs(t, err, ErrInvalidRange, "equal dates")

	_, err = e.Create(ctx, apt, Request{GuestName: "G", CheckIn: "2024-01-12", CheckOut: "2024-01-10", PriceCents: 100, PaymentStatus: model.PaymentPaid})
	assert.ErrorIs(t, err, ErrInvalidRange, "inverted dates")

	_, err = e.Create(ctx, apt, Request{GuestName: "G", CheckIn: "not-a-date", CheckOut: "2024-01-10", PriceCents: 100, PaymentStatus: model.PaymentPaid})
	assert.ErrorIs(t, err, ErrInvalidRange, "malformed date")
}

func TestCreateValidatesFields(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	_, err := e.Create(ctx, apt, Request{GuestName: " ", CheckIn: "2024-01-01", CheckOut: "2024-01-02", PriceCents: 100, PaymentStatus: model.PaymentPaid})
	assert.ErrorIs(t, err, ErrInvalidBooking, "blank guest name")

	_, err = e.Create(ctx, apt, Request{GuestName: "G", CheckIn: "2024-01-01", CheckOut: "2024-01-02", PriceCents: 0, PaymentStatus: model.PaymentPaid})
	assert.ErrorIs(t, err, ErrInvalidBooking, "zero price")

	_, err = e.Create(ctx, apt, Request{GuestName: "G", CheckIn: "2024-01-01", CheckOut: "2024-01-02", PriceCents: 100, PaymentStatus: "overdue"})
	assert.ErrorIs(t, err, ErrInvalidBooking, "unknown payment status")
}

func TestCreateAssignsIDAndConfirmedStatus(t *testing.T) {
	e := newTestEngine()
	b := mustCreate(t, e, "2024-01-01", "2024-01-10")
	assert.NotEmpty(t, b.ID)
	assert.Equal(t, model.StatusConfirmed, b.Status)
	assert.Equal(t, apt, b.ApartmentID)
}

func TestBackToBackBookingsAllowed(t *testing.T) {
	e := newTestEngine()
	mustCreate(t, e, "2024-01-01", "2024-01-10")
	// B starts exactly on A's checkout day: no overlap under half-open
	// semantics, turnover on the same day is fine.
	mustCreate(t, e, "2024-01-10", "2024-01-20")

	list, err := e.List(context.Background(), apt)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestStraddlingRangeOverlapsBoth(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()
	mustCreate(t, e, "2024-01-01", "2024-01-10")
	mustCreate(t, e, "2024-01-10", "2024-01-20")

	_, err := e.Create(ctx, apt, Request{
		GuestName: "G", CheckIn: "2024-01-05", CheckOut: "2024-01-12",
		PriceCents: 100, PaymentStatus: model.PaymentPaid,
	})
	assert.ErrorIs(t, err, ErrOverlap)
}

func TestOverlapIsPerApartment(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()
	mustCreate(t, e, "2024-01-01", "2024-01-10")

	// Same dates on a different apartment's calendar are fine.
	_, err := e.Create(ctx, 2, Request{
		GuestName: "G", CheckIn: "2024-01-01", CheckOut: "2024-01-10",
		PriceCents: 100, PaymentStatus: model.PaymentPaid,
	})
	assert.NoError(t, err)
}

func TestIsDateBookedBoundaries(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()
	mustCreate(t, e, "2024-03-01", "2024-03-05")

	for _, d := range []string{"2024-03-01", "2024-03-02", "2024-03-03", "2024-03-04"} {
		booked, err := e.IsDateBooked(ctx, apt, d)
		require.NoError(t, err)
		assert.True(t, booked, "%s should be booked", d)
	}
	booked, err := e.IsDateBooked(ctx, apt, "2024-03-05")
	require.NoError(t, err)
	assert.False(t, booked, "checkout day is free")

	booked, err = e.IsDateBooked(ctx, apt, "2024-02-29")
	require.NoError(t, err)
	assert.False(t, booked)
}

func TestIsApartmentAvailable(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()
	mustCreate(t, e, "2024-03-01", "2024-03-05")

	// Single-date form.
	ok, err := e.IsApartmentAvailable(ctx, apt, "2024-03-03", "")
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = e.IsApartmentAvailable(ctx, apt, "2024-03-05", "")
	require.NoError(t, err)
	assert.True(t, ok)

	// Range form.
	ok, err = e.IsApartmentAvailable(ctx, apt, "2024-03-04", "2024-03-08")
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = e.IsApartmentAvailable(ctx, apt, "2024-03-05", "2024-03-08")
	require.NoError(t, err)
	assert.True(t, ok, "range starting on checkout day is free")

	_, err = e.IsApartmentAvailable(ctx, apt, "2024-03-08", "2024-03-05")
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestUpdateExcludesSelf(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()
	x := mustCreate(t, e, "2024-01-01", "2024-01-10")
	y := mustCreate(t, e, "2024-01-10", "2024-01-20")

	// Shifting X onto dates that collide only with X's own previous range
	// must succeed.
	updated, err := e.Update(ctx, apt, x.ID, Request{
		GuestName: "Guest", CheckIn: "2024-01-03", CheckOut: "2024-01-08",
		PriceCents: 10000, PaymentStatus: model.PaymentPending,
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-03", updated.CheckIn)
	assert.Equal(t, x.ID, updated.ID)

	// Colliding with Y is still rejected.
	_, err = e.Update(ctx, apt, x.ID, Request{
		GuestName: "Guest", CheckIn: "2024-01-05", CheckOut: "2024-01-15",
		PriceCents: 10000, PaymentStatus: model.PaymentPending,
	})
	assert.ErrorIs(t, err, ErrOverlap)
	_ = y
}

func TestUpdateUnknownID(t *testing.T) {
	e := newTestEngine()
	_, err := e.Update(context.Background(), apt, "nope", Request{
		GuestName: "G", CheckIn: "2024-01-01", CheckOut: "2024-01-02",
		PriceCents: 100, PaymentStatus: model.PaymentPaid,
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestDelete(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()
	b := mustCreate(t, e, "2024-01-01", "2024-01-10")

	require.NoError(t, e.Delete(ctx, apt, b.ID))
	list, err := e.List(ctx, apt)
	require.NoError(t, err)
	assert.Empty(t, list)

	assert.ErrorIs(t, e.Delete(ctx, apt, b.ID), ErrBookingNotFound)
}

func TestTogglePayment(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()
	b := mustCreate(t, e, "2024-01-01", "2024-01-10")
	require.Equal(t, model.PaymentPending, b.PaymentStatus)

	b2, err := e.TogglePayment(ctx, apt, b.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentPaid, b2.PaymentStatus)

	b3, err := e.TogglePayment(ctx, apt, b.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentPending, b3.PaymentStatus)

	// Dates and status are untouched by the toggle.
	assert.Equal(t, b.CheckIn, b3.CheckIn)
	assert.Equal(t, model.StatusConfirmed, b3.Status)

	_, err = e.TogglePayment(ctx, apt, "nope")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
