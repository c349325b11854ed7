package gateway

import (
	"context"
	"fmt"
	"sort"
)

// CreateBooking assigns a generated id, the PENDING status and a creation
// timestamp, then persists the booking. Neither the referenced room nor the
// time range is validated; double-booking is not prevented by this layer.
func (g *Gateway) CreateBooking(ctx context.Context, input BookingInput) (booking Booking, err error) {
	if g == nil {
		return Booking{}, fmt.Errorf("Gateway is nil")
	}

	logger := g.loggerWith(ctx, "CreateBooking", "room_id", input.RoomID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create booking", "error", err, "error_kind", errorKind(err))
			return
		}
		logger.With("booking_id", booking.ID).InfoContext(ctx, "booking created")
	}()

	if err = g.wait(ctx, delayCreateBooking); err != nil {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	bookings, _, err := readJSON[[]Booking](ctx, g.store, keyBookings)
	if err != nil {
		return
	}

	booking = Booking{
		ID:            g.idGenerator(),
		RoomID:        input.RoomID,
		RequesterID:   input.RequesterID,
		RequesterName: input.RequesterName,
		Purpose:       input.Purpose,
		Start:         input.Start,
		End:           input.End,
		Status:        StatusPending,
		CreatedAt:     g.now(),
	}

	if err = writeJSON(ctx, g.store, keyBookings, append(bookings, booking)); err != nil {
		booking = Booking{}
		return
	}

	g.recordAudit(ctx, input.RequesterName, "create_booking", booking.ID, "ok", input.RoomID)
	return
}

// Bookings returns every booking ordered by creation timestamp descending.
// The at-rest collection keeps insertion order, so the stable sort leaves
// same-timestamp bookings in the order they were created.
func (g *Gateway) Bookings(ctx context.Context) ([]Booking, error) {
	if g == nil {
		return nil, fmt.Errorf("Gateway is nil")
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	bookings, _, err := readJSON[[]Booking](ctx, g.store, keyBookings)
	if err != nil {
		g.loggerWith(ctx, "Bookings").ErrorContext(ctx, "failed to list bookings", "error", err, "error_kind", errorKind(err))
		return nil, err
	}

	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})
	return bookings, nil
}

// UpdateBookingStatus replaces only the status field of the matching booking.
// An unknown id leaves the collection unchanged and still reports success.
func (g *Gateway) UpdateBookingStatus(ctx context.Context, id string, status BookingStatus) (err error) {
	if g == nil {
		return fmt.Errorf("Gateway is nil")
	}

	logger := g.loggerWith(ctx, "UpdateBookingStatus", "booking_id", id, "status", string(status))
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update booking status", "error", err, "error_kind", errorKind(err))
			return
		}
		logger.InfoContext(ctx, "booking status updated")
	}()

	g.mu.Lock()
	defer g.mu.Unlock()

	bookings, _, err := readJSON[[]Booking](ctx, g.store, keyBookings)
	if err != nil {
		return
	}

	for i := range bookings {
		if bookings[i].ID == id {
			bookings[i].Status = status
			break
		}
	}

	if err = writeJSON(ctx, g.store, keyBookings, bookings); err != nil {
		return
	}

	g.recordAudit(ctx, "", "update_booking_status", id, "ok", string(status))
	return
}

// UpdateBooking replaces the booking with a matching id wholesale. An unknown
// id leaves the collection unchanged and still reports success.
func (g *Gateway) UpdateBooking(ctx context.Context, booking Booking) (err error) {
	if g == nil {
		return fmt.Errorf("Gateway is nil")
	}

	logger := g.loggerWith(ctx, "UpdateBooking", "booking_id", booking.ID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update booking", "error", err, "error_kind", errorKind(err))
			return
		}
		logger.InfoContext(ctx, "booking updated")
	}()

	g.mu.Lock()
	defer g.mu.Unlock()

	bookings, _, err := readJSON[[]Booking](ctx, g.store, keyBookings)
	if err != nil {
		return
	}

	for i := range bookings {
		if bookings[i].ID == booking.ID {
			bookings[i] = booking
			break
		}
	}

	err = writeJSON(ctx, g.store, keyBookings, bookings)
	return
}
