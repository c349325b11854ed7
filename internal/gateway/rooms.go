package gateway

import (
	"context"
	"fmt"
)

// Rooms returns every room in storage, in insertion order.
func (g *Gateway) Rooms(ctx context.Context) ([]Room, error) {
	if g == nil {
		return nil, fmt.Errorf("Gateway is nil")
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	rooms, _, err := readJSON[[]Room](ctx, g.store, keyRooms)
	if err != nil {
		g.loggerWith(ctx, "Rooms").ErrorContext(ctx, "failed to list rooms", "error", err, "error_kind", errorKind(err))
		return nil, err
	}
	return rooms, nil
}

// AddRoom assigns a generated id to the input, appends the room and persists
// the collection.
func (g *Gateway) AddRoom(ctx context.Context, input RoomInput) (room Room, err error) {
	if g == nil {
		return Room{}, fmt.Errorf("Gateway is nil")
	}

	logger := g.loggerWith(ctx, "AddRoom", "name", input.Name)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to add room", "error", err, "error_kind", errorKind(err))
			return
		}
		logger.With("room_id", room.ID).InfoContext(ctx, "room added")
	}()

	g.mu.Lock()
	defer g.mu.Unlock()

	rooms, _, err := readJSON[[]Room](ctx, g.store, keyRooms)
	if err != nil {
		return
	}

	room = Room{
		ID:       g.idGenerator(),
		Name:     input.Name,
		Capacity: input.Capacity,
		Features: input.Features,
		ImageURL: input.ImageURL,
	}
	if room.Features == nil {
		room.Features = []string{}
	}

	if err = writeJSON(ctx, g.store, keyRooms, append(rooms, room)); err != nil {
		room = Room{}
		return
	}

	g.recordAudit(ctx, "", "add_room", room.ID, "ok", room.Name)
	return
}

// UpdateRoom replaces the room with a matching id. An unknown id leaves the
// collection unchanged and still reports success.
func (g *Gateway) UpdateRoom(ctx context.Context, room Room) (err error) {
	if g == nil {
		return fmt.Errorf("Gateway is nil")
	}

	logger := g.loggerWith(ctx, "UpdateRoom", "room_id", room.ID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update room", "error", err, "error_kind", errorKind(err))
			return
		}
		logger.InfoContext(ctx, "room updated")
	}()

	g.mu.Lock()
	defer g.mu.Unlock()

	rooms, _, err := readJSON[[]Room](ctx, g.store, keyRooms)
	if err != nil {
		return
	}

	for i := range rooms {
		if rooms[i].ID == room.ID {
			rooms[i] = room
			break
		}
	}

	err = writeJSON(ctx, g.store, keyRooms, rooms)
	return
}

// DeleteRoom removes the room by id, then cascades: every booking referencing
// the deleted room is removed as well. Both writes belong to the same logical
// operation; a fault after the room write leaves the collections divergent,
// which is the accepted inconsistency window of this layer.
func (g *Gateway) DeleteRoom(ctx context.Context, roomID string) (err error) {
	if g == nil {
		return fmt.Errorf("Gateway is nil")
	}

	cascaded := 0
	logger := g.loggerWith(ctx, "DeleteRoom", "room_id", roomID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to delete room", "error", err, "error_kind", errorKind(err))
			return
		}
		logger.With("cascaded_bookings", cascaded).InfoContext(ctx, "room deleted")
	}()

	g.mu.Lock()
	defer g.mu.Unlock()

	rooms, _, err := readJSON[[]Room](ctx, g.store, keyRooms)
	if err != nil {
		return
	}

	kept := make([]Room, 0, len(rooms))
	for _, room := range rooms {
		if room.ID == roomID {
			continue
		}
		kept = append(kept, room)
	}
	if err = writeJSON(ctx, g.store, keyRooms, kept); err != nil {
		return
	}

	bookings, _, err := readJSON[[]Booking](ctx, g.store, keyBookings)
	if err != nil {
		return
	}

	remaining := make([]Booking, 0, len(bookings))
	for _, booking := range bookings {
		if booking.RoomID == roomID {
			cascaded++
			continue
		}
		remaining = append(remaining, booking)
	}
	if err = writeJSON(ctx, g.store, keyBookings, remaining); err != nil {
		return
	}

	g.recordAudit(ctx, "", "delete_room", roomID, "ok", fmt.Sprintf("cascaded %d bookings", cascaded))
	return
}
