// Package testfixtures provides deterministic clocks, identifier generators
// and canned domain records for gateway tests.
package testfixtures

import (
	"time"

	"github.com/jtiulquiix/Domus-Nostra-PSJB/internal/gateway"
)

var referenceTime = time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// RoomInput returns a valid room input with distinguishable defaults.
func RoomInput(name string) gateway.RoomInput {
	if name == "" {
		name = "Meeting Room"
	}
	return gateway.RoomInput{
		Name:     name,
		Capacity: 12,
		Features: []string{"Whiteboard"},
		ImageURL: "https://example.org/rooms/default.jpg",
	}
}

// BookingInput returns a booking input for the given room id, one hour long,
// starting at the reference time.
func BookingInput(roomID string) gateway.BookingInput {
	return gateway.BookingInput{
		RoomID:        roomID,
		RequesterID:   "user-member",
		RequesterName: "Parish Member",
		Purpose:       "Choir rehearsal",
		Start:         referenceTime.Add(24 * time.Hour),
		End:           referenceTime.Add(25 * time.Hour),
	}
}
