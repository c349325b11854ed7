package gateway

import "time"

// Role identifies the privilege level of a user account.
type Role string

const (
	// RoleAdmin marks accounts that manage rooms and approve bookings.
	RoleAdmin Role = "ADMIN"
	// RoleUser is the default role assigned at registration.
	RoleUser Role = "USER"
)

// User represents a parish member account. Password is populated only on the
// at-rest record; every user value handed to callers has it stripped.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
}

// sanitized returns a copy of the user with the password field stripped.
func (u User) sanitized() User {
	u.Password = ""
	return u
}

// Room represents a bookable parish room.
type Room struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Capacity int      `json:"capacity"`
	Features []string `json:"features"`
	ImageURL string   `json:"imageUrl"`
}

// RoomInput captures caller provided room fields.
type RoomInput struct {
	Name     string
	Capacity int
	Features []string
	ImageURL string
}

// BookingStatus tracks the workflow state of a booking request.
type BookingStatus string

const (
	// StatusPending is the only creation status; every booking starts here.
	StatusPending BookingStatus = "PENDING"
	// StatusApproved marks a booking accepted by an administrator.
	StatusApproved BookingStatus = "APPROVED"
	// StatusRejected marks a booking declined by an administrator.
	StatusRejected BookingStatus = "REJECTED"
	// StatusCancelled marks a booking withdrawn by its requester.
	StatusCancelled BookingStatus = "CANCELLED"
)

// Booking represents a request to use a room for a period of time. RoomID is
// a soft reference: it is never validated on write and is kept consistent
// only by the cascade performed when a room is deleted.
type Booking struct {
	ID            string        `json:"id"`
	RoomID        string        `json:"roomId"`
	RequesterID   string        `json:"requesterId"`
	RequesterName string        `json:"requesterName"`
	Purpose       string        `json:"purpose"`
	Start         time.Time     `json:"start"`
	End           time.Time     `json:"end"`
	Status        BookingStatus `json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// BookingInput captures caller provided booking fields. Status and CreatedAt
// are always assigned by the gateway.
type BookingInput struct {
	RoomID        string
	RequesterID   string
	RequesterName string
	Purpose       string
	Start         time.Time
	End           time.Time
}

// AppConfig is the singleton application configuration record.
type AppConfig struct {
	AppName string `json:"appName"`
	AppLogo string `json:"appLogo"`
}

// RegisterResult is the tagged outcome of a registration attempt: exactly one
// of User and Message is set.
type RegisterResult struct {
	User    *User
	Message string
}

// Registered reports whether the attempt created an account.
func (r RegisterResult) Registered() bool {
	return r.User != nil
}
