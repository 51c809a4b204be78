package notifications

import (
	"time"

	"github.com/google/uuid"
)

// EventType identifies a booking lifecycle event
type EventType string

const (
	EventBookingConfirmed EventType = "booking.confirmed"
	EventBookingCancelled EventType = "booking.cancelled"
	EventTicketUsed       EventType = "ticket.used"
)

// BookingEvent is the payload published for every booking state change.
// Downstream consumers (email, analytics) subscribe to these; the booking
// engine itself never blocks on delivery.
type BookingEvent struct {
	ID         uuid.UUID   `json:"id"`
	Type       EventType   `json:"type"`
	BookingID  uuid.UUID   `json:"booking_id"`
	UserID     uuid.UUID   `json:"user_id"`
	ShowtimeID uuid.UUID   `json:"showtime_id"`
	SeatIDs    []uuid.UUID `json:"seat_ids,omitempty"`
	TicketCode string      `json:"ticket_code,omitempty"`
	OccurredAt time.Time   `json:"occurred_at"`
}

// NewBookingEvent builds an event envelope with identity and timestamp set
func NewBookingEvent(eventType EventType, bookingID, userID, showtimeID uuid.UUID) *BookingEvent {
	return &BookingEvent{
		ID:         uuid.New(),
		Type:       eventType,
		BookingID:  bookingID,
		UserID:     userID,
		ShowtimeID: showtimeID,
		OccurredAt: time.Now().UTC(),
	}
}
