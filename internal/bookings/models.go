package bookings

import (
	"time"

	"cinebook/internal/seats"
	"cinebook/internal/showtimes"
	"cinebook/internal/users"

	"github.com/google/uuid"
)

// Booking defines a confirmed reservation of a seat set for one showtime.
// Reservation state lives here and in booking_seats only; seats themselves
// stay showtime-agnostic.
type Booking struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	ShowtimeID uuid.UUID `gorm:"type:uuid;index;not null" json:"showtime_id"`
	IsBooked   bool      `gorm:"not null;default:true" json:"is_booked"`
	IsUsed     bool      `gorm:"not null;default:false" json:"is_used"`
	TicketCode string    `gorm:"unique;not null" json:"ticket_code"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relationships
	User     *users.User         `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Showtime *showtimes.Showtime `json:"showtime,omitempty" gorm:"foreignKey:ShowtimeID"`
	Seats    []seats.Seat        `json:"seats,omitempty" gorm:"many2many:booking_seats;"`
}

// TableName sets the table name for Booking
func (Booking) TableName() string {
	return "bookings"
}

// SeatIDs returns the ids of the booking's seat set
func (b *Booking) SeatIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(b.Seats))
	for _, seat := range b.Seats {
		ids = append(ids, seat.ID)
	}
	return ids
}
