package showtimes

import (
	"time"

	"cinebook/internal/halls"
	"cinebook/internal/movies"

	"github.com/google/uuid"
)

// Showtime is the unit seat availability and bookings are scoped to: the same
// physical seat is independently available across showtimes in the same hall.
type Showtime struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	MovieID   uuid.UUID `gorm:"type:uuid;index;not null" json:"movie_id"`
	HallID    uuid.UUID `gorm:"type:uuid;index;not null" json:"hall_id"`
	Date      time.Time `gorm:"not null" json:"date"`
	Time      string    `gorm:"not null;size:5" json:"time"` // "15:04"
	Price     float64   `gorm:"not null;check:price >= 0" json:"price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Movie *movies.Movie `json:"movie,omitempty" gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE;"`
	Hall  *halls.Hall   `json:"hall,omitempty" gorm:"foreignKey:HallID;constraint:OnDelete:CASCADE;"`
}

// TableName sets the table name for Showtime
func (Showtime) TableName() string {
	return "showtimes"
}

// StartsAt combines the showtime's date and wall-clock time. All policy-window
// math runs against this instant.
func (s *Showtime) StartsAt() time.Time {
	clock, err := time.Parse(TimeLayout, s.Time)
	if err != nil {
		return s.Date
	}
	return time.Date(
		s.Date.Year(), s.Date.Month(), s.Date.Day(),
		clock.Hour(), clock.Minute(), 0, 0,
		s.Date.Location(),
	)
}
