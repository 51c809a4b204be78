package halls

import (
	"time"

	"cinebook/internal/seats"

	"github.com/google/uuid"
)

// Hall is a screening room with a fixed rows x columns grid. Dimensions are
// immutable once seats exist; deleting a hall cascades to its seats, showtimes
// and their bookings.
type Hall struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name      string    `gorm:"unique;not null;size:255" json:"name"`
	Rows      int       `gorm:"column:total_rows;not null;check:total_rows >= 1" json:"rows"`
	Columns   int       `gorm:"not null;check:columns >= 1" json:"columns"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Seats []seats.Seat `json:"seats,omitempty" gorm:"foreignKey:HallID;constraint:OnDelete:CASCADE;"`
}

// TableName sets the table name for Hall
func (Hall) TableName() string {
	return "halls"
}
