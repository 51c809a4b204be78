package seats

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Seat is one physical seat in a hall's static layout. Whether it is reserved
// is relative to a showtime and always derived per query (see Service); the
// Booked column is a legacy static marker and never consulted by the resolver.
type Seat struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	HallID    uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:idx_hall_row_col" json:"hall_id"`
	Row       int       `gorm:"column:seat_row;not null;check:seat_row >= 1;uniqueIndex:idx_hall_row_col" json:"row"`
	Column    int       `gorm:"column:col;not null;check:col >= 1;uniqueIndex:idx_hall_row_col" json:"column"`
	Label     string    `gorm:"not null;size:8" json:"label"`
	Booked    bool      `gorm:"default:false" json:"booked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName sets the table name for Seat
func (Seat) TableName() string {
	return "seats"
}

// SeatLabel derives the display label for a (row, column) position: row letter
// plus column number, e.g. (1,1) -> "A1", (2,3) -> "B3".
func SeatLabel(row, column int) string {
	return fmt.Sprintf("%c%d", rune('A'+row-1), column)
}

// BuildLayout generates the rows x columns seat grid for a hall.
func BuildLayout(hallID uuid.UUID, rows, columns int) []Seat {
	layout := make([]Seat, 0, rows*columns)
	for row := 1; row <= rows; row++ {
		for column := 1; column <= columns; column++ {
			layout = append(layout, Seat{
				HallID: hallID,
				Row:    row,
				Column: column,
				Label:  SeatLabel(row, column),
			})
		}
	}
	return layout
}
