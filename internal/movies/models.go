package movies

import (
	"time"

	"github.com/google/uuid"
)

// Movie is catalog read-model data for the booking engine. Catalog CRUD has no
// public HTTP surface here; rows come from the seeder or an external admin tool.
type Movie struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title       string    `gorm:"unique;not null;size:255" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Genres      string    `gorm:"size:255" json:"genres"`
	ReleaseDate time.Time `json:"release_date"`
	Rating      float64   `gorm:"check:rating >= 0" json:"rating"`
	Director    string    `gorm:"size:255" json:"director"`
	PosterURL   string    `gorm:"size:500" json:"poster_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName sets the table name for Movie
func (Movie) TableName() string {
	return "movies"
}
