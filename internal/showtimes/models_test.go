package showtimes

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartsAt_CombinesDateAndTime(t *testing.T) {
	show := Showtime{
		Date: time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC),
		Time: "21:15",
	}

	assert.Equal(t, time.Date(2026, 9, 30, 21, 15, 0, 0, time.UTC), show.StartsAt())
}

func TestStartsAt_MalformedTimeFallsBackToDate(t *testing.T) {
	date := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
	show := Showtime{Date: date, Time: "late"}

	assert.Equal(t, date, show.StartsAt())
}
