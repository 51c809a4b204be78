package showtimes

import (
	"context"
	"sync"
	"testing"
	"time"

	"cinebook/internal/shared/apperrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockRepository struct {
	mu      sync.Mutex
	created []*Showtime
}

func (m *mockRepository) Create(ctx context.Context, showtime *Showtime) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if showtime.ID == uuid.Nil {
		showtime.ID = uuid.New()
	}
	m.created = append(m.created, showtime)
	return nil
}

func (m *mockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Showtime, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.created {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRepository) GetByIDWithRelations(ctx context.Context, id uuid.UUID) (*Showtime, error) {
	return m.GetByID(ctx, id)
}

func (m *mockRepository) List(ctx context.Context) ([]Showtime, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Showtime, 0, len(m.created))
	for _, s := range m.created {
		out = append(out, *s)
	}
	return out, nil
}

func validCreateRequest() CreateShowtimeRequest {
	return CreateShowtimeRequest{
		MovieID: uuid.NewString(),
		HallID:  uuid.NewString(),
		Date:    time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		Time:    "21:00",
		Price:   12.50,
	}
}

func TestCreateShowtime_AcceptsWallClockTimes(t *testing.T) {
	repo := &mockRepository{}
	svc := NewService(repo)

	for _, clock := range []string{"00:00", "09:30", "21:00", "23:59"} {
		req := validCreateRequest()
		req.Time = clock

		show, err := svc.CreateShowtime(context.Background(), req)
		require.NoError(t, err, "time %q should be accepted", clock)
		assert.Equal(t, clock, show.Time)
	}
}

func TestCreateShowtime_RejectsMalformedTimes(t *testing.T) {
	repo := &mockRepository{}
	svc := NewService(repo)

	for _, clock := range []string{"9:30", "24:00", "21:60", "2130", "late", ""} {
		req := validCreateRequest()
		req.Time = clock

		_, err := svc.CreateShowtime(context.Background(), req)
		require.Error(t, err, "time %q should be rejected", clock)
		assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err))
	}
	assert.Empty(t, repo.created)
}

func TestCreateShowtime_RejectsBadIDsAndPrice(t *testing.T) {
	repo := &mockRepository{}
	svc := NewService(repo)

	byMovie := validCreateRequest()
	byMovie.MovieID = "not-a-uuid"
	_, err := svc.CreateShowtime(context.Background(), byMovie)
	assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err))

	byPrice := validCreateRequest()
	byPrice.Price = 0
	_, err = svc.CreateShowtime(context.Background(), byPrice)
	assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err))
}
