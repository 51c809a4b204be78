package showtimes

import (
	"context"
	"errors"

	"cinebook/internal/shared/apperrors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service interface defines the contract for showtime reads and scheduling
type Service interface {
	CreateShowtime(ctx context.Context, req CreateShowtimeRequest) (*Showtime, error)
	GetShowtime(ctx context.Context, id uuid.UUID) (*Showtime, error)
	ListShowtimes(ctx context.Context) ([]Showtime, error)

	// HallIDForShowtime satisfies the seat resolver's ShowtimeReader interface
	HallIDForShowtime(ctx context.Context, showtimeID uuid.UUID) (uuid.UUID, error)
}

type service struct {
	repo     Repository
	validate *validator.Validate
}

// NewService creates a new showtime service instance
func NewService(repo Repository) Service {
	v := validator.New()
	v.RegisterValidation("hhmm", HHMM)
	return &service{repo: repo, validate: v}
}

// CreateShowtime validates and schedules a showtime
func (s *service) CreateShowtime(ctx context.Context, req CreateShowtimeRequest) (*Showtime, error) {
	if err := s.validate.Struct(&req); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	movieID, _ := uuid.Parse(req.MovieID)
	hallID, _ := uuid.Parse(req.HallID)

	showtime := &Showtime{
		MovieID: movieID,
		HallID:  hallID,
		Date:    req.Date,
		Time:    req.Time,
		Price:   req.Price,
	}
	if err := s.repo.Create(ctx, showtime); err != nil {
		return nil, apperrors.Internal("failed to create showtime", err)
	}
	return showtime, nil
}

// GetShowtime retrieves a showtime populated with its movie and hall
func (s *service) GetShowtime(ctx context.Context, id uuid.UUID) (*Showtime, error) {
	showtime, err := s.repo.GetByIDWithRelations(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("showtime not found")
		}
		return nil, apperrors.Internal("failed to fetch showtime", err)
	}
	return showtime, nil
}

// ListShowtimes retrieves all showtimes populated with movie and hall
func (s *service) ListShowtimes(ctx context.Context) ([]Showtime, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to list showtimes", err)
	}
	return list, nil
}

func (s *service) HallIDForShowtime(ctx context.Context, showtimeID uuid.UUID) (uuid.UUID, error) {
	showtime, err := s.repo.GetByID(ctx, showtimeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, apperrors.NotFound("showtime not found")
		}
		return uuid.Nil, apperrors.Internal("failed to fetch showtime", err)
	}
	return showtime.HallID, nil
}
