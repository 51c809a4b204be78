package halls

import (
	"context"
	"errors"

	"cinebook/internal/seats"
	"cinebook/internal/shared/apperrors"

	"gorm.io/gorm"
)

// Service interface defines the contract for hall provisioning. Halls have no
// public CRUD surface; the seeder and tests are the only callers.
type Service interface {
	// CreateHall creates a hall and bulk-generates its rows x columns seat grid
	// in one transaction.
	CreateHall(ctx context.Context, name string, rows, columns int) (*Hall, error)
}

type service struct {
	repo Repository
}

// NewService creates a new hall service instance
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateHall(ctx context.Context, name string, rows, columns int) (*Hall, error) {
	if name == "" || rows < 1 || columns < 1 {
		return nil, apperrors.Validation("hall name and positive rows/columns are required")
	}

	existing, err := s.repo.GetByName(ctx, name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Internal("failed to check hall name", err)
	}
	if existing != nil {
		return nil, apperrors.Conflict("hall already exists")
	}

	hall := &Hall{
		Name:    name,
		Rows:    rows,
		Columns: columns,
	}

	err = s.repo.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, hall); err != nil {
			return err
		}
		layout := seats.BuildLayout(hall.ID, rows, columns)
		return tx.Create(&layout).Error
	})
	if err != nil {
		return nil, apperrors.Internal("failed to create hall layout", err)
	}

	return hall, nil
}
