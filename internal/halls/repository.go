package halls

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, hall *Hall) error
	GetByID(ctx context.Context, id uuid.UUID) (*Hall, error)
	GetByName(ctx context.Context, name string) (*Hall, error)
	WithTx(tx *gorm.DB) Repository
	DB() *gorm.DB
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, hall *Hall) error {
	return r.db.WithContext(ctx).Create(hall).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Hall, error) {
	var hall Hall
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&hall).Error
	if err != nil {
		return nil, err
	}
	return &hall, nil
}

func (r *repository) GetByName(ctx context.Context, name string) (*Hall, error) {
	var hall Hall
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&hall).Error
	if err != nil {
		return nil, err
	}
	return &hall, nil
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) DB() *gorm.DB {
	return r.db
}
