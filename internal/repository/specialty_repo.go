package repository

import (
	"context"

	"github.com/abdobody2040/PharmStockHub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SpecialtyRepository defines CRUD operations for Specialty.
type SpecialtyRepository interface {
	Create(ctx context.Context, s *model.Specialty) error
	List(ctx context.Context) ([]model.Specialty, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Specialty, error)
	FindByName(ctx context.Context, name string) (*model.Specialty, error)
	Update(ctx context.Context, s *model.Specialty) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type specialtyRepository struct{ db *gorm.DB }

func NewSpecialtyRepository(db *gorm.DB) SpecialtyRepository {
	return &specialtyRepository{db: db}
}

func (r *specialtyRepository) Create(ctx context.Context, s *model.Specialty) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *specialtyRepository) List(ctx context.Context) ([]model.Specialty, error) {
	var list []model.Specialty
	err := r.db.WithContext(ctx).Order("name asc").Find(&list).Error
	return list, err
}

func (r *specialtyRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Specialty, error) {
	var s model.Specialty
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *specialtyRepository) FindByName(ctx context.Context, name string) (*model.Specialty, error) {
	var s model.Specialty
	err := r.db.WithContext(ctx).Where("lower(name) = lower(?)", name).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *specialtyRepository) Update(ctx context.Context, s *model.Specialty) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *specialtyRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Specialty{}).Where("id = ?", id).Update("active", false).Error
}
