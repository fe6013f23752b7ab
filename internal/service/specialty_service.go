package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/abdobody2040/PharmStockHub/internal/dto"
	"github.com/abdobody2040/PharmStockHub/internal/model"
	"github.com/abdobody2040/PharmStockHub/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SpecialtyService defines business operations for medical specialties.
type SpecialtyService interface {
	Create(ctx context.Context, req dto.CreateLookupRequest) (dto.LookupResponse, error)
	List(ctx context.Context) ([]dto.LookupResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateLookupRequest) (dto.LookupResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type specialtyService struct {
	repo repository.SpecialtyRepository
}

func NewSpecialtyService(repo repository.SpecialtyRepository) SpecialtyService {
	return &specialtyService{repo: repo}
}

func mapSpecialty(s model.Specialty) dto.LookupResponse {
	return dto.LookupResponse{
		ID:          s.ID.String(),
		Name:        s.Name,
		Description: s.Description,
		Active:      s.Active,
	}
}

func (s *specialtyService) Create(ctx context.Context, req dto.CreateLookupRequest) (dto.LookupResponse, error) {
	existing, err := s.repo.FindByName(ctx, req.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.LookupResponse{}, err
	}
	if existing != nil {
		return dto.LookupResponse{}, fmt.Errorf("%w: a specialty named %q already exists", ErrInvalidArgument, req.Name)
	}

	sp := &model.Specialty{
		Name:        req.Name,
		Description: req.Description,
		Active:      true,
	}
	if err := s.repo.Create(ctx, sp); err != nil {
		return dto.LookupResponse{}, err
	}
	return mapSpecialty(*sp), nil
}

func (s *specialtyService) List(ctx context.Context) ([]dto.LookupResponse, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.LookupResponse, 0, len(list))
	for _, sp := range list {
		result = append(result, mapSpecialty(sp))
	}
	return result, nil
}

func (s *specialtyService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateLookupRequest) (dto.LookupResponse, error) {
	sp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LookupResponse{}, fmt.Errorf("%w: specialty %s", ErrNotFound, id)
		}
		return dto.LookupResponse{}, err
	}

	if req.Name != nil {
		if *req.Name != sp.Name {
			existing, err := s.repo.FindByName(ctx, *req.Name)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.LookupResponse{}, err
			}
			if existing != nil && existing.ID != id {
				return dto.LookupResponse{}, fmt.Errorf("%w: a specialty named %q already exists", ErrInvalidArgument, *req.Name)
			}
		}
		sp.Name = *req.Name
	}
	if req.Description != nil {
		sp.Description = req.Description
	}
	if req.Active != nil {
		sp.Active = *req.Active
	}

	if err := s.repo.Update(ctx, sp); err != nil {
		return dto.LookupResponse{}, err
	}
	return mapSpecialty(*sp), nil
}

func (s *specialtyService) Deactivate(ctx context.Context, id uuid.UUID) error {
	_, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: specialty %s", ErrNotFound, id)
		}
		return err
	}
	return s.repo.Deactivate(ctx, id)
}
