package vehicles

import (
	"context"

	"github.com/google/uuid"

	"github.com/rideaway/vehicle-rental/internal/apperr"
	"github.com/rideaway/vehicle-rental/internal/domain"
	"github.com/rideaway/vehicle-rental/internal/repository"
)

type VehicleUseCase interface {
	List(ctx context.Context) ([]domain.Vehicle, error)
	GetByID(ctx context.Context, id string) (*domain.Vehicle, error)
	Create(ctx context.Context, input CreateVehicleInput) (*domain.Vehicle, error)
	Update(ctx context.Context, id string, input UpdateVehicleInput) (*domain.Vehicle, error)
	Delete(ctx context.Context, id string) error
}

type Cache interface {
	GetVehicles(ctx context.Context) ([]domain.Vehicle, error)
	SetVehicles(ctx context.Context, vehicles []domain.Vehicle) error
	InvalidateVehicles(ctx context.Context) error
}

type CreateVehicleInput struct {
	VehicleName        string             `json:"vehicle_name"`
	Type               domain.VehicleType `json:"type"`
	RegistrationNumber string             `json:"registration_number"`
	DailyRentPrice     float64            `json:"daily_rent_price"`
	Description        string             `json:"description"`
}

type UpdateVehicleInput struct {
	VehicleName        *string             `json:"vehicle_name"`
	Type               *domain.VehicleType `json:"type"`
	RegistrationNumber *string             `json:"registration_number"`
	DailyRentPrice     *float64            `json:"daily_rent_price"`
	Description        *string             `json:"description"`
}

type VehicleService struct {
	repo  repository.VehicleRepository
	cache Cache
}

func NewVehicleService(repo repository.VehicleRepository, cache Cache) *VehicleService {
	return &VehicleService{repo: repo, cache: cache}
}

func (s *VehicleService) List(ctx context.Context) ([]domain.Vehicle, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetVehicles(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	vehicles, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetVehicles(ctx, vehicles)
	}
	return vehicles, nil
}

func (s *VehicleService) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *VehicleService) Create(ctx context.Context, input CreateVehicleInput) (*domain.Vehicle, error) {
	if !input.Type.Valid() {
		return nil, apperr.New(apperr.Validation, "Type must be one of car, bike, van, SUV")
	}
	if input.DailyRentPrice <= 0 {
		return nil, apperr.New(apperr.Validation, "Daily rent price must be positive")
	}

	vehicle := &domain.Vehicle{
		ID:                 uuid.NewString(),
		VehicleName:        input.VehicleName,
		Type:               input.Type,
		RegistrationNumber: input.RegistrationNumber,
		DailyRentPrice:     input.DailyRentPrice,
		AvailabilityStatus: domain.VehicleAvailable,
		Description:        input.Description,
	}
	if err := s.repo.Create(ctx, vehicle); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return vehicle, nil
}

func (s *VehicleService) Update(ctx context.Context, id string, input UpdateVehicleInput) (*domain.Vehicle, error) {
	if input.Type != nil && !input.Type.Valid() {
		return nil, apperr.New(apperr.Validation, "Type must be one of car, bike, van, SUV")
	}
	if input.DailyRentPrice != nil && *input.DailyRentPrice <= 0 {
		return nil, apperr.New(apperr.Validation, "Daily rent price must be positive")
	}

	vehicle, err := s.repo.Update(ctx, id, repository.VehicleUpdate{
		VehicleName:        input.VehicleName,
		Type:               input.Type,
		RegistrationNumber: input.RegistrationNumber,
		DailyRentPrice:     input.DailyRentPrice,
		Description:        input.Description,
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return vehicle, nil
}

func (s *VehicleService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *VehicleService) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidateVehicles(ctx)
	}
}

var _ VehicleUseCase = (*VehicleService)(nil)
