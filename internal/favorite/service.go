package favorite

import (
	"context"
	"errors"

	"github.com/hirewheels/rental-backend/internal/vehicle"
)

type Service interface {
	Add(ctx context.Context, userID, vehicleID string) (*Favorite, error)
	Remove(ctx context.Context, userID, vehicleID string) error
	List(ctx context.Context, userID string) ([]*Favorite, error)
}

type service struct {
	repo           Repository
	vehicleService vehicle.Service
}

func NewService(repo Repository, vehicleService vehicle.Service) Service {
	return &service{repo: repo, vehicleService: vehicleService}
}

func (s *service) Add(ctx context.Context, userID, vehicleID string) (*Favorite, error) {
	if _, err := s.vehicleService.GetByID(ctx, vehicleID); err != nil {
		if errors.Is(err, vehicle.ErrNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	return s.repo.Upsert(ctx, userID, vehicleID)
}

func (s *service) Remove(ctx context.Context, userID, vehicleID string) error {
	return s.repo.Delete(ctx, userID, vehicleID)
}

func (s *service) List(ctx context.Context, userID string) ([]*Favorite, error) {
	return s.repo.ListByUser(ctx, userID)
}
