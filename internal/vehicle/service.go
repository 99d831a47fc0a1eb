package vehicle

import (
	"context"
	"strings"
)

type CreateRequest struct {
	OwnerID            string
	Name               string
	Category           string
	Registration       string
	BasePricePerDay    int64
	HourlyRate         int64
	AdditionalKmPerDay int
	IsAutoApproval     bool
}

type UpdateRequest struct {
	Name               *string
	BasePricePerDay    *int64
	HourlyRate         *int64
	AdditionalKmPerDay *int
	IsAutoApproval     *bool
	IsActive           *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Vehicle, error)
	GetByID(ctx context.Context, id string) (*Vehicle, error)
	List(ctx context.Context, filter Filter) ([]*Vehicle, int, error)
	Update(ctx context.Context, id string, req UpdateRequest, updaterUserID string) (*Vehicle, error)
	Delete(ctx context.Context, id string, deleterUserID string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Vehicle, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}
	if strings.TrimSpace(req.Registration) == "" {
		return nil, ErrInvalidRegistration
	}
	if req.BasePricePerDay <= 0 || req.HourlyRate <= 0 {
		return nil, ErrInvalidRates
	}

	validCategory := false
	for _, c := range ValidCategories {
		if req.Category == c {
			validCategory = true
			break
		}
	}
	if !validCategory {
		return nil, ErrInvalidCategory
	}

	v := &Vehicle{
		OwnerID:            req.OwnerID,
		Name:               strings.TrimSpace(req.Name),
		Category:           req.Category,
		Registration:       strings.ToUpper(strings.TrimSpace(req.Registration)),
		BasePricePerDay:    req.BasePricePerDay,
		HourlyRate:         req.HourlyRate,
		AdditionalKmPerDay: req.AdditionalKmPerDay,
		IsAutoApproval:     req.IsAutoApproval,
		IsActive:           true,
	}

	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Vehicle, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Vehicle, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest, updaterUserID string) (*Vehicle, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v.OwnerID != updaterUserID {
		return nil, ErrPermissionDenied
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		v.Name = strings.TrimSpace(*req.Name)
	}
	if req.BasePricePerDay != nil {
		if *req.BasePricePerDay <= 0 {
			return nil, ErrInvalidRates
		}
		v.BasePricePerDay = *req.BasePricePerDay
	}
	if req.HourlyRate != nil {
		if *req.HourlyRate <= 0 {
			return nil, ErrInvalidRates
		}
		v.HourlyRate = *req.HourlyRate
	}
	if req.AdditionalKmPerDay != nil {
		v.AdditionalKmPerDay = *req.AdditionalKmPerDay
	}
	if req.IsAutoApproval != nil {
		v.IsAutoApproval = *req.IsAutoApproval
	}
	if req.IsActive != nil {
		v.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *service) Delete(ctx context.Context, id string, deleterUserID string) error {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if v.OwnerID != deleterUserID {
		return ErrPermissionDenied
	}
	return s.repo.Delete(ctx, id)
}
