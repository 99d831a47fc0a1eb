package address

import (
	"context"
	"strings"
)

type CreateRequest struct {
	UserID    string
	Label     string
	Line1     string
	Line2     string
	City      string
	Pincode   string
	Longitude float64
	Latitude  float64
	IsDefault bool
}

type UpdateRequest struct {
	Label     *string
	Line1     *string
	Line2     *string
	City      *string
	Pincode   *string
	Longitude *float64
	Latitude  *float64
	IsDefault *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Address, error)
	List(ctx context.Context, userID string) ([]*Address, error)
	Update(ctx context.Context, id string, req UpdateRequest, updaterUserID string) (*Address, error)
	Delete(ctx context.Context, id string, deleterUserID string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Address, error) {
	if strings.TrimSpace(req.Label) == "" {
		return nil, ErrLabelRequired
	}
	if strings.TrimSpace(req.Line1) == "" {
		return nil, ErrLine1Required
	}
	if strings.TrimSpace(req.City) == "" {
		return nil, ErrCityRequired
	}

	a := &Address{
		UserID:    req.UserID,
		Label:     strings.TrimSpace(req.Label),
		Line1:     strings.TrimSpace(req.Line1),
		Line2:     optional(req.Line2),
		City:      strings.TrimSpace(req.City),
		Pincode:   strings.TrimSpace(req.Pincode),
		Longitude: req.Longitude,
		Latitude:  req.Latitude,
		IsDefault: req.IsDefault,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	if a.IsDefault {
		if err := s.repo.SetDefault(ctx, a.ID, a.UserID); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func (s *service) List(ctx context.Context, userID string) ([]*Address, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest, updaterUserID string) (*Address, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.UserID != updaterUserID {
		return nil, ErrPermissionDenied
	}

	if req.Label != nil {
		if strings.TrimSpace(*req.Label) == "" {
			return nil, ErrLabelRequired
		}
		a.Label = strings.TrimSpace(*req.Label)
	}
	if req.Line1 != nil {
		if strings.TrimSpace(*req.Line1) == "" {
			return nil, ErrLine1Required
		}
		a.Line1 = strings.TrimSpace(*req.Line1)
	}
	if req.Line2 != nil {
		a.Line2 = optional(*req.Line2)
	}
	if req.City != nil {
		if strings.TrimSpace(*req.City) == "" {
			return nil, ErrCityRequired
		}
		a.City = strings.TrimSpace(*req.City)
	}
	if req.Pincode != nil {
		a.Pincode = strings.TrimSpace(*req.Pincode)
	}
	if req.Longitude != nil {
		a.Longitude = *req.Longitude
	}
	if req.Latitude != nil {
		a.Latitude = *req.Latitude
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}

	if req.IsDefault != nil && *req.IsDefault && !a.IsDefault {
		if err := s.repo.SetDefault(ctx, a.ID, a.UserID); err != nil {
			return nil, err
		}
		a.IsDefault = true
	}

	return a, nil
}

func (s *service) Delete(ctx context.Context, id string, deleterUserID string) error {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if a.UserID != deleterUserID {
		return ErrPermissionDenied
	}
	return s.repo.Delete(ctx, id)
}

func optional(s string) *string {
	t := strings.TrimSpace(s)
	if t == "" {
		return nil
	}
	return &t
}
