package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

type CreateMethodRequest struct {
	UserID    string
	Kind      string
	Label     string
	Masked    string
	IsDefault bool
}

type Service interface {
	AddMethod(ctx context.Context, req CreateMethodRequest) (*Method, error)
	ListMethods(ctx context.Context, userID string) ([]*Method, error)
	RemoveMethod(ctx context.Context, id, userID string) error
	SetDefault(ctx context.Context, id, userID string) error

	// Charge validates that the method belongs to the user, then
	// collects the amount through the gateway. Returns the gateway
	// charge ID.
	Charge(ctx context.Context, userID, methodID string, amount int64) (string, error)
}

type service struct {
	repo    Repository
	gateway Gateway
}

func NewService(repo Repository, gateway Gateway) Service {
	return &service{repo: repo, gateway: gateway}
}

func (s *service) AddMethod(ctx context.Context, req CreateMethodRequest) (*Method, error) {
	kind := Kind(req.Kind)
	if kind != KindCard && kind != KindUPI && kind != KindWallet {
		return nil, ErrInvalidKind
	}
	if strings.TrimSpace(req.Label) == "" {
		return nil, ErrLabelRequired
	}

	m := &Method{
		UserID:    req.UserID,
		Kind:      kind,
		Label:     strings.TrimSpace(req.Label),
		Masked:    strings.TrimSpace(req.Masked),
		IsDefault: req.IsDefault,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	if m.IsDefault {
		if err := s.repo.SetDefault(ctx, m.ID, m.UserID); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (s *service) ListMethods(ctx context.Context, userID string) ([]*Method, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) RemoveMethod(ctx context.Context, id, userID string) error {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if m.UserID != userID {
		return ErrPermissionDenied
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) SetDefault(ctx context.Context, id, userID string) error {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if m.UserID != userID {
		return ErrPermissionDenied
	}
	return s.repo.SetDefault(ctx, id, userID)
}

func (s *service) Charge(ctx context.Context, userID, methodID string, amount int64) (string, error) {
	m, err := s.repo.GetByID(ctx, methodID)
	if err != nil {
		if errors.Is(err, ErrMethodNotFound) {
			return "", ErrMethodNotFound
		}
		return "", err
	}
	if m.UserID != userID {
		return "", ErrMethodNotFound
	}

	chargeID, err := s.gateway.Charge(ctx, userID, methodID, amount)
	if err != nil {
		return "", fmt.Errorf("gateway charge failed: %w", err)
	}
	return chargeID, nil
}
