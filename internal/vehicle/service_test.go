package vehicle

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	ownerID    = "22222222-2222-2222-2222-222222222222"
	strangerID = "55555555-5555-5555-5555-555555555555"
)

type fakeRepo struct {
	vehicles map[string]*Vehicle
	nextID   int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{vehicles: map[string]*Vehicle{}}
}

func (r *fakeRepo) Create(ctx context.Context, v *Vehicle) error {
	r.nextID++
	v.ID = fmt.Sprintf("vehicle-%d", r.nextID)
	cp := *v
	r.vehicles[v.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*Vehicle, error) {
	v, ok := r.vehicles[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *fakeRepo) List(ctx context.Context, filter Filter) ([]*Vehicle, int, error) {
	var result []*Vehicle
	for _, v := range r.vehicles {
		if filter.OwnerID != "" && v.OwnerID != filter.OwnerID {
			continue
		}
		if filter.ActiveOnly && !v.IsActive {
			continue
		}
		cp := *v
		result = append(result, &cp)
	}
	return result, len(result), nil
}

func (r *fakeRepo) Update(ctx context.Context, v *Vehicle) error {
	if _, ok := r.vehicles[v.ID]; !ok {
		return ErrNotFound
	}
	cp := *v
	r.vehicles[v.ID] = &cp
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.vehicles[id]; !ok {
		return ErrNotFound
	}
	delete(r.vehicles, id)
	return nil
}

func validCreate() CreateRequest {
	return CreateRequest{
		OwnerID:            ownerID,
		Name:               "Honda City",
		Category:           "sedan",
		Registration:       "ka01ab1234",
		BasePricePerDay:    2500,
		HourlyRate:         125,
		AdditionalKmPerDay: 150,
	}
}

func TestCreateVehicle(t *testing.T) {
	svc := NewService(newFakeRepo())

	v, err := svc.Create(context.Background(), validCreate())
	require.NoError(t, err)

	assert.True(t, v.IsActive)
	// Registration is stored uppercased.
	assert.Equal(t, "KA01AB1234", v.Registration)
}

func TestCreateVehicleValidation(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(*CreateRequest)
		wantErr error
	}{
		{"blank name", func(r *CreateRequest) { r.Name = "  " }, ErrEmptyName},
		{"blank registration", func(r *CreateRequest) { r.Registration = "" }, ErrInvalidRegistration},
		{"zero day rate", func(r *CreateRequest) { r.BasePricePerDay = 0 }, ErrInvalidRates},
		{"negative hourly rate", func(r *CreateRequest) { r.HourlyRate = -1 }, ErrInvalidRates},
		{"unknown category", func(r *CreateRequest) { r.Category = "truck" }, ErrInvalidCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreate()
			tt.mutate(&req)
			_, err := svc.Create(ctx, req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUpdateVehicleOwnerOnly(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	v, err := svc.Create(ctx, validCreate())
	require.NoError(t, err)

	newName := "Honda City ZX"
	_, err = svc.Update(ctx, v.ID, UpdateRequest{Name: &newName}, strangerID)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	updated, err := svc.Update(ctx, v.ID, UpdateRequest{Name: &newName}, ownerID)
	require.NoError(t, err)
	assert.Equal(t, newName, updated.Name)
}

func TestDeleteVehicleOwnerOnly(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	v, err := svc.Create(ctx, validCreate())
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, v.ID, strangerID), ErrPermissionDenied)
	require.NoError(t, svc.Delete(ctx, v.ID, ownerID))

	_, err = svc.GetByID(ctx, v.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
