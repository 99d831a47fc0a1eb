package http

import (
	"time"

	"github.com/hirewheels/rental-backend/internal/favorite"
)

type FavoriteResponse struct {
	ID          string    `json:"id"`
	VehicleID   string    `json:"vehicle_id"`
	VehicleName string    `json:"vehicle_name"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewFavoriteResponse(f *favorite.Favorite) FavoriteResponse {
	return FavoriteResponse{
		ID:          f.ID,
		VehicleID:   f.VehicleID,
		VehicleName: f.VehicleName,
		CreatedAt:   f.CreatedAt,
	}
}
