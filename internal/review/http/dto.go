package http

import (
	"time"

	"github.com/hirewheels/rental-backend/internal/review"
)

type ReviewResponse struct {
	ID        string    `json:"id"`
	BookingID string    `json:"booking_id"`
	VehicleID string    `json:"vehicle_id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewReviewResponse(rv *review.Review) ReviewResponse {
	return ReviewResponse{
		ID:        rv.ID,
		BookingID: rv.BookingID,
		VehicleID: rv.VehicleID,
		UserID:    rv.UserID,
		UserName:  rv.UserName,
		Rating:    rv.Rating,
		Comment:   rv.Comment,
		CreatedAt: rv.CreatedAt,
		UpdatedAt: rv.UpdatedAt,
	}
}

type CreateReviewRequest struct {
	BookingID string `json:"booking_id" binding:"required,uuid"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

// Validate performs custom validation for CreateReviewRequest.
func (r *CreateReviewRequest) Validate() error {
	return nil
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Comment *string `json:"comment"`
}

// Validate performs custom validation for UpdateReviewRequest.
func (r *UpdateReviewRequest) Validate() error {
	return nil
}
