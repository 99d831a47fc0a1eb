package http

import (
	"time"

	"github.com/hirewheels/rental-backend/internal/issue"
)

type IssueResponse struct {
	ID          string    `json:"id"`
	BookingID   string    `json:"booking_id"`
	VehicleID   string    `json:"vehicle_id"`
	ReporterID  string    `json:"reporter_id"`
	Kind        string    `json:"kind"`
	Description string    `json:"description"`
	PhotoIDs    []string  `json:"photo_ids"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewIssueResponse(iss *issue.Issue) IssueResponse {
	photoIDs := iss.PhotoIDs
	if photoIDs == nil {
		photoIDs = []string{}
	}

	return IssueResponse{
		ID:          iss.ID,
		BookingID:   iss.BookingID,
		VehicleID:   iss.VehicleID,
		ReporterID:  iss.ReporterID,
		Kind:        string(iss.Kind),
		Description: iss.Description,
		PhotoIDs:    photoIDs,
		Status:      string(iss.Status),
		CreatedAt:   iss.CreatedAt,
		UpdatedAt:   iss.UpdatedAt,
	}
}

type CreateIssueRequest struct {
	BookingID   string   `json:"booking_id" binding:"required,uuid"`
	Kind        string   `json:"kind" binding:"required,oneof=breakdown damage cleanliness other"`
	Description string   `json:"description" binding:"required"`
	PhotoIDs    []string `json:"photo_ids" binding:"omitempty,dive,uuid"`
}

// Validate performs custom validation for CreateIssueRequest.
func (r *CreateIssueRequest) Validate() error {
	return nil
}

type UpdateIssueStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=open in_progress resolved"`
}

// Validate performs custom validation for UpdateIssueStatusRequest.
func (r *UpdateIssueStatusRequest) Validate() error {
	return nil
}
