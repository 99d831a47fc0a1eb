package http

import (
	"time"

	"github.com/hirewheels/rental-backend/internal/inspection"
)

type SectionPayload struct {
	Name      string  `json:"name" binding:"required,oneof=exterior interior tyres engine"`
	Condition string  `json:"condition" binding:"required,oneof=good scuffed damaged"`
	Note      *string `json:"note"`
}

type InspectionResponse struct {
	ID          string           `json:"id"`
	BookingID   string           `json:"booking_id"`
	VehicleID   string           `json:"vehicle_id"`
	InspectorID string           `json:"inspector_id"`
	Phase       string           `json:"phase"`
	OdometerKm  int              `json:"odometer_km"`
	FuelPercent int              `json:"fuel_percent"`
	Sections    []SectionPayload `json:"sections"`
	PhotoIDs    []string         `json:"photo_ids"`
	Notes       *string          `json:"notes"`
	CreatedAt   time.Time        `json:"created_at"`
}

func NewInspectionResponse(ins *inspection.Inspection) InspectionResponse {
	sections := make([]SectionPayload, len(ins.Sections))
	for i, sec := range ins.Sections {
		sections[i] = SectionPayload{
			Name:      sec.Name,
			Condition: string(sec.Condition),
			Note:      sec.Note,
		}
	}

	photoIDs := ins.PhotoIDs
	if photoIDs == nil {
		photoIDs = []string{}
	}

	return InspectionResponse{
		ID:          ins.ID,
		BookingID:   ins.BookingID,
		VehicleID:   ins.VehicleID,
		InspectorID: ins.InspectorID,
		Phase:       string(ins.Phase),
		OdometerKm:  ins.OdometerKm,
		FuelPercent: ins.FuelPercent,
		Sections:    sections,
		PhotoIDs:    photoIDs,
		Notes:       ins.Notes,
		CreatedAt:   ins.CreatedAt,
	}
}

type CreateInspectionRequest struct {
	Phase       string           `json:"phase" binding:"required,oneof=pickup return"`
	OdometerKm  int              `json:"odometer_km" binding:"gte=0"`
	FuelPercent int              `json:"fuel_percent" binding:"gte=0,lte=100"`
	Sections    []SectionPayload `json:"sections" binding:"required,min=1,dive"`
	PhotoIDs    []string         `json:"photo_ids" binding:"omitempty,dive,uuid"`
	Notes       string           `json:"notes"`
}

// Validate performs custom validation for CreateInspectionRequest.
func (r *CreateInspectionRequest) Validate() error {
	return nil
}
