package http

import (
	"time"

	"github.com/hirewheels/rental-backend/internal/payment"
)

type MethodResponse struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Label     string    `json:"label"`
	Masked    string    `json:"masked"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
}

func NewMethodResponse(m *payment.Method) MethodResponse {
	return MethodResponse{
		ID:        m.ID,
		Kind:      string(m.Kind),
		Label:     m.Label,
		Masked:    m.Masked,
		IsDefault: m.IsDefault,
		CreatedAt: m.CreatedAt,
	}
}

type CreateMethodRequest struct {
	Kind      string `json:"kind" binding:"required,oneof=card upi wallet"`
	Label     string `json:"label" binding:"required"`
	Masked    string `json:"masked" binding:"required"`
	IsDefault bool   `json:"is_default"`
}

// Validate performs custom validation for CreateMethodRequest.
func (r *CreateMethodRequest) Validate() error {
	return nil
}
