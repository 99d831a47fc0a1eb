package payment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Gateway is the external payment collector. Implementations charge a
// stored method and return a gateway charge ID. Failures are
// retryable collaborator errors; the caller decides when to retry.
type Gateway interface {
	Charge(ctx context.Context, userID, methodID string, amount int64) (string, error)
}

// SandboxGateway approves every charge and mints a local charge ID.
// Used in development and tests; a real acquirer adapter implements
// Gateway the same way.
type SandboxGateway struct{}

func NewSandboxGateway() *SandboxGateway {
	return &SandboxGateway{}
}

func (g *SandboxGateway) Charge(ctx context.Context, userID, methodID string, amount int64) (string, error) {
	if amount <= 0 {
		return "", fmt.Errorf("charge amount must be positive, got %d", amount)
	}
	return "sandbox_" + uuid.NewString(), nil
}
