package payment

import (
	"errors"
	"time"
)

var (
	ErrMethodNotFound   = errors.New("payment method not found")
	ErrInvalidKind      = errors.New("invalid payment method kind")
	ErrLabelRequired    = errors.New("label is required")
	ErrPermissionDenied = errors.New("permission denied")
	ErrChargeDeclined   = errors.New("charge was declined")
)

// Kind is the payment instrument type.
type Kind string

const (
	KindCard   Kind = "card"
	KindUPI    Kind = "upi"
	KindWallet Kind = "wallet"
)

// Method is a stored payment method. Only a masked identifier is kept;
// the real instrument lives with the gateway.
type Method struct {
	ID        string
	UserID    string
	Kind      Kind
	Label     string // e.g. "Visa ending 4242"
	Masked    string // e.g. "**** 4242" or "user@upi"
	IsDefault bool
	CreatedAt time.Time
}
