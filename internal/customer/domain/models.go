package domain

import (
	"context"
	"errors"
	"time"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Customer is a metered subscription account. JSON tags match the stored
// document format.
type Customer struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Address          string    `json:"address,omitempty"`
	Phone            string    `json:"phone,omitempty"`
	SubscriptionFee  float64   `json:"subscriptionFee"`
	PriceUsdPerKwh   float64   `json:"priceUsdPerKwh"`
	PriceLbpPerKwh   float64   `json:"priceLbpPerKwh"`
	Status           Status    `json:"status"`
	LastMeterReading float64   `json:"lastMeterReading"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// CreateCustomerRequest creates an account. Nil pricing fields fall back to
// the tenant defaults from settings.
type CreateCustomerRequest struct {
	Name            string
	Address         string
	Phone           string
	SubscriptionFee *float64
	PriceUsdPerKwh  *float64
	PriceLbpPerKwh  *float64
	Status          Status
}

// UpdateCustomerRequest is a merge patch; nil fields keep their value.
type UpdateCustomerRequest struct {
	Name            *string
	Address         *string
	Phone           *string
	SubscriptionFee *float64
	PriceUsdPerKwh  *float64
	PriceLbpPerKwh  *float64
	Status          *Status
}

type SearchCustomerRequest struct {
	Text   string
	Status Status
}

type Service interface {
	Create(ctx context.Context, req CreateCustomerRequest) (Customer, error)
	Update(ctx context.Context, id string, patch UpdateCustomerRequest) (Customer, error)
	// Delete removes the account. Invoices referencing it are left untouched;
	// they are historical facts independent of current customer state.
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) []Customer
	GetByID(ctx context.Context, id string) (Customer, error)
	Search(ctx context.Context, req SearchCustomerRequest) []Customer
	// RecordLastMeterReading refreshes the advisory meter cache after an
	// invoice is issued. A missing customer is a no-op, not an error.
	RecordLastMeterReading(ctx context.Context, id string, reading float64) error
}

var (
	ErrInvalidName   = errors.New("invalid_name")
	ErrInvalidStatus = errors.New("invalid_status")
	ErrInvalidAmount = errors.New("invalid_amount")
	ErrNotFound      = errors.New("not_found")
)
