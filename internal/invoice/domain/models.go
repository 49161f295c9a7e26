package domain

import (
	"context"
	"errors"
	"regexp"
	"time"
)

// Invoice is an issued monthly bill. Invoices are append-only facts: created
// once, never edited or deleted. CustomerID is a weak reference; the customer
// may have been deleted since.
type Invoice struct {
	ID                     string    `json:"id"`
	CustomerID             string    `json:"customerId"`
	Period                 string    `json:"period"`
	MeterPrevious          float64   `json:"meterPrevious"`
	MeterCurrent           float64   `json:"meterCurrent"`
	Consumption            float64   `json:"consumption"`
	PricePerKwh            float64   `json:"pricePerKwh"`
	MonthlySubscription    float64   `json:"monthlySubscription"`
	AdditionalPayments     float64   `json:"additionalPayments"`
	AdditionalPaymentsNote string    `json:"additionalPaymentsNote,omitempty"`
	Discount               float64   `json:"discount"`
	DiscountNote           string    `json:"discountNote,omitempty"`
	ExchangeRate           float64   `json:"exchangeRate"`
	ConsumptionCost        float64   `json:"consumptionCost"`
	TotalAmountUsd         float64   `json:"totalAmountUsd"`
	TotalAmountLbp         float64   `json:"totalAmountLbp"`
	IssuedAt               time.Time `json:"issuedAt"`
	CreatedBy              string    `json:"createdBy"`
}

// Year returns the year component of the billing period.
func (inv Invoice) Year() string {
	if len(inv.Period) < 4 {
		return inv.Period
	}
	return inv.Period[:4]
}

var periodPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// ValidPeriod reports whether p is a calendar month key, "YYYY-MM".
func ValidPeriod(p string) bool {
	return periodPattern.MatchString(p)
}

// CreateInvoiceRequest carries the figures for a new invoice. A nil
// ExchangeRate falls back to the tenant default from settings; an explicit
// value must be positive.
type CreateInvoiceRequest struct {
	CustomerID             string
	Period                 string
	MeterPrevious          float64
	MeterCurrent           float64
	PricePerKwh            float64
	MonthlySubscription    float64
	AdditionalPayments     float64
	AdditionalPaymentsNote string
	Discount               float64
	DiscountNote           string
	ExchangeRate           *float64
	CreatedBy              string
}

type ListInvoiceRequest struct {
	Period     string
	CustomerID string
}

type Service interface {
	Create(ctx context.Context, req CreateInvoiceRequest) (Invoice, error)
	List(ctx context.Context, req ListInvoiceRequest) []Invoice
	GetByID(ctx context.Context, id string) (Invoice, error)
}

var (
	ErrInvalidCustomer     = errors.New("invalid_customer")
	ErrInvalidPeriod       = errors.New("invalid_period")
	ErrInvalidAmount       = errors.New("invalid_amount")
	ErrInvalidExchangeRate = errors.New("invalid_exchange_rate")
	ErrNotFound            = errors.New("not_found")
)
