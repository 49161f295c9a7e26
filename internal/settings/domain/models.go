package domain

import (
	"context"
	"errors"
)

// Settings is the process-wide tenant record. JSON tags match the stored
// document format so existing data files keep loading unchanged.
type Settings struct {
	Name                string  `json:"name"`
	Address             string  `json:"address"`
	Phone               string  `json:"phone"`
	DefaultCurrency     string  `json:"defaultCurrency"`
	ExchangeRate        float64 `json:"exchangeRate"`
	DefaultPriceUsd     float64 `json:"defaultPriceUsd"`
	DefaultPriceLbp     float64 `json:"defaultPriceLbp"`
	DefaultSubscription float64 `json:"defaultSubscription"`
	PrintTemplate       string  `json:"printTemplate"`
}

const (
	PrintTemplateA4 = "A4"
	PrintTemplateA5 = "A5"
)

// Default returns the settings used until the tenant saves their own.
func Default() Settings {
	return Settings{
		Name:                "Electricity Subscription",
		DefaultCurrency:     "USD",
		ExchangeRate:        90000,
		DefaultPriceUsd:     0.45,
		DefaultPriceLbp:     40000,
		DefaultSubscription: 6,
		PrintTemplate:       PrintTemplateA5,
	}
}

type Service interface {
	Get(ctx context.Context) Settings
	// Save replaces the whole record.
	Save(ctx context.Context, settings Settings) (Settings, error)
}

var (
	ErrInvalidExchangeRate  = errors.New("invalid_exchange_rate")
	ErrInvalidPrice         = errors.New("invalid_price")
	ErrInvalidSubscription  = errors.New("invalid_subscription")
	ErrInvalidPrintTemplate = errors.New("invalid_print_template")
)
