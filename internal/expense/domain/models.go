package domain

import (
	"context"
	"errors"
	"time"
)

// Expense is one append-only ledger entry. Amount is USD. Date is the day the
// cost was incurred, "YYYY-MM-DD"; its month is the aggregation period.
type Expense struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Amount    float64   `json:"amount"`
	Note      string    `json:"note,omitempty"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
}

// Period returns the "YYYY-MM" aggregation key of the entry.
func (e Expense) Period() string {
	if len(e.Date) < 7 {
		return e.Date
	}
	return e.Date[:7]
}

type AppendExpenseRequest struct {
	Type   string
	Amount float64
	Note   string
	Date   string
}

type ListExpenseRequest struct {
	Period string
	Type   string
}

// Service is the append-only expense ledger. No update or delete exists.
type Service interface {
	Append(ctx context.Context, req AppendExpenseRequest) (Expense, error)
	List(ctx context.Context, req ListExpenseRequest) []Expense
}

var (
	ErrInvalidType   = errors.New("invalid_type")
	ErrInvalidAmount = errors.New("invalid_amount")
	ErrInvalidDate   = errors.New("invalid_date")
)
