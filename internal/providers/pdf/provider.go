package pdf

import (
	"context"
	"io"
)

// InvoiceData is the print-ready view of an invoice: every figure already
// formatted by the caller.
type InvoiceData struct {
	TenantName    string
	TenantAddress string
	TenantPhone   string

	CustomerName    string
	CustomerAddress string
	CustomerPhone   string

	InvoiceNumber string
	Period        string
	IssueDate     string

	MeterPrevious string
	MeterCurrent  string
	Consumption   string

	Lines []InvoiceLine

	TotalUSD     string
	TotalLBP     string
	ExchangeRate string

	// Template selects the page size, "A4" or "A5".
	Template string
}

type InvoiceLine struct {
	Description string
	Amount      string
}

type Provider interface {
	GenerateInvoice(ctx context.Context, data InvoiceData) (io.Reader, error)
}
