package domain

import (
	"context"
	"errors"
	"sort"

	expensedomain "github.com/smallbiznis/kahraba/internal/expense/domain"
	invoicedomain "github.com/smallbiznis/kahraba/internal/invoice/domain"
)

// Report is the aggregated revenue/expense/profit view of one period. A
// period with no activity is a valid report with zero figures.
type Report struct {
	Period         string             `json:"period"`
	Revenue        float64            `json:"revenue"`
	ExpenseTotal   float64            `json:"expenseTotal"`
	ExpensesByType map[string]float64 `json:"expensesByType"`
	Profit         float64            `json:"profit"`
}

type Service interface {
	Generate(ctx context.Context, period string) (Report, error)
	Periods(ctx context.Context) []string
	Years(ctx context.Context) []string
}

var ErrInvalidPeriod = errors.New("invalid_period")

// Aggregate builds the report for one period over the given collections.
// Invoices are matched on their period key, expenses on the month of their
// date. Orphaned customer references on invoices are irrelevant here;
// invoices count regardless of customer state.
func Aggregate(period string, invoices []invoicedomain.Invoice, expenses []expensedomain.Expense) Report {
	report := Report{
		Period:         period,
		ExpensesByType: make(map[string]float64),
	}
	for _, invoice := range invoices {
		if invoice.Period != period {
			continue
		}
		report.Revenue += invoice.TotalAmountUsd
	}
	for _, expense := range expenses {
		if expense.Period() != period {
			continue
		}
		report.ExpenseTotal += expense.Amount
		report.ExpensesByType[expense.Type] += expense.Amount
	}
	report.Profit = report.Revenue - report.ExpenseTotal
	return report
}

// ListPeriods returns the unique periods seen across invoices and expenses,
// newest first.
func ListPeriods(invoices []invoicedomain.Invoice, expenses []expensedomain.Expense) []string {
	seen := make(map[string]struct{})
	for _, invoice := range invoices {
		seen[invoice.Period] = struct{}{}
	}
	for _, expense := range expenses {
		seen[expense.Period()] = struct{}{}
	}
	return sortedDescending(seen)
}

// ListYears returns the unique years of the invoice periods, newest first.
func ListYears(invoices []invoicedomain.Invoice) []string {
	seen := make(map[string]struct{})
	for _, invoice := range invoices {
		seen[invoice.Year()] = struct{}{}
	}
	return sortedDescending(seen)
}

func sortedDescending(seen map[string]struct{}) []string {
	out := make([]string, 0, len(seen))
	for key := range seen {
		out = append(out, key)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(out)))
	return out
}
