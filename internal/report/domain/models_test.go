package domain

import (
	"testing"

	expensedomain "github.com/smallbiznis/kahraba/internal/expense/domain"
	invoicedomain "github.com/smallbiznis/kahraba/internal/invoice/domain"
	"github.com/stretchr/testify/assert"
)

func TestAggregate(t *testing.T) {
	invoices := []invoicedomain.Invoice{
		{Period: "2024-03", TotalAmountUsd: 11},
		{Period: "2024-03", TotalAmountUsd: 25.5},
		{Period: "2024-02", TotalAmountUsd: 100},
	}
	expenses := []expensedomain.Expense{
		{Type: "fuel", Amount: 10, Date: "2024-03-01"},
		{Type: "fuel", Amount: 5, Date: "2024-03-20"},
		{Type: "maintenance", Amount: 7, Date: "2024-03-15"},
		{Type: "fuel", Amount: 99, Date: "2024-04-01"},
	}

	report := Aggregate("2024-03", invoices, expenses)

	assert.Equal(t, "2024-03", report.Period)
	assert.Equal(t, 36.5, report.Revenue)
	assert.Equal(t, 22.0, report.ExpenseTotal)
	assert.Equal(t, 14.5, report.Profit)
	assert.Equal(t, map[string]float64{"fuel": 15, "maintenance": 7}, report.ExpensesByType)
}

func TestAggregate_EmptyPeriodIsZeroReport(t *testing.T) {
	report := Aggregate("2030-01", nil, nil)

	assert.Zero(t, report.Revenue)
	assert.Zero(t, report.ExpenseTotal)
	assert.Zero(t, report.Profit)
	assert.Empty(t, report.ExpensesByType)
}

func TestAggregate_OrphanedCustomerInvoicesCount(t *testing.T) {
	// The customer behind these invoices was deleted; the totals still count.
	invoices := []invoicedomain.Invoice{
		{Period: "2024-03", CustomerID: "deleted-customer", TotalAmountUsd: 40},
		{Period: "2024-03", CustomerID: "deleted-customer", TotalAmountUsd: 2},
	}

	report := Aggregate("2024-03", invoices, nil)
	assert.Equal(t, 42.0, report.Revenue)
}

func TestAggregate_NegativeTotalsIncluded(t *testing.T) {
	invoices := []invoicedomain.Invoice{
		{Period: "2024-03", TotalAmountUsd: 11},
		{Period: "2024-03", TotalAmountUsd: -9},
	}

	report := Aggregate("2024-03", invoices, nil)
	assert.Equal(t, 2.0, report.Revenue)
}

func TestListPeriods_UniqueDescending(t *testing.T) {
	invoices := []invoicedomain.Invoice{
		{Period: "2024-03"},
		{Period: "2024-01"},
		{Period: "2024-03"},
	}

	assert.Equal(t, []string{"2024-03", "2024-01"}, ListPeriods(invoices, nil))
}

func TestListPeriods_UnionWithExpenses(t *testing.T) {
	invoices := []invoicedomain.Invoice{{Period: "2024-03"}}
	expenses := []expensedomain.Expense{
		{Date: "2024-05-02"},
		{Date: "2024-03-09"},
	}

	assert.Equal(t, []string{"2024-05", "2024-03"}, ListPeriods(invoices, expenses))
}

func TestListYears_UniqueDescending(t *testing.T) {
	invoices := []invoicedomain.Invoice{
		{Period: "2023-12"},
		{Period: "2024-01"},
		{Period: "2023-01"},
	}

	assert.Equal(t, []string{"2024", "2023"}, ListYears(invoices))
}
