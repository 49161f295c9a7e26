// Package export renders reports for download. CSV is written with the
// standard library encoder; there is no third-party CSV dependency in the
// stack.
package export

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"

	"github.com/smallbiznis/kahraba/internal/report/domain"
)

// WriteCSV writes the report summary followed by the per-type expense
// breakdown, sorted by type for a stable output.
func WriteCSV(w io.Writer, report domain.Report) error {
	cw := csv.NewWriter(w)

	rows := [][]string{
		{"Period", report.Period},
		{"Revenue (USD)", formatAmount(report.Revenue)},
		{"Expenses (USD)", formatAmount(report.ExpenseTotal)},
		{"Profit (USD)", formatAmount(report.Profit)},
		{""},
		{"Expense Type", "Amount (USD)"},
	}

	types := make([]string, 0, len(report.ExpensesByType))
	for expenseType := range report.ExpensesByType {
		types = append(types, expenseType)
	}
	sort.Strings(types)
	for _, expenseType := range types {
		rows = append(rows, []string{expenseType, formatAmount(report.ExpensesByType[expenseType])})
	}

	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
