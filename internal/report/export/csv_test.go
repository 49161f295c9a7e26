package export

import (
	"bytes"
	"testing"

	"github.com/smallbiznis/kahraba/internal/report/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV(t *testing.T) {
	report := domain.Report{
		Period:       "2024-03",
		Revenue:      36.5,
		ExpenseTotal: 22,
		Profit:       14.5,
		ExpensesByType: map[string]float64{
			"maintenance": 7,
			"fuel":        15,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, report))

	want := "Period,2024-03\n" +
		"Revenue (USD),36.50\n" +
		"Expenses (USD),22.00\n" +
		"Profit (USD),14.50\n" +
		"\n" +
		"Expense Type,Amount (USD)\n" +
		"fuel,15.00\n" +
		"maintenance,7.00\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteCSV_ZeroReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, domain.Report{Period: "2030-01"}))
	assert.Contains(t, buf.String(), "Profit (USD),0.00")
}
