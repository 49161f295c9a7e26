package pdf

import (
	"bytes"
	"context"
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

type PDFProvider struct{}

func New() Provider {
	return &PDFProvider{}
}

func (p *PDFProvider) GenerateInvoice(_ context.Context, data InvoiceData) (io.Reader, error) {
	size := pagesize.A5
	if data.Template == "A4" {
		size = pagesize.A4
	}

	cfg := config.NewBuilder().
		WithPageSize(size).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(12, data.TenantName, props.Text{
			Size:  16,
			Style: fontstyle.Bold,
			Align: align.Center,
		}),
	)
	m.AddRow(14,
		col.New(12).Add(
			text.New(data.TenantAddress, props.Text{Size: 8, Align: align.Center}),
			text.New(data.TenantPhone, props.Text{Size: 8, Align: align.Center, Top: 4}),
		),
	)

	m.AddRow(16,
		col.New(6).Add(
			text.New("Invoice "+data.InvoiceNumber, props.Text{Size: 9, Style: fontstyle.Bold}),
			text.New("Period: "+data.Period, props.Text{Size: 9, Top: 5}),
			text.New("Issued: "+data.IssueDate, props.Text{Size: 9, Top: 10}),
		),
		col.New(6).Add(
			text.New(data.CustomerName, props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
			text.New(data.CustomerAddress, props.Text{Size: 8, Top: 5, Align: align.Right}),
			text.New(data.CustomerPhone, props.Text{Size: 8, Top: 10, Align: align.Right}),
		),
	)

	// Meter block
	m.AddRow(8,
		text.NewCol(4, "Previous", props.Text{Size: 8, Style: fontstyle.Bold}),
		text.NewCol(4, "Current", props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Center}),
		text.NewCol(4, "Consumption (kWh)", props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right}),
	)
	m.AddRow(8,
		text.NewCol(4, data.MeterPrevious, props.Text{Size: 9}),
		text.NewCol(4, data.MeterCurrent, props.Text{Size: 9, Align: align.Center}),
		text.NewCol(4, data.Consumption, props.Text{Size: 9, Align: align.Right}),
	)

	m.AddRow(8,
		text.NewCol(9, "Description", props.Text{Size: 8, Style: fontstyle.Bold}),
		text.NewCol(3, "Amount", props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right}),
	)
	for _, line := range data.Lines {
		m.AddRow(7,
			text.NewCol(9, line.Description, props.Text{Size: 9}),
			text.NewCol(3, line.Amount, props.Text{Size: 9, Align: align.Right}),
		)
	}

	m.AddRow(10,
		col.New(6),
		text.NewCol(3, "Total (USD)", props.Text{Size: 10, Style: fontstyle.Bold}),
		text.NewCol(3, data.TotalUSD, props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
	)
	m.AddRow(10,
		col.New(6),
		text.NewCol(3, "Total (LBP)", props.Text{Size: 10, Style: fontstyle.Bold}),
		text.NewCol(3, data.TotalLBP, props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
	)
	m.AddRow(8,
		text.NewCol(12, "Exchange rate: "+data.ExchangeRate+" LBP/USD", props.Text{
			Size:  8,
			Align: align.Right,
		}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(doc.GetBytes()), nil
}
