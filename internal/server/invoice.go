package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	customerdomain "github.com/smallbiznis/kahraba/internal/customer/domain"
	invoicedomain "github.com/smallbiznis/kahraba/internal/invoice/domain"
	"github.com/smallbiznis/kahraba/internal/providers/pdf"
	"go.uber.org/zap"
)

type createInvoiceRequest struct {
	CustomerID             string   `json:"customerId"`
	Period                 string   `json:"period"`
	MeterPrevious          float64  `json:"meterPrevious"`
	MeterCurrent           float64  `json:"meterCurrent"`
	PricePerKwh            float64  `json:"pricePerKwh"`
	MonthlySubscription    float64  `json:"monthlySubscription"`
	AdditionalPayments     float64  `json:"additionalPayments"`
	AdditionalPaymentsNote string   `json:"additionalPaymentsNote"`
	Discount               float64  `json:"discount"`
	DiscountNote           string   `json:"discountNote"`
	ExchangeRate           *float64 `json:"exchangeRate"`
}

func (s *Server) CreateInvoice(c *gin.Context) {
	var req createInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.invoiceSvc.Create(c.Request.Context(), invoicedomain.CreateInvoiceRequest{
		CustomerID:             req.CustomerID,
		Period:                 req.Period,
		MeterPrevious:          req.MeterPrevious,
		MeterCurrent:           req.MeterCurrent,
		PricePerKwh:            req.PricePerKwh,
		MonthlySubscription:    req.MonthlySubscription,
		AdditionalPayments:     req.AdditionalPayments,
		AdditionalPaymentsNote: req.AdditionalPaymentsNote,
		Discount:               req.Discount,
		DiscountNote:           req.DiscountNote,
		ExchangeRate:           req.ExchangeRate,
		CreatedBy:              s.cfg.AdminUsername,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.metrics.InvoicesIssued.Inc()
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListInvoices(c *gin.Context) {
	var query struct {
		Period     string `form:"period"`
		CustomerID string `form:"customerId"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp := s.invoiceSvc.List(c.Request.Context(), invoicedomain.ListInvoiceRequest{
		Period:     strings.TrimSpace(query.Period),
		CustomerID: strings.TrimSpace(query.CustomerID),
	})
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetInvoiceByID(c *gin.Context) {
	resp, err := s.invoiceSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) PrintInvoice(c *gin.Context) {
	ctx := c.Request.Context()

	invoice, err := s.invoiceSvc.GetByID(ctx, strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	// The customer may have been deleted since; print what the invoice knows.
	var customer customerdomain.Customer
	if found, err := s.customerSvc.GetByID(ctx, invoice.CustomerID); err == nil {
		customer = found
	} else if !errors.Is(err, customerdomain.ErrNotFound) {
		AbortWithError(c, err)
		return
	}

	tenant := s.settingsSvc.Get(ctx)

	data := pdf.InvoiceData{
		TenantName:      tenant.Name,
		TenantAddress:   tenant.Address,
		TenantPhone:     tenant.Phone,
		CustomerName:    customer.Name,
		CustomerAddress: customer.Address,
		CustomerPhone:   customer.Phone,
		InvoiceNumber:   invoice.ID,
		Period:          invoice.Period,
		IssueDate:       invoice.IssuedAt.Format("2006-01-02"),
		MeterPrevious:   formatNumber(invoice.MeterPrevious),
		MeterCurrent:    formatNumber(invoice.MeterCurrent),
		Consumption:     formatNumber(invoice.Consumption),
		Lines:           invoiceLines(invoice),
		TotalUSD:        formatUSD(invoice.TotalAmountUsd),
		TotalLBP:        formatLBP(invoice.TotalAmountLbp),
		ExchangeRate:    formatNumber(invoice.ExchangeRate),
		Template:        tenant.PrintTemplate,
	}

	reader, err := s.pdfProvider.GenerateInvoice(ctx, data)
	if err != nil {
		s.log.Error("render invoice pdf", zap.String("invoice_id", invoice.ID), zap.Error(err))
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=invoice-%s.pdf", invoice.ID))
	c.Header("Content-Type", "application/pdf")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, reader)
}

func invoiceLines(invoice invoicedomain.Invoice) []pdf.InvoiceLine {
	lines := []pdf.InvoiceLine{
		{
			Description: fmt.Sprintf("Energy %s kWh x %s", formatNumber(invoice.Consumption), formatNumber(invoice.PricePerKwh)),
			Amount:      formatUSD(invoice.ConsumptionCost),
		},
		{
			Description: "Monthly subscription",
			Amount:      formatUSD(invoice.MonthlySubscription),
		},
	}
	if invoice.AdditionalPayments != 0 {
		description := "Additional payments"
		if invoice.AdditionalPaymentsNote != "" {
			description += " - " + invoice.AdditionalPaymentsNote
		}
		lines = append(lines, pdf.InvoiceLine{Description: description, Amount: formatUSD(invoice.AdditionalPayments)})
	}
	if invoice.Discount != 0 {
		description := "Discount"
		if invoice.DiscountNote != "" {
			description += " - " + invoice.DiscountNote
		}
		lines = append(lines, pdf.InvoiceLine{Description: description, Amount: "-" + formatUSD(invoice.Discount)})
	}
	return lines
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatUSD(v float64) string {
	return "$" + strconv.FormatFloat(v, 'f', 2, 64)
}

func formatLBP(v float64) string {
	return strconv.FormatFloat(v, 'f', 0, 64) + " LBP"
}
