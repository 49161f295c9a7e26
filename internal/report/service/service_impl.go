package service

import (
	"context"
	"strings"

	expensedomain "github.com/smallbiznis/kahraba/internal/expense/domain"
	invoicedomain "github.com/smallbiznis/kahraba/internal/invoice/domain"
	"github.com/smallbiznis/kahraba/internal/report/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log      *zap.Logger
	Invoices invoicedomain.Service
	Expenses expensedomain.Service
}

type Service struct {
	log      *zap.Logger
	invoices invoicedomain.Service
	expenses expensedomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		log:      p.Log.Named("report.service"),
		invoices: p.Invoices,
		expenses: p.Expenses,
	}
}

func (s *Service) Generate(ctx context.Context, period string) (domain.Report, error) {
	period = strings.TrimSpace(period)
	if !invoicedomain.ValidPeriod(period) {
		return domain.Report{}, domain.ErrInvalidPeriod
	}
	return domain.Aggregate(
		period,
		s.invoices.List(ctx, invoicedomain.ListInvoiceRequest{}),
		s.expenses.List(ctx, expensedomain.ListExpenseRequest{}),
	), nil
}

func (s *Service) Periods(ctx context.Context) []string {
	return domain.ListPeriods(
		s.invoices.List(ctx, invoicedomain.ListInvoiceRequest{}),
		s.expenses.List(ctx, expensedomain.ListExpenseRequest{}),
	)
}

func (s *Service) Years(ctx context.Context) []string {
	return domain.ListYears(s.invoices.List(ctx, invoicedomain.ListInvoiceRequest{}))
}
