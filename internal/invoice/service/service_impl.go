package service

import (
	"context"
	"encoding/json"
	"math"
	"strings"
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/kahraba/internal/billing"
	"github.com/smallbiznis/kahraba/internal/clock"
	customerdomain "github.com/smallbiznis/kahraba/internal/customer/domain"
	"github.com/smallbiznis/kahraba/internal/invoice/domain"
	settingsdomain "github.com/smallbiznis/kahraba/internal/settings/domain"
	"github.com/smallbiznis/kahraba/internal/storage"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Store     storage.Store
	Log       *zap.Logger
	GenID     *snowflake.Node
	Clock     clock.Clock
	Settings  settingsdomain.Service
	Customers customerdomain.Service
}

// Service owns the invoice collection. Invoices are immutable after Create;
// the only operations besides Create are reads.
type Service struct {
	mu        sync.Mutex
	store     storage.Store
	log       *zap.Logger
	genID     *snowflake.Node
	clock     clock.Clock
	settings  settingsdomain.Service
	customers customerdomain.Service

	invoices []domain.Invoice
}

func New(p Params) (domain.Service, error) {
	s := &Service{
		store:     p.Store,
		log:       p.Log.Named("invoice.service"),
		genID:     p.GenID,
		clock:     p.Clock,
		settings:  p.Settings,
		customers: p.Customers,
	}
	raw, ok, err := p.Store.Get(context.Background(), storage.KeyInvoices)
	if err != nil {
		return nil, err
	}
	if ok {
		if err := json.Unmarshal(raw, &s.invoices); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateInvoiceRequest) (domain.Invoice, error) {
	customerID := strings.TrimSpace(req.CustomerID)
	if customerID == "" {
		return domain.Invoice{}, domain.ErrInvalidCustomer
	}
	period := strings.TrimSpace(req.Period)
	if !domain.ValidPeriod(period) {
		return domain.Invoice{}, domain.ErrInvalidPeriod
	}
	for _, amount := range []float64{
		req.MeterPrevious,
		req.MeterCurrent,
		req.PricePerKwh,
		req.MonthlySubscription,
		req.AdditionalPayments,
		req.Discount,
	} {
		if !isFinite(amount) {
			return domain.Invoice{}, domain.ErrInvalidAmount
		}
	}

	rate := s.settings.Get(ctx).ExchangeRate
	if req.ExchangeRate != nil {
		rate = *req.ExchangeRate
	}
	if !isFinite(rate) || rate <= 0 {
		return domain.Invoice{}, domain.ErrInvalidExchangeRate
	}

	consumption := billing.Consumption(req.MeterPrevious, req.MeterCurrent)
	totals := billing.Compute(billing.ComputeInput{
		Consumption:         consumption,
		PricePerKwh:         req.PricePerKwh,
		MonthlySubscription: req.MonthlySubscription,
		AdditionalPayments:  req.AdditionalPayments,
		Discount:            req.Discount,
		ExchangeRate:        rate,
	})

	invoice := domain.Invoice{
		ID:                     s.genID.Generate().String(),
		CustomerID:             customerID,
		Period:                 period,
		MeterPrevious:          req.MeterPrevious,
		MeterCurrent:           req.MeterCurrent,
		Consumption:            consumption,
		PricePerKwh:            req.PricePerKwh,
		MonthlySubscription:    req.MonthlySubscription,
		AdditionalPayments:     req.AdditionalPayments,
		AdditionalPaymentsNote: strings.TrimSpace(req.AdditionalPaymentsNote),
		Discount:               req.Discount,
		DiscountNote:           strings.TrimSpace(req.DiscountNote),
		ExchangeRate:           rate,
		ConsumptionCost:        totals.EnergyCost,
		TotalAmountUsd:         totals.TotalUSD,
		TotalAmountLbp:         totals.TotalLBP,
		IssuedAt:               s.clock.Now(),
		CreatedBy:              strings.TrimSpace(req.CreatedBy),
	}

	s.mu.Lock()
	candidate := append(s.snapshot(), invoice)
	raw, err := json.Marshal(candidate)
	if err != nil {
		s.mu.Unlock()
		return domain.Invoice{}, err
	}
	if err := s.store.Set(ctx, storage.KeyInvoices, raw); err != nil {
		s.mu.Unlock()
		s.log.Error("persist invoices", zap.Error(err))
		return domain.Invoice{}, err
	}
	s.invoices = candidate
	s.mu.Unlock()

	// Advisory cache on the customer record; the invoice is already durable,
	// so a failure here is logged and swallowed.
	if err := s.customers.RecordLastMeterReading(ctx, customerID, req.MeterCurrent); err != nil {
		s.log.Warn("refresh last meter reading",
			zap.String("customer_id", customerID),
			zap.Error(err))
	}

	return invoice, nil
}

func (s *Service) List(_ context.Context, req domain.ListInvoiceRequest) []domain.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()

	matches := make([]domain.Invoice, 0, len(s.invoices))
	for _, invoice := range s.invoices {
		if req.Period != "" && invoice.Period != req.Period {
			continue
		}
		if req.CustomerID != "" && invoice.CustomerID != req.CustomerID {
			continue
		}
		matches = append(matches, invoice)
	}
	return matches
}

func (s *Service) GetByID(_ context.Context, id string) (domain.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, invoice := range s.invoices {
		if invoice.ID == id {
			return invoice, nil
		}
	}
	return domain.Invoice{}, domain.ErrNotFound
}

func (s *Service) snapshot() []domain.Invoice {
	out := make([]domain.Invoice, len(s.invoices))
	copy(out, s.invoices)
	return out
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
