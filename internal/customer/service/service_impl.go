package service

import (
	"context"
	"encoding/json"
	"math"
	"strings"
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/kahraba/internal/clock"
	"github.com/smallbiznis/kahraba/internal/customer/domain"
	settingsdomain "github.com/smallbiznis/kahraba/internal/settings/domain"
	"github.com/smallbiznis/kahraba/internal/storage"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Store    storage.Store
	Log      *zap.Logger
	GenID    *snowflake.Node
	Clock    clock.Clock
	Settings settingsdomain.Service
}

// Service owns the customer collection. Mutations are serialized to the
// store as one JSON document; a failed write leaves the in-memory collection
// untouched.
type Service struct {
	mu       sync.Mutex
	store    storage.Store
	log      *zap.Logger
	genID    *snowflake.Node
	clock    clock.Clock
	settings settingsdomain.Service

	customers []domain.Customer
}

func New(p Params) (domain.Service, error) {
	s := &Service{
		store:    p.Store,
		log:      p.Log.Named("customer.service"),
		genID:    p.GenID,
		clock:    p.Clock,
		settings: p.Settings,
	}
	raw, ok, err := p.Store.Get(context.Background(), storage.KeyCustomers)
	if err != nil {
		return nil, err
	}
	if ok {
		if err := json.Unmarshal(raw, &s.customers); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateCustomerRequest) (domain.Customer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Customer{}, domain.ErrInvalidName
	}

	status := req.Status
	if status == "" {
		status = domain.StatusActive
	}
	if status != domain.StatusActive && status != domain.StatusInactive {
		return domain.Customer{}, domain.ErrInvalidStatus
	}

	defaults := s.settings.Get(ctx)
	fee := valueOr(req.SubscriptionFee, defaults.DefaultSubscription)
	priceUsd := valueOr(req.PriceUsdPerKwh, defaults.DefaultPriceUsd)
	priceLbp := valueOr(req.PriceLbpPerKwh, defaults.DefaultPriceLbp)
	for _, amount := range []float64{fee, priceUsd, priceLbp} {
		if !isValidAmount(amount) {
			return domain.Customer{}, domain.ErrInvalidAmount
		}
	}

	now := s.clock.Now()
	customer := domain.Customer{
		ID:               s.genID.Generate().String(),
		Name:             name,
		Address:          strings.TrimSpace(req.Address),
		Phone:            strings.TrimSpace(req.Phone),
		SubscriptionFee:  fee,
		PriceUsdPerKwh:   priceUsd,
		PriceLbpPerKwh:   priceLbp,
		Status:           status,
		LastMeterReading: 0,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	candidate := append(s.snapshot(), customer)
	if err := s.persist(ctx, candidate); err != nil {
		return domain.Customer{}, err
	}
	s.customers = candidate

	return customer, nil
}

func (s *Service) Update(ctx context.Context, id string, patch domain.UpdateCustomerRequest) (domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return domain.Customer{}, domain.ErrNotFound
	}

	candidate := s.snapshot()
	customer := candidate[idx]

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return domain.Customer{}, domain.ErrInvalidName
		}
		customer.Name = name
	}
	if patch.Address != nil {
		customer.Address = strings.TrimSpace(*patch.Address)
	}
	if patch.Phone != nil {
		customer.Phone = strings.TrimSpace(*patch.Phone)
	}
	if patch.SubscriptionFee != nil {
		if !isValidAmount(*patch.SubscriptionFee) {
			return domain.Customer{}, domain.ErrInvalidAmount
		}
		customer.SubscriptionFee = *patch.SubscriptionFee
	}
	if patch.PriceUsdPerKwh != nil {
		if !isValidAmount(*patch.PriceUsdPerKwh) {
			return domain.Customer{}, domain.ErrInvalidAmount
		}
		customer.PriceUsdPerKwh = *patch.PriceUsdPerKwh
	}
	if patch.PriceLbpPerKwh != nil {
		if !isValidAmount(*patch.PriceLbpPerKwh) {
			return domain.Customer{}, domain.ErrInvalidAmount
		}
		customer.PriceLbpPerKwh = *patch.PriceLbpPerKwh
	}
	if patch.Status != nil {
		if *patch.Status != domain.StatusActive && *patch.Status != domain.StatusInactive {
			return domain.Customer{}, domain.ErrInvalidStatus
		}
		customer.Status = *patch.Status
	}

	customer.UpdatedAt = s.clock.Now()
	candidate[idx] = customer

	if err := s.persist(ctx, candidate); err != nil {
		return domain.Customer{}, err
	}
	s.customers = candidate

	return customer, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return domain.ErrNotFound
	}

	candidate := s.snapshot()
	candidate = append(candidate[:idx], candidate[idx+1:]...)

	if err := s.persist(ctx, candidate); err != nil {
		return err
	}
	s.customers = candidate

	return nil
}

func (s *Service) List(_ context.Context) []domain.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Service) GetByID(_ context.Context, id string) (domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return domain.Customer{}, domain.ErrNotFound
	}
	return s.customers[idx], nil
}

func (s *Service) Search(_ context.Context, req domain.SearchCustomerRequest) []domain.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()

	text := strings.ToLower(strings.TrimSpace(req.Text))
	matches := make([]domain.Customer, 0, len(s.customers))
	for _, customer := range s.customers {
		if text != "" &&
			!strings.Contains(strings.ToLower(customer.Name), text) &&
			!strings.Contains(strings.ToLower(customer.Phone), text) {
			continue
		}
		if req.Status != "" && customer.Status != req.Status {
			continue
		}
		matches = append(matches, customer)
	}
	return matches
}

func (s *Service) RecordLastMeterReading(ctx context.Context, id string, reading float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		// Advisory cache only; the invoice keeps its own readings.
		return nil
	}

	candidate := s.snapshot()
	candidate[idx].LastMeterReading = reading

	if err := s.persist(ctx, candidate); err != nil {
		return err
	}
	s.customers = candidate

	return nil
}

func (s *Service) indexOf(id string) int {
	for i, customer := range s.customers {
		if customer.ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) snapshot() []domain.Customer {
	out := make([]domain.Customer, len(s.customers))
	copy(out, s.customers)
	return out
}

func (s *Service) persist(ctx context.Context, customers []domain.Customer) error {
	raw, err := json.Marshal(customers)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, storage.KeyCustomers, raw); err != nil {
		s.log.Error("persist customers", zap.Error(err))
		return err
	}
	return nil
}

func valueOr(v *float64, def float64) float64 {
	if v != nil {
		return *v
	}
	return def
}

func isValidAmount(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
