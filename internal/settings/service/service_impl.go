package service

import (
	"context"
	"encoding/json"
	"math"
	"strings"
	"sync"

	"github.com/smallbiznis/kahraba/internal/settings/domain"
	"github.com/smallbiznis/kahraba/internal/storage"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Store storage.Store
	Log   *zap.Logger
}

type Service struct {
	mu    sync.Mutex
	store storage.Store
	log   *zap.Logger

	current domain.Settings
}

func New(p Params) (domain.Service, error) {
	s := &Service{
		store: p.Store,
		log:   p.Log.Named("settings.service"),
	}
	if err := s.load(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Service) load(ctx context.Context) error {
	raw, ok, err := s.store.Get(ctx, storage.KeySettings)
	if err != nil {
		return err
	}
	if !ok {
		s.current = domain.Default()
		return nil
	}
	settings := domain.Default()
	if err := json.Unmarshal(raw, &settings); err != nil {
		return err
	}
	s.current = settings
	return nil
}

func (s *Service) Get(_ context.Context) domain.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *Service) Save(ctx context.Context, settings domain.Settings) (domain.Settings, error) {
	settings.Name = strings.TrimSpace(settings.Name)
	settings.DefaultCurrency = strings.TrimSpace(settings.DefaultCurrency)
	if settings.DefaultCurrency == "" {
		settings.DefaultCurrency = "USD"
	}
	if settings.PrintTemplate == "" {
		settings.PrintTemplate = domain.PrintTemplateA5
	}

	if err := validate(settings); err != nil {
		return domain.Settings{}, err
	}

	raw, err := json.Marshal(settings)
	if err != nil {
		return domain.Settings{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Set(ctx, storage.KeySettings, raw); err != nil {
		s.log.Error("persist settings", zap.Error(err))
		return domain.Settings{}, err
	}
	s.current = settings

	return settings, nil
}

func validate(settings domain.Settings) error {
	if !isFinite(settings.ExchangeRate) || settings.ExchangeRate <= 0 {
		return domain.ErrInvalidExchangeRate
	}
	if !isFinite(settings.DefaultPriceUsd) || settings.DefaultPriceUsd < 0 {
		return domain.ErrInvalidPrice
	}
	if !isFinite(settings.DefaultPriceLbp) || settings.DefaultPriceLbp < 0 {
		return domain.ErrInvalidPrice
	}
	if !isFinite(settings.DefaultSubscription) || settings.DefaultSubscription < 0 {
		return domain.ErrInvalidSubscription
	}
	switch settings.PrintTemplate {
	case domain.PrintTemplateA4, domain.PrintTemplateA5:
	default:
		return domain.ErrInvalidPrintTemplate
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
