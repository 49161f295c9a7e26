package service

import (
	"context"
	"encoding/json"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/kahraba/internal/clock"
	"github.com/smallbiznis/kahraba/internal/expense/domain"
	"github.com/smallbiznis/kahraba/internal/storage"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Store storage.Store
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
}

type Service struct {
	mu    sync.Mutex
	store storage.Store
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock

	expenses []domain.Expense
}

func New(p Params) (domain.Service, error) {
	s := &Service{
		store: p.Store,
		log:   p.Log.Named("expense.service"),
		genID: p.GenID,
		clock: p.Clock,
	}
	raw, ok, err := p.Store.Get(context.Background(), storage.KeyExpenses)
	if err != nil {
		return nil, err
	}
	if ok {
		if err := json.Unmarshal(raw, &s.expenses); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Service) Append(ctx context.Context, req domain.AppendExpenseRequest) (domain.Expense, error) {
	expenseType := strings.TrimSpace(req.Type)
	if expenseType == "" {
		return domain.Expense{}, domain.ErrInvalidType
	}
	if math.IsNaN(req.Amount) || math.IsInf(req.Amount, 0) || req.Amount <= 0 {
		return domain.Expense{}, domain.ErrInvalidAmount
	}
	date := strings.TrimSpace(req.Date)
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return domain.Expense{}, domain.ErrInvalidDate
	}

	expense := domain.Expense{
		ID:        s.genID.Generate().String(),
		Type:      expenseType,
		Amount:    req.Amount,
		Note:      strings.TrimSpace(req.Note),
		Date:      date,
		CreatedAt: s.clock.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	candidate := append(s.snapshot(), expense)
	raw, err := json.Marshal(candidate)
	if err != nil {
		return domain.Expense{}, err
	}
	if err := s.store.Set(ctx, storage.KeyExpenses, raw); err != nil {
		s.log.Error("persist expenses", zap.Error(err))
		return domain.Expense{}, err
	}
	s.expenses = candidate

	return expense, nil
}

func (s *Service) List(_ context.Context, req domain.ListExpenseRequest) []domain.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()

	matches := make([]domain.Expense, 0, len(s.expenses))
	for _, expense := range s.expenses {
		if req.Period != "" && expense.Period() != req.Period {
			continue
		}
		if req.Type != "" && expense.Type != req.Type {
			continue
		}
		matches = append(matches, expense)
	}
	return matches
}

func (s *Service) snapshot() []domain.Expense {
	out := make([]domain.Expense, len(s.expenses))
	copy(out, s.expenses)
	return out
}
