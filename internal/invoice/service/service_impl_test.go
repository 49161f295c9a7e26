package service

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/kahraba/internal/clock"
	customerdomain "github.com/smallbiznis/kahraba/internal/customer/domain"
	"github.com/smallbiznis/kahraba/internal/invoice/domain"
	settingsdomain "github.com/smallbiznis/kahraba/internal/settings/domain"
	"github.com/smallbiznis/kahraba/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixedSettings struct {
	rate float64
}

func (f fixedSettings) Get(context.Context) settingsdomain.Settings {
	return settingsdomain.Settings{ExchangeRate: f.rate}
}

func (f fixedSettings) Save(_ context.Context, s settingsdomain.Settings) (settingsdomain.Settings, error) {
	return s, nil
}

type recordingCustomers struct {
	customerdomain.Service
	readings map[string]float64
}

func (r *recordingCustomers) RecordLastMeterReading(_ context.Context, id string, reading float64) error {
	if r.readings == nil {
		r.readings = make(map[string]float64)
	}
	r.readings[id] = reading
	return nil
}

type failingStore struct {
	storage.Store
	failSet bool
}

func (s *failingStore) Set(ctx context.Context, key string, value []byte) error {
	if s.failSet {
		return errors.New("disk full")
	}
	return s.Store.Set(ctx, key, value)
}

func newTestService(t *testing.T, store storage.Store) (domain.Service, *recordingCustomers) {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	customers := &recordingCustomers{}
	svc, err := New(Params{
		Store:     store,
		Log:       zap.NewNop(),
		GenID:     node,
		Clock:     clock.NewFakeClock(time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)),
		Settings:  fixedSettings{rate: 90000},
		Customers: customers,
	})
	require.NoError(t, err)
	return svc, customers
}

func validRequest() domain.CreateInvoiceRequest {
	return domain.CreateInvoiceRequest{
		CustomerID:          "cust-1",
		Period:              "2024-03",
		MeterPrevious:       100,
		MeterCurrent:        150,
		PricePerKwh:         0.1,
		MonthlySubscription: 6,
		CreatedBy:           "admin",
	}
}

func TestCreate_ComputesTotals(t *testing.T) {
	svc, customers := newTestService(t, storage.NewMemoryStore())

	invoice, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, 50.0, invoice.Consumption)
	assert.Equal(t, 5.0, invoice.ConsumptionCost)
	assert.Equal(t, 11.0, invoice.TotalAmountUsd)
	assert.Equal(t, 990000.0, invoice.TotalAmountLbp)
	assert.Equal(t, 90000.0, invoice.ExchangeRate)

	// Advisory meter cache refreshed on the customer.
	assert.Equal(t, 150.0, customers.readings["cust-1"])
}

func TestCreate_NegativeConsumptionAccepted(t *testing.T) {
	svc, _ := newTestService(t, storage.NewMemoryStore())

	req := validRequest()
	req.MeterPrevious = 200
	invoice, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, -50.0, invoice.Consumption)
	assert.Equal(t, -5.0, invoice.ConsumptionCost)
}

func TestCreate_DiscountBeyondSubtotalAccepted(t *testing.T) {
	svc, _ := newTestService(t, storage.NewMemoryStore())

	req := validRequest()
	req.Discount = 20
	invoice, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, -9.0, invoice.TotalAmountUsd)
}

func TestCreate_Validation(t *testing.T) {
	svc, _ := newTestService(t, storage.NewMemoryStore())
	ctx := context.Background()

	req := validRequest()
	req.CustomerID = " "
	_, err := svc.Create(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidCustomer)

	req = validRequest()
	req.Period = "2024-3"
	_, err = svc.Create(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)

	req = validRequest()
	req.Period = "2024-13"
	_, err = svc.Create(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)

	req = validRequest()
	req.PricePerKwh = math.NaN()
	_, err = svc.Create(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	bad := -5.0
	req = validRequest()
	req.ExchangeRate = &bad
	_, err = svc.Create(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidExchangeRate)

	assert.Empty(t, svc.List(ctx, domain.ListInvoiceRequest{}))
}

func TestCreate_ExplicitExchangeRateOverridesSettings(t *testing.T) {
	svc, _ := newTestService(t, storage.NewMemoryStore())

	rate := 100000.0
	req := validRequest()
	req.ExchangeRate = &rate
	invoice, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 100000.0, invoice.ExchangeRate)
	assert.Equal(t, 1100000.0, invoice.TotalAmountLbp)
}

func TestList_Filters(t *testing.T) {
	svc, _ := newTestService(t, storage.NewMemoryStore())
	ctx := context.Background()

	first := validRequest()
	_, err := svc.Create(ctx, first)
	require.NoError(t, err)

	second := validRequest()
	second.CustomerID = "cust-2"
	second.Period = "2024-04"
	_, err = svc.Create(ctx, second)
	require.NoError(t, err)

	assert.Len(t, svc.List(ctx, domain.ListInvoiceRequest{}), 2)
	assert.Len(t, svc.List(ctx, domain.ListInvoiceRequest{Period: "2024-03"}), 1)
	assert.Len(t, svc.List(ctx, domain.ListInvoiceRequest{CustomerID: "cust-2"}), 1)
	assert.Empty(t, svc.List(ctx, domain.ListInvoiceRequest{Period: "2024-03", CustomerID: "cust-2"}))
}

func TestGetByID(t *testing.T) {
	svc, _ := newTestService(t, storage.NewMemoryStore())
	ctx := context.Background()

	created, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = svc.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_PersistFailureRollsBack(t *testing.T) {
	store := &failingStore{Store: storage.NewMemoryStore()}
	svc, customers := newTestService(t, store)
	ctx := context.Background()

	store.failSet = true
	_, err := svc.Create(ctx, validRequest())
	assert.Error(t, err)
	assert.Empty(t, svc.List(ctx, domain.ListInvoiceRequest{}))
	assert.Empty(t, customers.readings)
}
