package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/kahraba/internal/clock"
	"github.com/smallbiznis/kahraba/internal/expense/domain"
	"github.com/smallbiznis/kahraba/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) domain.Service {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	svc, err := New(Params{
		Store: storage.NewMemoryStore(),
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clock.NewFakeClock(time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)),
	})
	require.NoError(t, err)
	return svc
}

func TestAppend(t *testing.T) {
	svc := newTestService(t)

	expense, err := svc.Append(context.Background(), domain.AppendExpenseRequest{
		Type:   "fuel",
		Amount: 120.5,
		Note:   "diesel delivery",
		Date:   "2024-03-08",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, expense.ID)
	assert.Equal(t, "2024-03", expense.Period())
	assert.Len(t, svc.List(context.Background(), domain.ListExpenseRequest{}), 1)
}

func TestAppend_EmptyTypeRejected(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Append(ctx, domain.AppendExpenseRequest{Type: "", Amount: 5, Date: "2024-03-08"})
	assert.ErrorIs(t, err, domain.ErrInvalidType)
	assert.Empty(t, svc.List(ctx, domain.ListExpenseRequest{}))
}

func TestAppend_NonPositiveAmountRejected(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, amount := range []float64{0, -3} {
		_, err := svc.Append(ctx, domain.AppendExpenseRequest{Type: "fuel", Amount: amount, Date: "2024-03-08"})
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	}
	assert.Empty(t, svc.List(ctx, domain.ListExpenseRequest{}))
}

func TestAppend_BadDateRejected(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Append(context.Background(), domain.AppendExpenseRequest{Type: "fuel", Amount: 5, Date: "03/08/2024"})
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}

func TestList_Filters(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	seed := []domain.AppendExpenseRequest{
		{Type: "fuel", Amount: 100, Date: "2024-03-01"},
		{Type: "maintenance", Amount: 40, Date: "2024-03-15"},
		{Type: "fuel", Amount: 90, Date: "2024-04-02"},
	}
	for _, req := range seed {
		_, err := svc.Append(ctx, req)
		require.NoError(t, err)
	}

	assert.Len(t, svc.List(ctx, domain.ListExpenseRequest{}), 3)
	assert.Len(t, svc.List(ctx, domain.ListExpenseRequest{Period: "2024-03"}), 2)
	assert.Len(t, svc.List(ctx, domain.ListExpenseRequest{Type: "fuel"}), 2)
	assert.Len(t, svc.List(ctx, domain.ListExpenseRequest{Period: "2024-03", Type: "fuel"}), 1)
}
