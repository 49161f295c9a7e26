package storage

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestStore(t *testing.T) *GormStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection keeps every query on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)
	store, err := NewGormStore(db)
	require.NoError(t, err)
	return store
}

func TestGormStore_GetAbsentKey(t *testing.T) {
	store := newTestStore(t)

	value, ok, err := store.Get(context.Background(), KeyCustomers)
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, value)
}

func TestGormStore_SetThenGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, KeySettings, []byte(`{"name":"test"}`)))

	value, ok, err := store.Get(ctx, KeySettings)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"name":"test"}`, string(value))
}

func TestGormStore_SetOverwrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, KeyInvoices, []byte(`[]`)))
	require.NoError(t, store.Set(ctx, KeyInvoices, []byte(`[{"id":"1"}]`)))

	value, ok, err := store.Get(ctx, KeyInvoices)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `[{"id":"1"}]`, string(value))
}
