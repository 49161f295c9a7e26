package storage

import "context"

// Collection keys. Each key holds one JSON document: the settings record or the
// full array of customers, invoices or expenses.
const (
	KeySettings  = "settings"
	KeyCustomers = "customers"
	KeyInvoices  = "invoices"
	KeyExpenses  = "expenses"
)

// Store is the persistence contract: an opaque key-value store holding
// serialized JSON documents. The domain services never interpret the medium.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}
