package backend

import (
	"context"

	"outgo/internal/core"
)

// RecordStore is the persistence contract for a user's expense collection and
// settings. Loading a document that does not exist yet is never an error: the
// store creates it (empty collection, default settings) and returns that.
// Saving always replaces the whole document.
type RecordStore interface {
	LoadExpenses(ctx context.Context, user string) ([]core.Expense, error)
	SaveExpenses(ctx context.Context, user string, entries []core.Expense) error
	LoadSettings(ctx context.Context, user string) (core.Settings, error)
	SaveSettings(ctx context.Context, user string, settings core.Settings) error
}

// CleanupFunc releases resources held by a store.
type CleanupFunc func() error

// Result contains the store instance and an optional cleanup function.
type Result struct {
	Store   RecordStore
	Cleanup CleanupFunc
}

// Factory creates record stores based on configuration.
type Factory interface {
	CreateStore(ctx context.Context, config Config) (*Result, error)
}

// Config holds configuration for store creation.
type Config struct {
	Type BackendType

	// JSON backend
	DataRoot string

	// SQLite backend
	SQLiteDBPath string
}

// BackendType selects the persistence implementation.
type BackendType string

const (
	JSONBackend   BackendType = "json"
	SQLiteBackend BackendType = "sqlite"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case JSONBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}
