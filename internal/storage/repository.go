// Package storage implements the SQLite-backed record store. It offers the
// same whole-document semantics as the JSON store: SaveExpenses replaces the
// user's complete collection inside one transaction and loads return entries
// in insertion order.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"outgo/internal/core"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db     *sql.DB
	dbPath string
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && !strings.HasPrefix(dbPath, ":memory:") {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db, dbPath: dbPath}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// LoadExpenses implements backend.RecordStore. A user with no rows simply has
// an empty collection; nothing needs to be created up front.
func (r *SQLiteRepository) LoadExpenses(ctx context.Context, user string) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, date, amount, category, description, payment_method, tags
		 FROM expenses WHERE user = ? ORDER BY seq`, user)
	if err != nil {
		return nil, &core.IOError{Op: "load expenses", Path: r.dbPath, Err: err}
	}
	defer rows.Close()

	entries := []core.Expense{}
	for rows.Next() {
		var (
			e       core.Expense
			rawTags string
		)
		if err := rows.Scan(&e.ID, &e.Date, &e.Amount, &e.Category, &e.Description, &e.PaymentMethod, &rawTags); err != nil {
			return nil, &core.IOError{Op: "load expenses", Path: r.dbPath, Err: err}
		}
		if err := json.Unmarshal([]byte(rawTags), &e.Tags); err != nil {
			return nil, &core.IOError{Op: "load expenses", Path: r.dbPath, Err: err}
		}
		if e.Tags == nil {
			e.Tags = []string{}
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, &core.IOError{Op: "load expenses", Path: r.dbPath, Err: err}
	}
	return entries, nil
}

// SaveExpenses implements backend.RecordStore by replacing the user's whole
// collection in one transaction, mirroring the atomic-overwrite contract of
// the file store.
func (r *SQLiteRepository) SaveExpenses(ctx context.Context, user string, entries []core.Expense) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return &core.IOError{Op: "save expenses", Path: r.dbPath, Err: err}
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM expenses WHERE user = ?`, user); err != nil {
		return &core.IOError{Op: "save expenses", Path: r.dbPath, Err: err}
	}

	for _, e := range entries {
		tags := e.Tags
		if tags == nil {
			tags = []string{}
		}
		rawTags, err := json.Marshal(tags)
		if err != nil {
			return &core.IOError{Op: "save expenses", Path: r.dbPath, Err: err}
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO expenses (user, id, date, amount, category, description, payment_method, tags)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			user, e.ID, e.Date, e.Amount, e.Category, e.Description, e.PaymentMethod, string(rawTags)); err != nil {
			return &core.IOError{Op: "save expenses", Path: r.dbPath, Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &core.IOError{Op: "save expenses", Path: r.dbPath, Err: err}
	}
	return nil
}

// LoadSettings implements backend.RecordStore, inserting defaults for users
// without a settings row.
func (r *SQLiteRepository) LoadSettings(ctx context.Context, user string) (core.Settings, error) {
	var (
		settings      core.Settings
		rawCategories string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT currency, categories FROM settings WHERE user = ?`, user).
		Scan(&settings.Currency, &rawCategories)
	if err == sql.ErrNoRows {
		defaults := core.DefaultSettings()
		if err := r.SaveSettings(ctx, user, defaults); err != nil {
			return core.Settings{}, err
		}
		return defaults, nil
	}
	if err != nil {
		return core.Settings{}, &core.IOError{Op: "load settings", Path: r.dbPath, Err: err}
	}
	if err := json.Unmarshal([]byte(rawCategories), &settings.Categories); err != nil {
		return core.Settings{}, &core.IOError{Op: "load settings", Path: r.dbPath, Err: err}
	}
	return settings, nil
}

// SaveSettings implements backend.RecordStore.
func (r *SQLiteRepository) SaveSettings(ctx context.Context, user string, settings core.Settings) error {
	categories := settings.Categories
	if categories == nil {
		categories = []string{}
	}
	rawCategories, err := json.Marshal(categories)
	if err != nil {
		return &core.IOError{Op: "save settings", Path: r.dbPath, Err: err}
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO settings (user, currency, categories) VALUES (?, ?, ?)
		 ON CONFLICT (user) DO UPDATE SET currency = excluded.currency, categories = excluded.categories`,
		user, settings.Currency, string(rawCategories))
	if err != nil {
		return &core.IOError{Op: "save settings", Path: r.dbPath, Err: err}
	}
	return nil
}
