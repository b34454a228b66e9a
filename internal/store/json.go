// Package store implements the file-backed record store. Each user owns a
// directory under the data root holding two JSON documents: expenses.json
// (the expense collection) and settings.json (preferences).
package store

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"outgo/internal/core"
)

const (
	expensesFilename = "expenses.json"
	settingsFilename = "settings.json"
)

type expensesDoc struct {
	Expenses []core.Expense `json:"expenses"`
}

// JSONStore reads and writes per-user JSON documents. It keeps no state
// beyond the data root: every load hits the disk, so callers always see the
// latest persisted collection.
type JSONStore struct {
	dataRoot string
}

func NewJSONStore(dataRoot string) *JSONStore {
	return &JSONStore{dataRoot: dataRoot}
}

// ExpensesPath returns the location of a user's expense document.
func (s *JSONStore) ExpensesPath(user string) string {
	return filepath.Join(s.dataRoot, user, expensesFilename)
}

// SettingsPath returns the location of a user's settings document.
func (s *JSONStore) SettingsPath(user string) string {
	return filepath.Join(s.dataRoot, user, settingsFilename)
}

// LoadExpenses reads the user's expense collection. A missing document is not
// an error: it is created empty and an empty collection is returned.
func (s *JSONStore) LoadExpenses(_ context.Context, user string) ([]core.Expense, error) {
	path := s.ExpensesPath(user)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := s.writeExpenses(path, nil); err != nil {
			return nil, err
		}
		return []core.Expense{}, nil
	}
	if err != nil {
		return nil, &core.IOError{Op: "load expenses", Path: path, Err: err}
	}

	var doc expensesDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &core.IOError{Op: "load expenses", Path: path, Err: err}
	}
	if doc.Expenses == nil {
		return []core.Expense{}, nil
	}
	return doc.Expenses, nil
}

// SaveExpenses replaces the user's expense document with the given entries in
// a single atomic write. There is no partial or append mode: either the new
// document lands in full or the previous one is untouched.
func (s *JSONStore) SaveExpenses(_ context.Context, user string, entries []core.Expense) error {
	return s.writeExpenses(s.ExpensesPath(user), entries)
}

func (s *JSONStore) writeExpenses(path string, entries []core.Expense) error {
	if entries == nil {
		entries = []core.Expense{}
	}
	data, err := json.MarshalIndent(expensesDoc{Expenses: entries}, "", "  ")
	if err != nil {
		return &core.IOError{Op: "save expenses", Path: path, Err: err}
	}
	if err := WriteFileAtomic(path, data); err != nil {
		return &core.IOError{Op: "save expenses", Path: path, Err: err}
	}
	return nil
}

// LoadSettings reads the user's settings, creating the document with defaults
// when absent.
func (s *JSONStore) LoadSettings(ctx context.Context, user string) (core.Settings, error) {
	path := s.SettingsPath(user)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		defaults := core.DefaultSettings()
		if err := s.SaveSettings(ctx, user, defaults); err != nil {
			return core.Settings{}, err
		}
		return defaults, nil
	}
	if err != nil {
		return core.Settings{}, &core.IOError{Op: "load settings", Path: path, Err: err}
	}

	var settings core.Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return core.Settings{}, &core.IOError{Op: "load settings", Path: path, Err: err}
	}
	return settings, nil
}

// SaveSettings replaces the user's settings document atomically.
func (s *JSONStore) SaveSettings(_ context.Context, user string, settings core.Settings) error {
	path := s.SettingsPath(user)
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return &core.IOError{Op: "save settings", Path: path, Err: err}
	}
	if err := WriteFileAtomic(path, data); err != nil {
		return &core.IOError{Op: "save settings", Path: path, Err: err}
	}
	return nil
}

// WriteFileAtomic writes data to path by way of a temp file in the same
// directory followed by a rename, so readers never observe a torn document.
// Parent directories are created as needed.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
