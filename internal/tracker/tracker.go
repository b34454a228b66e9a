// Package tracker orchestrates expense operations on top of a record store:
// validation, id generation, the load-append-save cycle and listing queries.
package tracker

import (
	"context"
	"sync"
	"time"

	"outgo/internal/backend"
	"outgo/internal/cache"
	"outgo/internal/core"
	"outgo/internal/log"
)

const (
	settingsCacheSize = 128
	settingsCacheTTL  = 5 * time.Minute
)

// AddExpenseInput carries the fields of a new entry. Optional fields have an
// explicit absent state: a nil Date means "use today", Amount and Tags accept
// the loosely typed inputs the validators know how to coerce.
type AddExpenseInput struct {
	Date          *string
	Amount        any
	Category      string
	Description   string
	PaymentMethod string
	Tags          any
}

// Tracker coordinates validators, the id generator and the record store.
// A per-user mutex serializes each load-mutate-save cycle, so concurrent
// AddExpense calls within this process cannot lose updates. Cross-process
// writers remain last-save-wins.
type Tracker struct {
	records  backend.RecordStore
	ids      *core.IDGenerator
	now      func() time.Time
	locks    userLocks
	settings *cache.LRUCache[core.Settings]
	logger   *log.Logger
}

// NewTracker creates a tracker over the given store. A nil clock defaults to
// time.Now; a nil logger falls back to the default configuration.
func NewTracker(records backend.RecordStore, logger *log.Logger, now func() time.Time) *Tracker {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Tracker{
		records:  records,
		ids:      core.NewIDGenerator(now),
		now:      now,
		settings: cache.NewLRUCache[core.Settings](settingsCacheSize, settingsCacheTTL),
		logger:   logger.WithComponent(log.ComponentTracker),
	}
}

// AddExpense validates the input, mints an id, appends the entry to the
// user's collection and persists it. Either a fully valid entry lands on
// durable storage and its id is returned, or nothing is persisted and the
// first validation or IO error is surfaced.
func (t *Tracker) AddExpense(ctx context.Context, user string, in AddExpenseInput) (string, error) {
	date := t.today()
	if in.Date != nil {
		date = *in.Date
	}
	if err := core.ValidateDate(date); err != nil {
		return "", err
	}

	amount, err := core.ValidateAmount(in.Amount)
	if err != nil {
		return "", err
	}

	if err := core.ValidateRequiredText(in.Category, "category"); err != nil {
		return "", err
	}

	tags := core.NormalizeTags(in.Tags)

	unlock := t.locks.lock(user)
	defer unlock()

	entries, err := t.records.LoadExpenses(ctx, user)
	if err != nil {
		return "", err
	}

	entry := core.Expense{
		ID:            t.ids.Next(),
		Date:          date,
		Amount:        amount,
		Category:      in.Category,
		Description:   in.Description,
		PaymentMethod: in.PaymentMethod,
		Tags:          tags,
	}

	entries = append(entries, entry)
	if err := t.records.SaveExpenses(ctx, user, entries); err != nil {
		return "", err
	}

	t.logger.InfoContext(ctx, "Expense recorded", log.NewFields().
		WithUser(user).
		WithOperation(log.OpAdd).
		WithExpense(entry.ID, entry.Category, entry.Amount).
		ToSlice()...)

	return entry.ID, nil
}

// ListExpenses loads the user's collection and applies the filter. An empty
// result is a valid answer, never an error.
func (t *Tracker) ListExpenses(ctx context.Context, user string, f core.Filter) ([]core.Expense, error) {
	entries, err := t.records.LoadExpenses(ctx, user)
	if err != nil {
		return nil, err
	}
	return core.ApplyFilter(entries, f), nil
}

// Settings returns the user's settings, serving repeated reads from a small
// TTL cache. The expense collection itself is deliberately never cached.
func (t *Tracker) Settings(ctx context.Context, user string) (core.Settings, error) {
	if s, ok := t.settings.Get(user); ok {
		return s, nil
	}
	s, err := t.records.LoadSettings(ctx, user)
	if err != nil {
		return core.Settings{}, err
	}
	t.settings.Set(user, s)
	return s, nil
}

func (t *Tracker) today() string {
	return t.now().Format(core.DateLayout)
}

// userLocks hands out one mutex per username.
type userLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (l *userLocks) lock(user string) func() {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[string]*sync.Mutex)
	}
	m, ok := l.locks[user]
	if !ok {
		m = &sync.Mutex{}
		l.locks[user] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
