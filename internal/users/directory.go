// Package users implements the flat account directory: a single users.json
// file listing registered users plus the scaffolding of each user's storage
// namespace. The record store relies on it to hand over validated usernames
// whose storage location already exists.
package users

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"outgo/internal/backend"
	"outgo/internal/core"
	"outgo/internal/store"
)

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type userRecord struct {
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
}

type usersDoc struct {
	Users []userRecord `json:"users"`
}

// Directory manages the registered users file and scaffolds per-user storage
// on registration. The mutex serializes read-modify-write cycles on
// users.json within this process.
type Directory struct {
	mu        sync.Mutex
	usersFile string
	records   backend.RecordStore
}

func NewDirectory(usersFile string, records backend.RecordStore) *Directory {
	return &Directory{usersFile: usersFile, records: records}
}

// Bootstrap makes sure the users file exists with the correct initial shape.
// It is idempotent and meant to run once at program startup.
func (d *Directory) Bootstrap() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, err := d.load()
	return err
}

// Register creates a new user, stores a bcrypt hash of the password and
// scaffolds the user's expense and settings documents.
func (d *Directory) Register(ctx context.Context, username, password string) error {
	if err := core.ValidateRequiredText(username, "username"); err != nil {
		return err
	}
	if err := core.ValidateRequiredText(password, "password"); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	doc, err := d.load()
	if err != nil {
		return err
	}
	for _, u := range doc.Users {
		if u.Username == username {
			return ErrUsernameTaken
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	doc.Users = append(doc.Users, userRecord{Username: username, PasswordHash: string(hash)})
	if err := d.save(doc); err != nil {
		return err
	}

	return d.resolveStorage(ctx, username)
}

// Authenticate reports whether the username/password pair matches a
// registered user.
func (d *Directory) Authenticate(_ context.Context, username, password string) (bool, error) {
	d.mu.Lock()
	doc, err := d.load()
	d.mu.Unlock()
	if err != nil {
		return false, err
	}

	for _, u := range doc.Users {
		if u.Username != username {
			continue
		}
		return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil, nil
	}
	return false, nil
}

// ResolveStorage guarantees that the user's storage namespace exists before
// the record store is used. Unknown usernames are rejected.
func (d *Directory) ResolveStorage(ctx context.Context, username string) error {
	exists, err := d.Exists(username)
	if err != nil {
		return err
	}
	if !exists {
		return ErrInvalidCredentials
	}
	return d.resolveStorage(ctx, username)
}

// Exists reports whether the username is registered.
func (d *Directory) Exists(username string) (bool, error) {
	d.mu.Lock()
	doc, err := d.load()
	d.mu.Unlock()
	if err != nil {
		return false, err
	}
	for _, u := range doc.Users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

// Usernames returns all registered usernames in registration order.
func (d *Directory) Usernames() ([]string, error) {
	d.mu.Lock()
	doc, err := d.load()
	d.mu.Unlock()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(doc.Users))
	for _, u := range doc.Users {
		names = append(names, u.Username)
	}
	return names, nil
}

// resolveStorage forces creation of the user's documents through the record
// store, which treats missing documents as empty ones to create.
func (d *Directory) resolveStorage(ctx context.Context, username string) error {
	if _, err := d.records.LoadExpenses(ctx, username); err != nil {
		return err
	}
	if _, err := d.records.LoadSettings(ctx, username); err != nil {
		return err
	}
	return nil
}

func (d *Directory) load() (*usersDoc, error) {
	data, err := os.ReadFile(d.usersFile)
	if errors.Is(err, fs.ErrNotExist) {
		doc := &usersDoc{Users: []userRecord{}}
		if err := d.save(doc); err != nil {
			return nil, err
		}
		return doc, nil
	}
	if err != nil {
		return nil, &core.IOError{Op: "load users", Path: d.usersFile, Err: err}
	}

	var doc usersDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &core.IOError{Op: "load users", Path: d.usersFile, Err: err}
	}
	if doc.Users == nil {
		doc.Users = []userRecord{}
	}
	return &doc, nil
}

func (d *Directory) save(doc *usersDoc) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return &core.IOError{Op: "save users", Path: d.usersFile, Err: err}
	}
	if err := store.WriteFileAtomic(d.usersFile, data); err != nil {
		return &core.IOError{Op: "save users", Path: d.usersFile, Err: err}
	}
	return nil
}
