// Package store persists finished games per user.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/verte-zerg/ultramac/internal/model"
)

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendCSV    = "csv"
	BackendMemory = "memory"
)

var (
	// ErrUnknownBackend is returned by Open for an unsupported backend name.
	ErrUnknownBackend = errors.New("unknown store backend")
	// ErrInvalidUsername is returned for usernames a backend cannot key by.
	ErrInvalidUsername = errors.New("invalid username")
)

// ScoreStore appends finished games and returns a user's history.
//
// Query returns every record appended for the username, including ones
// appended earlier in the same process, in append order.
type ScoreStore interface {
	Append(ctx context.Context, rec model.ScoreRecord) error
	Query(ctx context.Context, username string) ([]model.ScoreRecord, error)
	Close() error
}

// UserLister is implemented by stores that can enumerate their users.
type UserLister interface {
	Users(ctx context.Context) ([]string, error)
}

// Open opens the named backend. path is a database file for sqlite, a
// directory for csv, and ignored for memory.
func Open(backend, path string) (ScoreStore, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case BackendSQLite, "":
		st, err := OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		return st, nil
	case BackendCSV:
		st, err := OpenCSV(path)
		if err != nil {
			return nil, err
		}
		return st, nil
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// CheckUsername reports whether the backend can store games for username.
// The csv backend keys files by name, so it only accepts names made of
// letters, digits, dots, dashes and underscores.
func CheckUsername(backend, username string) error {
	if err := checkUsername(username); err != nil {
		return err
	}
	if strings.ToLower(strings.TrimSpace(backend)) == BackendCSV && !safeUsername.MatchString(username) {
		return fmt.Errorf("%w: %q cannot be used as a file name", ErrInvalidUsername, username)
	}
	return nil
}

func checkUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidUsername)
	}
	return nil
}
