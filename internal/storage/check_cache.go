package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_check_cache.go -package=mocks markwright/internal/storage CheckCache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"markwright/internal/languagetool"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// CheckCache defines the interface for cached check result operations.
type CheckCache interface {
	// Get returns the cached matches stored under keyHash.
	// Returns ErrNotFound if the key has never been stored.
	Get(ctx context.Context, keyHash string) ([]languagetool.Match, error)
	// Put stores matches under keyHash, replacing any previous entry.
	Put(ctx context.Context, keyHash string, matches []languagetool.Match) error
}

// CheckRepo provides methods for cached check result operations.
// It implements the CheckCache interface.
type CheckRepo struct {
	db *sql.DB
}

// NewCheckRepo creates a new CheckRepo.
func NewCheckRepo(db *sql.DB) *CheckRepo {
	return &CheckRepo{db: db}
}

// Get returns the cached matches stored under keyHash.
// Returns ErrNotFound if the key has never been stored.
func (r *CheckRepo) Get(ctx context.Context, keyHash string) ([]languagetool.Match, error) {
	var raw string
	err := r.db.QueryRowContext(ctx,
		"SELECT matches_json FROM check_results WHERE key_hash = ?",
		keyHash,
	).Scan(&raw)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query check result: %w", err)
	}

	var matches []languagetool.Match
	if err := json.Unmarshal([]byte(raw), &matches); err != nil {
		return nil, fmt.Errorf("failed to decode cached matches: %w", err)
	}

	return matches, nil
}

// Put stores matches under keyHash, replacing any previous entry.
// A fresh UUID is assigned to new rows.
func (r *CheckRepo) Put(ctx context.Context, keyHash string, matches []languagetool.Match) error {
	raw, err := json.Marshal(matches)
	if err != nil {
		return fmt.Errorf("failed to encode matches: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO check_results (id, key_hash, matches_json) VALUES (?, ?, ?)
		ON CONFLICT(key_hash) DO UPDATE SET matches_json = excluded.matches_json`,
		uuid.New().String(), keyHash, string(raw),
	)
	if err != nil {
		return fmt.Errorf("failed to store check result: %w", err)
	}
	return nil
}
