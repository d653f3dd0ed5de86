// Package visitorstate persists per-visitor records as JSON blobs keyed by
// fixed string names: session, consent, assessment history, personal limits,
// and experiment assignments. All writes are best-effort; callers decide
// whether a failure is fatal (for session mutation it never is).
package visitorstate

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/roulettesim/roulettesim-go/internal/infrastructure/persistence/database"
)

// Key prefixes for the fixed record families.
const (
	prefixSession     = "session:"
	prefixConsent     = "consent:"
	prefixAssessments = "assessments:"
	prefixLimits      = "limits:"
	prefixExperiments = "experiments:"
)

const opTimeout = 5 * time.Second

// Store reads and writes visitor state blobs.
type Store struct {
	db *database.DB
}

// NewStore creates a store over an opened connection.
func NewStore(db *database.DB) *Store {
	return &Store{db: db}
}

// Put serializes value and upserts it under key.
func (s *Store) Put(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", key, err)
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	query := `INSERT INTO visitor_state (key, value, updated_at) VALUES (?, ?, ?)
	          ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	if _, err := s.db.ExecContext(ctx, query, key, string(payload), time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to persist %s: %w", key, err)
	}
	return nil
}

// Get loads the blob under key into out. Returns false when no record exists.
func (s *Store) Get(ctx context.Context, key string, out any) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM visitor_state WHERE key = ?`, key).Scan(&payload)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load %s: %w", key, err)
	}

	if err := json.Unmarshal([]byte(payload), out); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

// Delete removes the blob under key. Missing keys are not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM visitor_state WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// SessionKey returns the storage key for a visitor session record.
func SessionKey(sessionID string) string { return prefixSession + sessionID }

// ConsentKey returns the storage key for a visitor's consent preferences.
func ConsentKey(sessionID string) string { return prefixConsent + sessionID }

// AssessmentsKey returns the storage key for a visitor's assessment history.
func AssessmentsKey(sessionID string) string { return prefixAssessments + sessionID }

// LimitsKey returns the storage key for a visitor's personal play limits.
func LimitsKey(sessionID string) string { return prefixLimits + sessionID }

// ExperimentsKey returns the storage key for a visitor's experiment assignments.
func ExperimentsKey(sessionID string) string { return prefixExperiments + sessionID }
