// Package selection persists each client's navigation selection in SQLite.
package selection

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/navmark/internal/db"
	"github.com/ziadkadry99/navmark/internal/nav"
)

// timeLayout is how timestamps are written; millisecond precision keeps
// history ordering stable.
const timeLayout = "2006-01-02 15:04:05.000"

// DefaultHistoryLimit caps History when no limit is given.
const DefaultHistoryLimit = 50

// DefaultRetention is how many activations Record keeps per client.
const DefaultRetention = 500

// Store provides per-client selection and activation history.
type Store struct {
	db     *db.DB
	now    func() time.Time
	retain int
}

// Option configures a Store.
type Option func(*Store)

// WithRetention sets how many activations are kept per client. Zero keeps
// DefaultRetention; a negative n keeps every row.
func WithRetention(n int) Option {
	return func(s *Store) {
		if n != 0 {
			s.retain = n
		}
	}
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB, opts ...Option) *Store {
	s := &Store{db: database, now: time.Now, retain: DefaultRetention}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the value stored under key for the client.
func (s *Store) Get(ctx context.Context, clientID, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM nav_selections WHERE client_id = ? AND key = ?",
		clientID, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading selection: %w", err)
	}
	return value, true, nil
}

// Set upserts the value stored under key for the client.
func (s *Store) Set(ctx context.Context, clientID, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO nav_selections (client_id, key, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(client_id, key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`,
		clientID, key, value, s.now().UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("writing selection: %w", err)
	}
	return nil
}

// Selections returns every key stored for the client.
func (s *Store) Selections(ctx context.Context, clientID string) ([]Selection, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT client_id, key, value, updated_at FROM nav_selections WHERE client_id = ? ORDER BY key",
		clientID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying selections: %w", err)
	}
	defer rows.Close()

	var out []Selection
	for rows.Next() {
		var (
			sel Selection
			ts  string
		)
		if err := rows.Scan(&sel.ClientID, &sel.Key, &sel.Value, &ts); err != nil {
			return nil, err
		}
		sel.UpdatedAt = parseTime(ts)
		out = append(out, sel)
	}
	return out, rows.Err()
}

// Record inserts an activation and prunes the client's oldest rows beyond
// the retention limit. If a.ID is empty a UUID is generated.
func (s *Store) Record(ctx context.Context, a Activation) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = s.now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO nav_activations (id, client_id, item_id, trigger, path, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, a.ClientID, a.ItemID, string(a.Trigger), a.Path, a.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting activation: %w", err)
	}

	if s.retain > 0 {
		_, err = tx.ExecContext(ctx, `
			DELETE FROM nav_activations
			WHERE client_id = ? AND rowid NOT IN (
				SELECT rowid FROM nav_activations
				WHERE client_id = ?
				ORDER BY created_at DESC, rowid DESC
				LIMIT ?)`,
			a.ClientID, a.ClientID, s.retain,
		)
		if err != nil {
			return fmt.Errorf("pruning activations: %w", err)
		}
	}
	return tx.Commit()
}

// History returns the client's most recent activations, newest first.
func (s *Store) History(ctx context.Context, clientID string, limit int) ([]Activation, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, client_id, item_id, trigger, path, created_at
		FROM nav_activations
		WHERE client_id = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?`,
		clientID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying activations: %w", err)
	}
	defer rows.Close()

	var out []Activation
	for rows.Next() {
		var (
			a       Activation
			trigger string
			ts      string
		)
		if err := rows.Scan(&a.ID, &a.ClientID, &a.ItemID, &trigger, &a.Path, &ts); err != nil {
			return nil, err
		}
		a.Trigger = Trigger(trigger)
		a.CreatedAt = parseTime(ts)
		out = append(out, a)
	}
	return out, rows.Err()
}

// Clients lists every client with a stored selection.
func (s *Store) Clients(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT DISTINCT client_id FROM nav_selections ORDER BY client_id")
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// Forget removes every selection and activation recorded for the client.
func (s *Store) Forget(ctx context.Context, clientID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM nav_selections WHERE client_id = ?", clientID); err != nil {
		return fmt.Errorf("deleting selections: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM nav_activations WHERE client_id = ?", clientID); err != nil {
		return fmt.Errorf("deleting activations: %w", err)
	}
	return tx.Commit()
}

// For returns a nav.Store bound to one client. Each write also records a
// click activation.
func (s *Store) For(clientID string) *ClientStore {
	return &ClientStore{store: s, clientID: clientID}
}

// ClientStore adapts Store to nav.Store for a single client.
type ClientStore struct {
	store    *Store
	clientID string
}

var _ nav.Store = (*ClientStore)(nil)

func (c *ClientStore) Get(ctx context.Context, key string) (string, bool, error) {
	return c.store.Get(ctx, c.clientID, key)
}

func (c *ClientStore) Set(ctx context.Context, key, value string) error {
	if err := c.store.Set(ctx, c.clientID, key, value); err != nil {
		return err
	}
	return c.store.Record(ctx, Activation{
		ClientID: c.clientID,
		ItemID:   value,
		Trigger:  TriggerClick,
	})
}

func parseTime(ts string) time.Time {
	for _, layout := range []string{timeLayout, time.DateTime, time.RFC3339Nano} {
		if t, err := time.Parse(layout, ts); err == nil {
			return t
		}
	}
	return time.Time{}
}
