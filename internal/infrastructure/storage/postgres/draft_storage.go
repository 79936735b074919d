package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/lineup-studio/internal/domain/lineup"
	"github.com/riskibarqy/lineup-studio/internal/platform/querybuilder"
)

const draftValuesTable = "lineup_draft_values"

var draftValueKey = []string{"client_id", "key"}

// DraftStore keeps draft keys server-side, one row per client and key.
type DraftStore struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewDraftStore(db *sqlx.DB) *DraftStore {
	return &DraftStore{db: db, now: time.Now}
}

// ForClient scopes the store to a single browser or CLI identity.
func (s *DraftStore) ForClient(clientID string) lineup.Storage {
	return &clientDraft{store: s, clientID: strings.TrimSpace(clientID)}
}

// PurgeExpired removes rows past their retention and reports how many were dropped.
func (s *DraftStore) PurgeExpired(ctx context.Context) (int64, error) {
	query, args, err := querybuilder.DeleteFrom(draftValuesTable).
		Where(querybuilder.Expr("expires_at <= ?", s.now().UTC())).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build purge draft values query: %w", err)
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("purge expired draft values: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge expired draft values rows affected: %w", err)
	}
	return n, nil
}

type clientDraft struct {
	store    *DraftStore
	clientID string
}

func (c *clientDraft) Get(ctx context.Context, key string) (string, bool, error) {
	query, args, err := querybuilder.Select("value", "expires_at").
		From(draftValuesTable).
		Where(querybuilder.Eq("client_id", c.clientID), querybuilder.Eq("key", key)).
		ToSQL()
	if err != nil {
		return "", false, fmt.Errorf("build get draft value query: %w", err)
	}

	var row draftValueTableModel
	err = withStatementRetry(ctx, func(ctx context.Context) error {
		return c.store.db.GetContext(ctx, &row, query, args...)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get draft value %s: %w", key, err)
	}
	if !row.ExpiresAt.After(c.store.now()) {
		return "", false, nil
	}
	return row.Value, true, nil
}

func (c *clientDraft) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	query, args, err := querybuilder.UpsertModel(draftValuesTable, draftValueUpsertModel{
		ClientID:  c.clientID,
		Key:       key,
		Value:     value,
		ExpiresAt: c.store.now().Add(ttl).UTC(),
	}, draftValueKey, "updated_at = NOW()")
	if err != nil {
		return fmt.Errorf("build draft value upsert query: %w", err)
	}

	err = withStatementRetry(ctx, func(ctx context.Context) error {
		_, execErr := c.store.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		return fmt.Errorf("upsert draft value %s: %w", key, err)
	}
	return nil
}

func (c *clientDraft) Delete(ctx context.Context, key string) error {
	query, args, err := querybuilder.DeleteFrom(draftValuesTable).
		Where(querybuilder.Eq("client_id", c.clientID), querybuilder.Eq("key", key)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete draft value query: %w", err)
	}
	if _, err := c.store.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete draft value %s: %w", key, err)
	}
	return nil
}
