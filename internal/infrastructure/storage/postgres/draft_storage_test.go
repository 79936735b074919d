package postgres

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Runs against a migrated database when TEST_DB_URL is set.
func TestDraftStore_RoundTrip(t *testing.T) {
	dsn := strings.TrimSpace(os.Getenv("TEST_DB_URL"))
	if dsn == "" {
		t.Skip("TEST_DB_URL not set")
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	store := NewDraftStore(db)
	clientID := "test-" + time.Now().UTC().Format("20060102150405.000000000")
	draft := store.ForClient(clientID)
	t.Cleanup(func() {
		_, _ = db.ExecContext(ctx, "DELETE FROM lineup_draft_values WHERE client_id = $1", clientID)
	})

	if err := draft.Set(ctx, "formation", "4-4-2", time.Hour); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := draft.Set(ctx, "formation", "4-3-3", time.Hour); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, ok, err := draft.Get(ctx, "formation")
	if err != nil || !ok || got != "4-3-3" {
		t.Fatalf("expected 4-3-3, got %q ok=%v err=%v", got, ok, err)
	}

	if _, ok, _ := store.ForClient(clientID+"-other").Get(ctx, "formation"); ok {
		t.Fatalf("expected other client to be isolated")
	}

	if err := draft.Delete(ctx, "formation"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := draft.Get(ctx, "formation"); ok {
		t.Fatalf("expected deleted key to be absent")
	}
}
