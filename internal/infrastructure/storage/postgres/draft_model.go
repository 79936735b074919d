package postgres

import "time"

type draftValueTableModel struct {
	ClientID  string    `db:"client_id"`
	Key       string    `db:"key"`
	Value     string    `db:"value"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type draftValueUpsertModel struct {
	ClientID  string    `db:"client_id"`
	Key       string    `db:"key"`
	Value     string    `db:"value"`
	ExpiresAt time.Time `db:"expires_at"`
}
