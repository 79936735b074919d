package lineup

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
)

// Persisted draft keys.
const (
	KeyFormation     = "formation"
	KeyPlayers       = "players"
	KeyJerseyOptions = "jerseyOptions"
	KeyBadgeColor    = "badgeColor"
)

// DraftRetention keeps a draft until the user resets it.
const DraftRetention = 365 * 24 * time.Hour

// DraftKeys lists the persisted keys in write order.
func DraftKeys() []string {
	return []string{KeyFormation, KeyPlayers, KeyJerseyOptions, KeyBadgeColor}
}

// Storage is the durable client storage the builder persists its draft to.
type Storage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// ErrValueTooLarge reports a draft value the storage cannot hold.
var ErrValueTooLarge = errors.New("draft value too large")

// ValueChecker is implemented by storages that cap value sizes. The builder
// checks every encoded key before writing any, so a rejected draft leaves
// nothing behind.
type ValueChecker interface {
	CheckValue(key, value string) error
}

// CheckDraft runs the storage's size check over every encoded value.
func CheckDraft(storage Storage, values map[string]string) error {
	checker, ok := storage.(ValueChecker)
	if !ok {
		return nil
	}
	for _, key := range DraftKeys() {
		if err := checker.CheckValue(key, values[key]); err != nil {
			return err
		}
	}
	return nil
}

// EncodeDraft returns the stored value for every draft key.
func EncodeDraft(d Draft) (map[string]string, error) {
	players, err := sonic.ConfigStd.MarshalToString(d.Players)
	if err != nil {
		return nil, fmt.Errorf("encode players: %w", err)
	}
	jersey, err := sonic.ConfigStd.MarshalToString(d.JerseyOptions)
	if err != nil {
		return nil, fmt.Errorf("encode jersey options: %w", err)
	}
	return map[string]string{
		KeyFormation:     d.Formation,
		KeyPlayers:       players,
		KeyJerseyOptions: jersey,
		KeyBadgeColor:    d.BadgeColor,
	}, nil
}

func DecodePlayers(raw string) (Roster, error) {
	var out Roster
	if err := sonic.UnmarshalString(raw, &out); err != nil {
		return nil, fmt.Errorf("decode players: %w", err)
	}
	if out == nil {
		return nil, fmt.Errorf("decode players: empty roster")
	}
	return out, nil
}

func DecodeJerseyOptions(raw string) (JerseyOptions, error) {
	var out JerseyOptions
	if err := sonic.UnmarshalString(raw, &out); err != nil {
		return JerseyOptions{}, fmt.Errorf("decode jersey options: %w", err)
	}
	return out, nil
}
