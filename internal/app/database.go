package app

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/lineup-studio/internal/config"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"
)

const (
	maxTracedQueryLength = 512

	// Draft traffic is one small row per request key.
	draftDBMaxOpenConns    = 8
	draftDBMaxIdleConns    = 4
	draftDBConnMaxIdleTime = 5 * time.Minute
)

var queryWhitespaceRegex = regexp.MustCompile(`\s+`)

// openDraftDB opens the traced postgres pool that backs server-side drafts.
func openDraftDB(cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Open("postgres", cfg.DraftDBURL(),
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open draft database %s: %w", redactDBURL(cfg.DBURL), err)
	}
	db.SetMaxOpenConns(draftDBMaxOpenConns)
	db.SetMaxIdleConns(draftDBMaxIdleConns)
	db.SetConnMaxIdleTime(draftDBConnMaxIdleTime)
	return db, nil
}

func dbNameFromURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if parsed, err := url.Parse(trimmed); err == nil && parsed.Scheme != "" {
		return strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/"))
	}

	for _, token := range strings.Fields(trimmed) {
		if name, ok := strings.CutPrefix(token, "dbname="); ok {
			return strings.Trim(strings.TrimSpace(name), `"'`)
		}
	}
	return ""
}

// redactDBURL hides the password of URL style DSNs; key/value DSNs are reduced to their db name.
func redactDBURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Scheme == "" {
		if name := dbNameFromURL(trimmed); name != "" {
			return "dbname=" + name
		}
		return "<dsn>"
	}
	return parsed.Redacted()
}

func formatDBQueryForTrace(query string) string {
	normalized := strings.TrimSpace(queryWhitespaceRegex.ReplaceAllString(query, " "))
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}
	return normalized[:maxTracedQueryLength] + "..."
}
