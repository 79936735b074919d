package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/lib/pq"
)

// Transaction-pooling proxies drop unnamed prepared statements between round trips.
func isUnnamedPreparedStatementMissing(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "26000" {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "unnamed prepared statement does not exist") || strings.Contains(msg, "(26000)")
}

func isBindParameterMismatch(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "bind message supplies") && strings.Contains(msg, "prepared statement")
}

func isRetryableStatementError(err error) bool {
	return isUnnamedPreparedStatementMissing(err) || isBindParameterMismatch(err)
}

// withStatementRetry runs fn once more when the pooler lost the statement.
func withStatementRetry(ctx context.Context, fn func(context.Context) error) error {
	err := fn(ctx)
	if isRetryableStatementError(err) && ctx.Err() == nil {
		return fn(ctx)
	}
	return err
}
