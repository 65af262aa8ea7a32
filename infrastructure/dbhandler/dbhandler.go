package dbhandler

import (
	"context"
	"errors"

	"database/sql"

	"github.com/behrang/sqlbatch"
	"github.com/lib/pq"

	"treasury/infrastructure/logger"
)

// SQLSTATE of a serialization failure.
const serializationFailure = "40001"

// DBHandler contains a connection to database.
type DBHandler struct {
	DB       *sql.DB
	MaxRetry int
}

// Batch creates a transaction and executes the batch of commands in that transaction.
// If a retryable error is received, the batch is retried up to MaxRetry times.
func (handler DBHandler) Batch(opts *sql.TxOptions, commands []sqlbatch.Command) ([]interface{}, error) {

	for attempt := 1; ; attempt++ {
		results, err := handler.tryBatch(opts, commands)
		if IsRetryable(err) && attempt < handler.MaxRetry {
			logger.Warnf("🟡 Retryable Postgres error, retrying (%v/%v): %v", attempt, handler.MaxRetry, err)
			continue
		}
		return results, err
	}
}

func (handler DBHandler) tryBatch(opts *sql.TxOptions, commands []sqlbatch.Command) (results []interface{}, err error) {

	results = make([]interface{}, len(commands))

	tx, err := handler.DB.BeginTx(context.Background(), opts)
	if err != nil {
		return
	}
	defer tx.Rollback()

	results, err = sqlbatch.Batch(tx, commands)

	if err == nil {
		err = tx.Commit()
	}

	return
}

// IsRetryable reports whether err is a Postgres serialization failure.
func IsRetryable(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == serializationFailure
}
