package repository

import (
	"database/sql"

	"github.com/behrang/sqlbatch"
)

var (
	// BatchOptionNormal is used for append-only writes: reward snapshots and the schema.
	BatchOptionNormal = sql.TxOptions{
		ReadOnly:  false,
		Isolation: sql.LevelReadCommitted,
	}

	// BatchOptionNormalReadOnly serves every query. A treasury read sees one committed version.
	BatchOptionNormalReadOnly = sql.TxOptions{
		ReadOnly:  true,
		Isolation: sql.LevelReadCommitted,
	}

	// BatchOptionSerializable guards launches, treasury commits and candle upserts. The
	// handler retries the serialization failures it causes.
	BatchOptionSerializable = sql.TxOptions{
		ReadOnly:  false,
		Isolation: sql.LevelSerializable,
	}
)

// BatchHandler runs a batch of SQL commands in one transaction. dbhandler.DBHandler is the
// postgres implementation; tests substitute a recording fake.
type BatchHandler interface {
	Batch(opts *sql.TxOptions, commands []sqlbatch.Command) ([]interface{}, error)
}
