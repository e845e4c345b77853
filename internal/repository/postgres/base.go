package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/hospital-api/pkg/metrics"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	db      *sqlx.DB
	metrics *metrics.Metrics
}

// NewBaseRepository creates a new base repository. m may be nil.
func NewBaseRepository(db *sqlx.DB, m *metrics.Metrics) BaseRepository {
	return BaseRepository{db: db, metrics: m}
}

// GetDB returns the database instance
func (r *BaseRepository) GetDB() *sqlx.DB {
	return r.db
}

// WithTx executes fn within a transaction. The transaction is rolled back if
// fn returns an error or panics and committed otherwise.
func (r *BaseRepository) WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	start := time.Now()
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			r.rollback(tx, start)
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		r.rollback(tx, start)
		return err
	}

	if err := tx.Commit(); err != nil {
		r.metrics.ObserveTx(metrics.OutcomeRollback, time.Since(start).Seconds())
		return err
	}
	r.metrics.ObserveTx(metrics.OutcomeCommit, time.Since(start).Seconds())
	return nil
}

func (r *BaseRepository) rollback(tx *sqlx.Tx, start time.Time) {
	if err := tx.Rollback(); err != nil {
		log.Error().Err(err).Msg("failed to roll back transaction")
	}
	r.metrics.ObserveTx(metrics.OutcomeRollback, time.Since(start).Seconds())
}
