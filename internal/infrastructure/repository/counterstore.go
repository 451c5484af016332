package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"remotcyberhelp/internal/shared/db"
)

const (
	upsertReturningSQL = `INSERT INTO counters (counter_key, sequence, updated_at) VALUES (?, 1, ?)
ON CONFLICT (counter_key) DO UPDATE SET sequence = counters.sequence + 1, updated_at = excluded.updated_at
RETURNING sequence`

	mysqlUpsertSQL = `INSERT INTO counters (counter_key, sequence, updated_at) VALUES (?, LAST_INSERT_ID(1), ?)
ON DUPLICATE KEY UPDATE sequence = LAST_INSERT_ID(sequence + 1), updated_at = VALUES(updated_at)`
)

// CounterStore implements ticket.CounterStore on the counters table. Each
// call is a single atomic upsert, never a read followed by a write.
type CounterStore struct {
	db *gorm.DB
}

func NewCounterStore(db *gorm.DB) *CounterStore {
	return &CounterStore{db: db}
}

func (s *CounterStore) Next(ctx context.Context, key string) (int64, error) {
	tx := db.GetTxFromContext(ctx, s.db).WithContext(ctx)
	now := time.Now().UTC()

	var seq int64
	switch tx.Dialector.Name() {
	case "mysql":
		// LAST_INSERT_ID is per connection, so both statements share one transaction.
		err := tx.Transaction(func(t *gorm.DB) error {
			if err := t.Exec(mysqlUpsertSQL, key, now).Error; err != nil {
				return err
			}
			return t.Raw("SELECT LAST_INSERT_ID()").Scan(&seq).Error
		})
		if err != nil {
			return 0, fmt.Errorf("failed to increment counter %s: %w", key, err)
		}
	default:
		if err := tx.Raw(upsertReturningSQL, key, now).Scan(&seq).Error; err != nil {
			return 0, fmt.Errorf("failed to increment counter %s: %w", key, err)
		}
	}

	if seq <= 0 {
		return 0, fmt.Errorf("counter %s returned invalid sequence %d", key, seq)
	}
	return seq, nil
}

// Current returns the last issued value, or 0 when the bucket is unused.
func (s *CounterStore) Current(ctx context.Context, key string) (int64, error) {
	var seq int64
	err := db.GetTxFromContext(ctx, s.db).
		Raw("SELECT sequence FROM counters WHERE counter_key = ?", key).
		Scan(&seq).Error
	if err != nil {
		return 0, fmt.Errorf("failed to read counter %s: %w", key, err)
	}
	return seq, nil
}
