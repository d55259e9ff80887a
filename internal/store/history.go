package store

import (
	"context"
	"database/sql"

	"github.com/spendify/apiserver/types"
)

// HistoryStore handles persistence for spending entries.
type HistoryStore struct {
	db *sql.DB
}

func NewHistoryStore(db *sql.DB) *HistoryStore {
	return &HistoryStore{db: db}
}

func (r *HistoryStore) Insert(ctx context.Context, entry types.HistoryEntry) error {
	const query = `
		INSERT INTO history (username, date, amount, category, description)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(
		ctx,
		query,
		entry.Username,
		entry.Date,
		entry.Amount,
		entry.Category,
		entry.Description,
	)
	return err
}
