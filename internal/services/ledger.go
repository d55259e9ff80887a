package services

import (
	"context"
	"fmt"

	"github.com/spendify/apiserver/types"
)

// HistoryRepository defines persistence operations for spending entries.
type HistoryRepository interface {
	Insert(ctx context.Context, entry types.HistoryEntry) error
}

// LedgerService handles spending-entry submission and history queries.
type LedgerService struct {
	history HistoryRepository
}

func NewLedgerService(history HistoryRepository) *LedgerService {
	return &LedgerService{history: history}
}

// AddEntry persists a new spending entry. Entries are append-only.
func (s *LedgerService) AddEntry(ctx context.Context, entry types.HistoryEntry) error {
	if err := s.history.Insert(ctx, entry); err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}
	return nil
}

// History returns the snapshot entries matching the query, in snapshot
// order. A query with no filter fields returns every entry belonging to
// the query's username.
func (s *LedgerService) History(snap types.Snapshot, query HistoryQuery) []types.HistoryEntry {
	return FilterHistory(snap.History, query)
}
