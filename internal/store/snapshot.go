package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/spendify/apiserver/types"
)

// SnapshotStore reads the full users and history tables into memory for one
// request. Both reads run on a single checked-out connection, released on
// every exit path. No transaction spans the two reads: a concurrent writer
// can land between them, which is an accepted staleness window at this
// write volume, not a correctness bug.
type SnapshotStore struct {
	db *sql.DB
}

func NewSnapshotStore(db *sql.DB) *SnapshotStore {
	return &SnapshotStore{db: db}
}

func (s *SnapshotStore) Snapshot(ctx context.Context) (types.Snapshot, error) {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return types.Snapshot{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()

	users, err := readUsers(ctx, conn)
	if err != nil {
		return types.Snapshot{}, fmt.Errorf("read users: %w", err)
	}

	history, err := readHistory(ctx, conn)
	if err != nil {
		return types.Snapshot{}, fmt.Errorf("read history: %w", err)
	}

	slog.DebugContext(ctx, "snapshot built", "users", len(users), "history", len(history))

	return types.Snapshot{Users: users, History: history}, nil
}

func readUsers(ctx context.Context, conn *sql.Conn) ([]types.UserRecord, error) {
	const query = `
		SELECT username, salt, hash, realname, address, accountnumber, routingnumber, bankusername, bankpassword
		FROM users`
	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []types.UserRecord{}
	for rows.Next() {
		var user types.UserRecord
		if err := rows.Scan(
			&user.Username,
			&user.Salt,
			&user.Hash,
			&user.Realname,
			&user.Address,
			&user.AccountNumber,
			&user.RoutingNumber,
			&user.BankUsername,
			&user.BankPassword,
		); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func readHistory(ctx context.Context, conn *sql.Conn) ([]types.HistoryEntry, error) {
	const query = `
		SELECT username, date, amount, category, description
		FROM history`
	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := []types.HistoryEntry{}
	for rows.Next() {
		var entry types.HistoryEntry
		if err := rows.Scan(
			&entry.Username,
			&entry.Date,
			&entry.Amount,
			&entry.Category,
			&entry.Description,
		); err != nil {
			return nil, err
		}
		history = append(history, entry)
	}
	return history, rows.Err()
}
