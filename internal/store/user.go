package store

import (
	"context"
	"database/sql"

	"github.com/spendify/apiserver/types"
)

// UserStore handles persistence for user records.
type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

func (r *UserStore) Insert(ctx context.Context, user types.UserRecord) error {
	const query = `
		INSERT INTO users (username, salt, hash, realname, address, accountnumber, routingnumber, bankusername, bankpassword)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecContext(
		ctx,
		query,
		user.Username,
		user.Salt,
		user.Hash,
		user.Realname,
		user.Address,
		user.AccountNumber,
		user.RoutingNumber,
		user.BankUsername,
		user.BankPassword,
	)
	return err
}
