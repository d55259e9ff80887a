package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spendify/apiserver/internal/credentials"
	"github.com/spendify/apiserver/internal/store"
	"github.com/spendify/apiserver/types"
)

// Snapshotter builds the per-request in-memory view of the persisted tables.
type Snapshotter interface {
	Snapshot(ctx context.Context) (types.Snapshot, error)
}

// UserRepository defines persistence operations for user records.
type UserRepository interface {
	Insert(ctx context.Context, user types.UserRecord) error
}

// AccountService handles registration and login against the request snapshot.
type AccountService struct {
	users  UserRepository
	hasher *credentials.Hasher
}

func NewAccountService(users UserRepository, hasher *credentials.Hasher) *AccountService {
	return &AccountService{users: users, hasher: hasher}
}

// Register persists a new user record unless the username is already taken.
// The uniqueness check runs against the snapshot the caller built for this
// request, the same view the rest of the request sees. The plaintext
// password is reduced to a salt/digest pair before anything is stored.
func (s *AccountService) Register(ctx context.Context, snap types.Snapshot, user types.UserRecord, password string) error {
	for _, existing := range snap.Users {
		if existing.Username == user.Username {
			return fmt.Errorf("username %s: %w", user.Username, store.ErrDuplicate)
		}
	}

	salt, digest, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.Salt = salt
	user.Hash = digest

	slog.InfoContext(ctx, "registering user", "username", user.Username)
	if err := s.users.Insert(ctx, user); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// Login scans the snapshot for a record whose username matches and whose
// stored salt/digest pair verifies the supplied password. It returns the
// stored record so callers answer with authoritative profile data rather
// than reflecting whatever the client sent.
func (s *AccountService) Login(snap types.Snapshot, username, password string) (types.UserRecord, error) {
	for _, user := range snap.Users {
		if user.Username == username && s.hasher.Check(password, user.Salt, user.Hash) {
			return user, nil
		}
	}
	return types.UserRecord{}, fmt.Errorf("user %s: %w", username, store.ErrNotFound)
}
