// Package credentials derives and verifies salted password digests.
// Plaintext secrets never leave this package's call frames: they are not
// stored, returned, or logged.
package credentials

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// SaltLength is the size of the random salt generated per credential.
const SaltLength = 16

// ErrEmptySecret is returned when Hash is called with an empty secret.
var ErrEmptySecret = errors.New("secret must not be empty")

// Params tunes the Argon2id derivation. Higher values raise the cost of an
// offline brute-force attack at the price of login latency.
type Params struct {
	Time      uint32
	Memory    uint32
	Threads   uint8
	KeyLength uint32
}

// DefaultParams returns the production derivation parameters.
func DefaultParams() Params {
	return Params{
		Time:      1,
		Memory:    64 * 1024,
		Threads:   4,
		KeyLength: 32,
	}
}

// Hasher turns plaintext secrets into storable salt/digest pairs and checks
// candidate secrets against stored pairs.
type Hasher struct {
	params Params
}

func New(params Params) *Hasher {
	return &Hasher{params: params}
}

func NewDefault() *Hasher {
	return New(DefaultParams())
}

// Hash derives a digest from the secret under a fresh random salt. The salt
// is generated per call and never reused, so two users with the same
// password end up with unrelated digests.
func (h *Hasher) Hash(secret string) (salt, digest []byte, err error) {
	if secret == "" {
		return nil, nil, ErrEmptySecret
	}

	salt = make([]byte, SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, nil, fmt.Errorf("generate salt: %w", err)
	}

	digest = h.derive(secret, salt)
	return salt, digest, nil
}

// Check reports whether secret matches the stored salt/digest pair. The
// comparison runs in constant time regardless of where a mismatch occurs.
// Malformed input (nil or wrong-length salt or digest) is a mismatch, never
// a panic: stored pairs can come from attacker-reachable rows.
func (h *Hasher) Check(secret string, salt, digest []byte) bool {
	if len(salt) == 0 || len(digest) == 0 {
		return false
	}
	candidate := h.derive(secret, salt)
	return subtle.ConstantTimeCompare(candidate, digest) == 1
}

func (h *Hasher) derive(secret string, salt []byte) []byte {
	return argon2.IDKey([]byte(secret), salt, h.params.Time, h.params.Memory, h.params.Threads, h.params.KeyLength)
}
