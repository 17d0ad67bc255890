package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt work factor for stored password hashes.
const PasswordCost = 10

// ErrPasswordTooLong is returned by Hash for inputs bcrypt cannot represent
// (more than 72 bytes).
var ErrPasswordTooLong = bcrypt.ErrPasswordTooLong

// Hasher produces and checks salted bcrypt password hashes.
// Construct it with NewHasher.
type Hasher struct {
	dummy []byte
}

// NewHasher prepares the placeholder hash VerifyNothing compares against.
func NewHasher() (*Hasher, error) {
	dummy, err := bcrypt.GenerateFromPassword([]byte("formifyx-timing-equalizer"), PasswordCost)
	if err != nil {
		return nil, fmt.Errorf("prepare placeholder hash: %w", err)
	}
	return &Hasher{dummy: dummy}, nil
}

// Hash returns a bcrypt hash of plaintext with a fresh random salt, so two
// calls on the same input never return the same string.
func (h *Hasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), PasswordCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrPasswordTooLong
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches hashed. Malformed hashes simply
// do not match.
func (h *Hasher) Verify(plaintext, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}

// VerifyNothing burns the same bcrypt work as a failed Verify. Callers use it
// when there is no stored hash to compare against, so that "no such user"
// takes as long as "wrong password".
func (h *Hasher) VerifyNothing(plaintext string) {
	_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(plaintext))
}
