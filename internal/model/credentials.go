package model

import (
	"context"
	"time"
)

// Hasher turns passwords into salted digests and checks them.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// Mailer delivers account secrets to their owner's address.
type Mailer interface {
	SendOTP(ctx context.Context, address, code string) error
	SendResetLink(ctx context.Context, address, token string) error
}

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock is a Clock backed by time.Now.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
