package model

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// OTPDuration is how long an email verification code stays valid.
	OTPDuration = 15 * time.Minute
	// ResetDuration is how long a password reset token stays valid.
	ResetDuration = 30 * time.Minute
)

// UserStore defines persistence operations for users.
//
// Every method is a single-statement read or write of one row. Activate and
// ConsumeReset are conditional: they only apply while the secret they consume
// is still the one stored and still live, and return ErrConflict otherwise.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	CreateInactive(ctx context.Context, user NewUser) (User, error)
	UpdateOTP(ctx context.Context, email, code string, expiresAt time.Time) error
	Activate(ctx context.Context, email, code string, now time.Time) error
	UpdateResetToken(ctx context.Context, email, tokenHash string, expiresAt time.Time) error
	FindByValidResetToken(ctx context.Context, tokenHash string, now time.Time) (User, error)
	ConsumeReset(ctx context.Context, id uuid.UUID, tokenHash, passwordDigest string, now time.Time) error
}

// User represents a stored account with its pending secrets.
type User struct {
	ID             uuid.UUID  `json:"id"`
	Email          string     `json:"email"`
	PasswordDigest string     `json:"-"`
	Name           string     `json:"name"`
	Role           Role       `json:"role"`
	IsActive       bool       `json:"is_active"`
	OTPCode        *string    `json:"-"`
	OTPExpiresAt   *time.Time `json:"-"`
	ResetTokenHash *string    `json:"-"`
	ResetExpiresAt *time.Time `json:"-"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// HasLiveOTP reports whether the user holds an OTP that has not expired at now.
func (u User) HasLiveOTP(now time.Time) bool {
	return u.OTPCode != nil && u.OTPExpiresAt != nil && u.OTPExpiresAt.After(now)
}

// NewUser carries the fields required to create an unverified account.
type NewUser struct {
	ID             uuid.UUID
	Email          string
	PasswordDigest string
	Name           string
	Role           Role
	OTPCode        string
	OTPExpiresAt   time.Time
}

// RegisterParams is the raw registration input. Role is parsed with ParseRole;
// SecretKey is only consulted for RoleSuperAdmin.
type RegisterParams struct {
	Email     string
	Password  string
	Name      string
	Role      string
	SecretKey string
}

// Role is the privilege tier of an account.
type Role string

const (
	// RoleRegular is the default tier.
	RoleRegular Role = "REGULAR"
	// RoleAdmin is an administrative tier.
	RoleAdmin Role = "ADMIN"
	// RoleSuperAdmin is the highest tier; it requires the bootstrap secret.
	RoleSuperAdmin Role = "SUPERADMIN"
)

// ParseRole resolves user input into a Role. An empty string yields RoleRegular.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case "":
		return RoleRegular, nil
	case RoleRegular:
		return RoleRegular, nil
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleSuperAdmin:
		return RoleSuperAdmin, nil
	default:
		return "", ErrUnknownRole
	}
}
