package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/authkit/authkit-server/internal/apierrors"
	"github.com/authkit/authkit-server/internal/logger"
	"github.com/authkit/authkit-server/internal/model"
)

// AccountConfig holds the deployment settings the account service reads.
type AccountConfig struct {
	// SuperAdminSecret gates SUPERADMIN registration. Empty disables it.
	SuperAdminSecret string
	// HideUnknownResetEmail makes reset requests for unknown addresses succeed silently.
	HideUnknownResetEmail bool
}

// Account drives the user lifecycle: registration, email verification,
// login and password reset.
type Account struct {
	store    model.UserStore
	hasher   model.Hasher
	mailer   model.Mailer
	clock    model.Clock
	newOTP   secretGenerator
	newReset secretGenerator
	config   AccountConfig
	logger   *logger.Logger
}

func NewAccount(
	store model.UserStore,
	hasher model.Hasher,
	mailer model.Mailer,
	clock model.Clock,
	logger *logger.Logger,
	config AccountConfig,
) *Account {
	return &Account{
		store:    store,
		hasher:   hasher,
		mailer:   mailer,
		clock:    clock,
		newOTP:   generateOTP,
		newReset: generateResetToken,
		config:   config,
		logger:   logger,
	}
}

// Register creates an unverified account and mails it a verification code.
func (a *Account) Register(ctx context.Context, params model.RegisterParams) (uuid.UUID, error) {
	email, err := normalizeEmail(params.Email)
	if err != nil {
		return uuid.Nil, err
	}

	a.logger.Debug("Account service: starting registration",
		"email", email)

	if params.Password == "" {
		return uuid.Nil, apierrors.Validation("password is required")
	}

	role, err := model.ParseRole(params.Role)
	if err != nil {
		return uuid.Nil, apierrors.Validation(fmt.Sprintf("unknown role %q", params.Role))
	}

	if role == model.RoleSuperAdmin && !a.superAdminAllowed(params.SecretKey) {
		a.logger.Warn("Account service: rejected super admin registration",
			"email", email)
		return uuid.Nil, apierrors.ErrForbidden
	}

	digest, err := a.hasher.Hash(params.Password)
	if err != nil {
		a.logger.Error("Account service: failed to hash password",
			"email", email,
			"error", err.Error())
		return uuid.Nil, fmt.Errorf("failed to hash password: %w", err)
	}

	code, err := a.newOTP()
	if err != nil {
		return uuid.Nil, err
	}

	now := a.clock.Now()
	user, err := a.store.CreateInactive(ctx, model.NewUser{
		ID:             uuid.New(),
		Email:          email,
		PasswordDigest: digest,
		Name:           strings.TrimSpace(params.Name),
		Role:           role,
		OTPCode:        code,
		OTPExpiresAt:   now.Add(model.OTPDuration),
	})
	if err != nil {
		if errors.Is(err, model.ErrDuplicateEmail) {
			a.logger.Info("Account service: email already registered",
				"email", email)
			return uuid.Nil, apierrors.ErrDuplicateEmail
		}
		a.logger.Error("Account service: failed to create user",
			"email", email,
			"error", err.Error())
		return uuid.Nil, fmt.Errorf("failed to create user: %w", err)
	}

	a.sendOTP(ctx, email, code)

	a.logger.Info("Account service: user registered",
		"email", email,
		"user_id", user.ID,
		"role", role)

	return user.ID, nil
}

// VerifyOTP activates the account when code is its current, unexpired OTP.
func (a *Account) VerifyOTP(ctx context.Context, email, code string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := a.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return apierrors.ErrInvalidOrExpiredOTP
		}
		return fmt.Errorf("failed to get user by email: %w", err)
	}

	now := a.clock.Now()
	if user.IsActive || !user.HasLiveOTP(now) ||
		subtle.ConstantTimeCompare([]byte(*user.OTPCode), []byte(code)) != 1 {
		a.logger.Info("Account service: otp rejected",
			"email", email,
			"user_id", user.ID)
		return apierrors.ErrInvalidOrExpiredOTP
	}

	if err := a.store.Activate(ctx, email, code, now); err != nil {
		if errors.Is(err, model.ErrConflict) {
			return apierrors.ErrInvalidOrExpiredOTP
		}
		a.logger.Error("Account service: failed to activate user",
			"email", email,
			"error", err.Error())
		return fmt.Errorf("failed to activate user: %w", err)
	}

	a.logger.Info("Account service: email verified",
		"email", email,
		"user_id", user.ID)

	return nil
}

// Login checks the password and returns the active user. An inactive account
// gets a fresh OTP mailed and ErrEmailNotVerified.
func (a *Account) Login(ctx context.Context, email, password string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := a.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, apierrors.ErrInvalidCredentials
		}
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if !a.hasher.Verify(password, user.PasswordDigest) {
		a.logger.Info("Account service: wrong password",
			"email", email)
		return model.User{}, apierrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		code, err := a.newOTP()
		if err != nil {
			return model.User{}, err
		}
		err = a.store.UpdateOTP(ctx, email, code, a.clock.Now().Add(model.OTPDuration))
		switch {
		case errors.Is(err, model.ErrNotFound):
			// Verified between the read above and the reissue.
			user, err = a.store.GetByEmail(ctx, email)
			if err != nil {
				return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
			}
			if !user.IsActive {
				return model.User{}, apierrors.ErrEmailNotVerified
			}
		case err != nil:
			a.logger.Error("Account service: failed to reissue otp",
				"email", email,
				"error", err.Error())
			return model.User{}, fmt.Errorf("failed to update otp: %w", err)
		default:
			a.sendOTP(ctx, email, code)
			return model.User{}, apierrors.ErrEmailNotVerified
		}
	}

	a.logger.Info("Account service: user logged in",
		"email", email,
		"user_id", user.ID)

	return user, nil
}

// InitiatePasswordReset stores a new reset token for email and mails the link.
func (a *Account) InitiatePasswordReset(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return apierrors.Validation("email is required")
	}

	if _, err := a.store.GetByEmail(ctx, email); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return a.unknownResetEmail(email)
		}
		return fmt.Errorf("failed to get user by email: %w", err)
	}

	token, err := a.newReset()
	if err != nil {
		return err
	}

	expiresAt := a.clock.Now().Add(model.ResetDuration)
	if err := a.store.UpdateResetToken(ctx, email, hashResetToken(token), expiresAt); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return a.unknownResetEmail(email)
		}
		a.logger.Error("Account service: failed to store reset token",
			"email", email,
			"error", err.Error())
		return fmt.Errorf("failed to update reset token: %w", err)
	}

	if err := a.mailer.SendResetLink(ctx, email, token); err != nil {
		a.logger.Error("Account service: failed to send reset link",
			"email", email,
			"error", err.Error())
	}

	a.logger.Info("Account service: password reset requested",
		"email", email)

	return nil
}

// ResetPassword replaces the password of the account holding token.
func (a *Account) ResetPassword(ctx context.Context, token, newPassword string) error {
	if newPassword == "" {
		return apierrors.Validation("new password is required")
	}
	if token == "" {
		return apierrors.ErrInvalidOrExpiredToken
	}

	tokenHash := hashResetToken(token)
	now := a.clock.Now()

	user, err := a.store.FindByValidResetToken(ctx, tokenHash, now)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return apierrors.ErrInvalidOrExpiredToken
		}
		return fmt.Errorf("failed to find user by reset token: %w", err)
	}

	digest, err := a.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := a.store.ConsumeReset(ctx, user.ID, tokenHash, digest, now); err != nil {
		if errors.Is(err, model.ErrConflict) {
			return apierrors.ErrInvalidOrExpiredToken
		}
		a.logger.Error("Account service: failed to consume reset token",
			"user_id", user.ID,
			"error", err.Error())
		return fmt.Errorf("failed to reset password: %w", err)
	}

	a.logger.Info("Account service: password reset",
		"user_id", user.ID)

	return nil
}

// GetByID returns the user with id.
func (a *Account) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	user, err := a.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, apierrors.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

func (a *Account) unknownResetEmail(email string) error {
	a.logger.Info("Account service: reset requested for unknown email",
		"email", email)
	if a.config.HideUnknownResetEmail {
		return nil
	}
	return apierrors.ErrNotFound
}

func (a *Account) superAdminAllowed(secret string) bool {
	if a.config.SuperAdminSecret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(secret), []byte(a.config.SuperAdminSecret)) == 1
}

// sendOTP mails code on a best-effort basis; delivery errors are only logged.
func (a *Account) sendOTP(ctx context.Context, email, code string) {
	if err := a.mailer.SendOTP(ctx, email, code); err != nil {
		a.logger.Error("Account service: failed to send otp",
			"email", email,
			"error", err.Error())
	}
}

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", apierrors.Validation("email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", apierrors.Validation("email is malformed")
	}
	return email, nil
}
