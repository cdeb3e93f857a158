package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/authkit/authkit-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

const uniqueViolation = "23505"

const userColumns = `id, email, password_digest, name, role, is_active,
	otp_code, otp_expires_at, reset_token_hash, reset_expires_at, created_at, updated_at`

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func scanUser(row pgx.Row) (model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID, &user.Email, &user.PasswordDigest, &user.Name, &user.Role, &user.IsActive,
		&user.OTPCode, &user.OTPExpiresAt, &user.ResetTokenHash, &user.ResetExpiresAt,
		&user.CreatedAt, &user.UpdatedAt,
	)
	return user, err
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

func (r *UserRepository) CreateInactive(ctx context.Context, user model.NewUser) (model.User, error) {
	query := `INSERT INTO users (id, email, password_digest, name, role, is_active, otp_code, otp_expires_at)
			  VALUES ($1, $2, $3, $4, $5, FALSE, $6, $7)
			  RETURNING ` + userColumns

	saved, err := scanUser(r.db.QueryRow(ctx, query,
		user.ID, user.Email, user.PasswordDigest, user.Name, user.Role, user.OTPCode, user.OTPExpiresAt,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return model.User{}, model.ErrDuplicateEmail
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return saved, nil
}

// UpdateOTP replaces the pending OTP of an unverified user. Active users are
// left untouched and reported as ErrNotFound.
func (r *UserRepository) UpdateOTP(ctx context.Context, email, code string, expiresAt time.Time) error {
	query := `UPDATE users SET otp_code = $2, otp_expires_at = $3, updated_at = NOW()
	WHERE email = $1 AND is_active = FALSE`

	tag, err := r.db.Exec(ctx, query, email, code, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to update otp: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

// Activate flips is_active only while code is still the stored, unexpired OTP.
func (r *UserRepository) Activate(ctx context.Context, email, code string, now time.Time) error {
	query := `UPDATE users
			  SET is_active = TRUE, otp_code = NULL, otp_expires_at = NULL, updated_at = NOW()
			  WHERE email = $1 AND otp_code = $2 AND otp_expires_at > $3`

	tag, err := r.db.Exec(ctx, query, email, code, now)
	if err != nil {
		return fmt.Errorf("failed to activate user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrConflict
	}

	return nil
}

func (r *UserRepository) UpdateResetToken(ctx context.Context, email, tokenHash string, expiresAt time.Time) error {
	query := `UPDATE users SET reset_token_hash = $2, reset_expires_at = $3, updated_at = NOW() WHERE email = $1`

	tag, err := r.db.Exec(ctx, query, email, tokenHash, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to update reset token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *UserRepository) FindByValidResetToken(ctx context.Context, tokenHash string, now time.Time) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE reset_token_hash = $1 AND reset_expires_at > $2`

	user, err := scanUser(r.db.QueryRow(ctx, query, tokenHash, now))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to find user by reset token: %w", err)
	}

	return user, nil
}

// ConsumeReset stores the new digest and clears the reset pair in one
// statement, guarded by the token still being stored and live.
func (r *UserRepository) ConsumeReset(ctx context.Context, id uuid.UUID, tokenHash, passwordDigest string, now time.Time) error {
	query := `UPDATE users
			  SET password_digest = $3, reset_token_hash = NULL, reset_expires_at = NULL, updated_at = NOW()
			  WHERE id = $1 AND reset_token_hash = $2 AND reset_expires_at > $4`

	tag, err := r.db.Exec(ctx, query, id, tokenHash, passwordDigest, now)
	if err != nil {
		return fmt.Errorf("failed to consume reset token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrConflict
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
