package rest

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/authkit/authkit-server/internal/api/authctx"
	"github.com/authkit/authkit-server/internal/password"
	"github.com/authkit/authkit-server/internal/service"
	"github.com/authkit/authkit-server/internal/testutil"
	"github.com/authkit/authkit-server/internal/token"
)

func TestFlow_RegisterVerifyLoginReset(t *testing.T) {
	t.Parallel()

	store := testutil.NewMemoryUserStore()
	mailer := testutil.NewRecordingMailer()
	clock := testutil.NewFixedClock(time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC))
	log := testutil.MakeNoopLogger()

	accounts := service.NewAccount(store, password.NewBcrypt(bcrypt.MinCost), mailer, clock, log, service.AccountConfig{})
	tokens := service.NewTokenService(token.NewJWT("access", "refresh"), store, log)
	h := NewRouter(RouterConfig{
		Accounts:       accounts,
		Tokens:         tokens,
		ContextManager: authctx.NewManager(),
		Logger:         log,
	})

	rec := do(t, h, http.MethodPost, "/auth/register",
		map[string]string{"email": "A@Example.com", "password": "p1", "role": "ADMIN"}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, h, http.MethodPost, "/auth/login", map[string]string{"email": "a@example.com", "password": "p1"}, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	code := mailer.LastOTP("a@example.com")
	require.Len(t, code, 6)

	rec = do(t, h, http.MethodPost, "/auth/verify-otp", map[string]string{"email": "a@example.com", "otp": code}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodPost, "/auth/verify-otp", map[string]string{"email": "a@example.com", "otp": code}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, h, http.MethodPost, "/auth/login", map[string]string{"email": "a@example.com", "password": "p1"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	login := decodeBody[loginResponse](t, rec)
	assert.True(t, login.User.IsActive)

	rec = do(t, h, http.MethodGet, "/auth/me", nil, map[string]string{"Authorization": "Bearer " + login.AccessToken})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a@example.com", decodeBody[userView](t, rec).Email)

	rec = do(t, h, http.MethodPost, "/auth/refresh", map[string]string{"refreshToken": login.RefreshToken}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodPost, "/user/reset-password-request", map[string]string{"email": "a@example.com"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resetToken := mailer.LastReset("a@example.com")
	require.NotEmpty(t, resetToken)

	rec = do(t, h, http.MethodPost, "/user/reset-password", map[string]string{"token": resetToken, "newPassword": "p2"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodPost, "/user/reset-password", map[string]string{"token": resetToken, "newPassword": "p3"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, h, http.MethodPost, "/auth/login", map[string]string{"email": "a@example.com", "password": "p1"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, h, http.MethodPost, "/auth/login", map[string]string{"email": "a@example.com", "password": "p2"}, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
