package rest

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/authkit/authkit-server/internal/api/authctx"
	"github.com/authkit/authkit-server/internal/apierrors"
	"github.com/authkit/authkit-server/internal/mocks"
	"github.com/authkit/authkit-server/internal/model"
	"github.com/authkit/authkit-server/internal/testutil"
)

func newTestRouter(t *testing.T, checks map[string]Check) (http.Handler, *mocks.AccountService, *mocks.TokenService) {
	accounts := mocks.NewAccountService(t)
	tokens := mocks.NewTokenService(t)
	h := NewRouter(RouterConfig{
		Accounts:       accounts,
		Tokens:         tokens,
		ContextManager: authctx.NewManager(),
		Checks:         checks,
		AllowedOrigins: []string{"http://localhost:3000"},
		Logger:         testutil.MakeNoopLogger(),
	})
	return h, accounts, tokens
}

func do(t *testing.T, h http.Handler, method, path string, body any, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestRouter_Register(t *testing.T) {
	t.Parallel()

	h, accounts, _ := newTestRouter(t, nil)
	id := uuid.New()
	accounts.On("Register", mock.Anything, model.RegisterParams{
		Email: "a@x.com", Password: "pw", Name: "A", Role: "ADMIN",
	}).Return(id, nil).Once()

	rec := do(t, h, http.MethodPost, "/auth/register",
		map[string]string{"email": "a@x.com", "password": "pw", "name": "A", "role": "ADMIN"}, nil)

	assert.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeBody[registerResponse](t, rec)
	assert.Equal(t, id.String(), resp.UserID)
	assert.NotEmpty(t, resp.Message)
}

func TestRouter_ErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   string
	}{
		{"duplicate", apierrors.ErrDuplicateEmail, http.StatusConflict, "duplicate_email"},
		{"forbidden", apierrors.ErrForbidden, http.StatusForbidden, "forbidden"},
		{"validation", apierrors.Validation("email is required"), http.StatusBadRequest, "validation_error"},
		{"internal", errors.New("db down"), http.StatusInternalServerError, "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h, accounts, _ := newTestRouter(t, nil)
			accounts.On("Register", mock.Anything, mock.Anything).Return(uuid.Nil, tt.err).Once()

			rec := do(t, h, http.MethodPost, "/auth/register", map[string]string{"email": "a@x.com"}, nil)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantKind, decodeBody[errorResponse](t, rec).Error)
		})
	}
}

func TestRouter_MalformedBody(t *testing.T) {
	t.Parallel()

	h, _, _ := newTestRouter(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_error", decodeBody[errorResponse](t, rec).Error)
}

func TestRouter_VerifyOTP(t *testing.T) {
	t.Parallel()

	h, accounts, _ := newTestRouter(t, nil)
	accounts.On("VerifyOTP", mock.Anything, "a@x.com", "123456").Return(nil).Once()
	accounts.On("VerifyOTP", mock.Anything, "a@x.com", "000000").Return(apierrors.ErrInvalidOrExpiredOTP).Once()

	rec := do(t, h, http.MethodPost, "/auth/verify-otp", map[string]string{"email": "a@x.com", "otp": "123456"}, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodPost, "/auth/verify-otp", map[string]string{"email": "a@x.com", "otp": "000000"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid_or_expired_otp", decodeBody[errorResponse](t, rec).Error)
}

func TestRouter_Login(t *testing.T) {
	t.Parallel()

	h, accounts, tokens := newTestRouter(t, nil)
	user := model.User{ID: uuid.New(), Email: "a@x.com", PasswordDigest: "digest", Role: model.RoleAdmin, IsActive: true}
	accounts.On("Login", mock.Anything, "a@x.com", "pw").Return(user, nil).Once()
	tokens.On("Issue", mock.Anything, user).Return(model.TokenPair{AccessToken: "acc", RefreshToken: "ref"}, nil).Once()

	rec := do(t, h, http.MethodPost, "/auth/login", map[string]string{"email": "a@x.com", "password": "pw"}, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[loginResponse](t, rec)
	assert.Equal(t, "acc", resp.AccessToken)
	assert.Equal(t, "ref", resp.RefreshToken)
	assert.Equal(t, user.ID.String(), resp.User.ID)
	assert.NotContains(t, rec.Body.String(), "digest")
}

func TestRouter_LoginNotVerified(t *testing.T) {
	t.Parallel()

	h, accounts, _ := newTestRouter(t, nil)
	accounts.On("Login", mock.Anything, "a@x.com", "pw").Return(model.User{}, apierrors.ErrEmailNotVerified).Once()

	rec := do(t, h, http.MethodPost, "/auth/login", map[string]string{"email": "a@x.com", "password": "pw"}, nil)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "email_not_verified", decodeBody[errorResponse](t, rec).Error)
}

func TestRouter_Refresh(t *testing.T) {
	t.Parallel()

	h, _, tokens := newTestRouter(t, nil)
	tokens.On("Refresh", mock.Anything, "ref").Return(model.TokenPair{AccessToken: "a2", RefreshToken: "r2"}, nil).Once()

	rec := do(t, h, http.MethodPost, "/auth/refresh", map[string]string{"refreshToken": "ref"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a2", decodeBody[tokenResponse](t, rec).AccessToken)

	rec = do(t, h, http.MethodPost, "/auth/refresh", map[string]string{}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "missing_token", decodeBody[errorResponse](t, rec).Error)
}

func TestRouter_Me(t *testing.T) {
	t.Parallel()

	h, accounts, tokens := newTestRouter(t, nil)
	user := model.User{ID: uuid.New(), Email: "a@x.com", Role: model.RoleRegular, IsActive: true}
	tokens.On("GetUserID", mock.Anything, "good").Return(user.ID, nil).Once()
	tokens.On("GetUserID", mock.Anything, "bad").Return(uuid.Nil, errors.New("expired")).Once()
	accounts.On("GetByID", mock.Anything, user.ID).Return(user, nil).Once()

	rec := do(t, h, http.MethodGet, "/auth/me", nil, map[string]string{"Authorization": "Bearer good"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a@x.com", decodeBody[userView](t, rec).Email)

	rec = do(t, h, http.MethodGet, "/auth/me", nil, map[string]string{"Authorization": "Bearer bad"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid_or_expired_token", decodeBody[errorResponse](t, rec).Error)

	rec = do(t, h, http.MethodGet, "/auth/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "missing_token", decodeBody[errorResponse](t, rec).Error)
}

func TestRouter_PasswordReset(t *testing.T) {
	t.Parallel()

	h, accounts, _ := newTestRouter(t, nil)
	accounts.On("InitiatePasswordReset", mock.Anything, "a@x.com").Return(nil).Once()
	accounts.On("InitiatePasswordReset", mock.Anything, "ghost@x.com").Return(apierrors.ErrNotFound).Once()
	accounts.On("ResetPassword", mock.Anything, "tok", "new").Return(nil).Once()
	accounts.On("ResetPassword", mock.Anything, "old", "new").Return(apierrors.ErrInvalidOrExpiredToken).Once()

	rec := do(t, h, http.MethodPost, "/user/reset-password-request", map[string]string{"email": "a@x.com"}, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodPost, "/user/reset-password-request", map[string]string{"email": "ghost@x.com"}, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodPost, "/user/reset-password", map[string]string{"token": "tok", "newPassword": "new"}, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodPost, "/user/reset-password", map[string]string{"token": "old", "newPassword": "new"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_CORSPreflight(t *testing.T) {
	t.Parallel()

	h, _, _ := newTestRouter(t, nil)
	req := httptest.NewRequest(http.MethodOptions, "/auth/login", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
