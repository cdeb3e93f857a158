package handler

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/authkit/authkit-server/internal/api/grpc/authrpc"
	"github.com/authkit/authkit-server/internal/apierrors"
	"github.com/authkit/authkit-server/internal/mocks"
	"github.com/authkit/authkit-server/internal/model"
	"github.com/authkit/authkit-server/internal/testutil"
)

func newHandler(t *testing.T) (*Auth, *mocks.AccountService, *mocks.TokenService, *mocks.ContextManager) {
	svc := mocks.NewAccountService(t)
	tokens := mocks.NewTokenService(t)
	cm := mocks.NewContextManager(t)
	return NewAuth(svc, tokens, cm, testutil.MakeNoopLogger()), svc, tokens, cm
}

func codeOf(err error) codes.Code {
	st, _ := status.FromError(err)
	return st.Code()
}

func TestAuth_Register(t *testing.T) {
	t.Parallel()

	h, svc, _, _ := newHandler(t)
	id := uuid.New()
	params := model.RegisterParams{Email: "a@x.com", Password: "pw", Role: "ADMIN"}
	svc.On("Register", mock.Anything, params).Return(id, nil)

	out, err := h.Register(context.Background(), &authrpc.RegisterRequest{Email: "a@x.com", Password: "pw", Role: "ADMIN"})
	require.NoError(t, err)
	assert.Equal(t, id.String(), out.UserID)
}

func TestAuth_Register_Duplicate(t *testing.T) {
	t.Parallel()

	h, svc, _, _ := newHandler(t)
	svc.On("Register", mock.Anything, mock.Anything).Return(uuid.Nil, apierrors.ErrDuplicateEmail)

	out, err := h.Register(context.Background(), &authrpc.RegisterRequest{Email: "a@x.com", Password: "pw"})
	assert.Nil(t, out)
	assert.Equal(t, codes.AlreadyExists, codeOf(err))
}

func TestAuth_VerifyOTP(t *testing.T) {
	t.Parallel()

	h, svc, _, _ := newHandler(t)
	svc.On("VerifyOTP", mock.Anything, "a@x.com", "123456").Return(nil)
	svc.On("VerifyOTP", mock.Anything, "a@x.com", "000000").Return(apierrors.ErrInvalidOrExpiredOTP)

	out, err := h.VerifyOTP(context.Background(), &authrpc.VerifyOTPRequest{Email: "a@x.com", OTP: "123456"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Message)

	_, err = h.VerifyOTP(context.Background(), &authrpc.VerifyOTPRequest{Email: "a@x.com", OTP: "000000"})
	assert.Equal(t, codes.Unauthenticated, codeOf(err))
}

func TestAuth_Login(t *testing.T) {
	t.Parallel()

	h, svc, tokens, _ := newHandler(t)
	user := model.User{
		ID: uuid.New(), Email: "a@x.com", PasswordDigest: "$2a$10$secret",
		Role: model.RoleRegular, IsActive: true, CreatedAt: time.Now(),
	}
	svc.On("Login", mock.Anything, "a@x.com", "pw").Return(user, nil)
	tokens.On("Issue", mock.Anything, user).Return(model.TokenPair{AccessToken: "acc", RefreshToken: "ref"}, nil)

	out, err := h.Login(context.Background(), &authrpc.LoginRequest{Email: "a@x.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "acc", out.AccessToken)
	assert.Equal(t, "ref", out.RefreshToken)
	assert.Equal(t, user.ID.String(), out.User.ID)

	body, err := json.Marshal(out)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "$2a$10$secret")
}

func TestAuth_Login_NotVerified(t *testing.T) {
	t.Parallel()

	h, svc, _, _ := newHandler(t)
	svc.On("Login", mock.Anything, "a@x.com", "pw").Return(model.User{}, apierrors.ErrEmailNotVerified)

	out, err := h.Login(context.Background(), &authrpc.LoginRequest{Email: "a@x.com", Password: "pw"})
	assert.Nil(t, out)
	assert.Equal(t, codes.FailedPrecondition, codeOf(err))
}

func TestAuth_Refresh(t *testing.T) {
	t.Parallel()

	h, _, tokens, _ := newHandler(t)
	tokens.On("Refresh", mock.Anything, "ref").Return(model.TokenPair{AccessToken: "a2", RefreshToken: "r2"}, nil)

	out, err := h.Refresh(context.Background(), &authrpc.RefreshRequest{RefreshToken: "ref"})
	require.NoError(t, err)
	assert.Equal(t, "a2", out.AccessToken)

	_, err = h.Refresh(context.Background(), &authrpc.RefreshRequest{})
	assert.Equal(t, codes.Unauthenticated, codeOf(err))
}

func TestAuth_Me(t *testing.T) {
	t.Parallel()

	h, svc, _, cm := newHandler(t)
	id := uuid.New()
	cm.On("GetUserIDFromContext", mock.Anything).Return(id, true).Once()
	svc.On("GetByID", mock.Anything, id).Return(model.User{ID: id, Email: "a@x.com"}, nil)

	out, err := h.Me(context.Background(), &authrpc.MeRequest{})
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", out.Email)

	cm.On("GetUserIDFromContext", mock.Anything).Return(uuid.Nil, false).Once()
	_, err = h.Me(context.Background(), &authrpc.MeRequest{})
	assert.Equal(t, codes.Unauthenticated, codeOf(err))
}

func TestAuth_PasswordReset(t *testing.T) {
	t.Parallel()

	h, svc, _, _ := newHandler(t)
	svc.On("InitiatePasswordReset", mock.Anything, "ghost@x.com").Return(apierrors.ErrNotFound)
	svc.On("InitiatePasswordReset", mock.Anything, "a@x.com").Return(nil)
	svc.On("ResetPassword", mock.Anything, "tok", "new").Return(nil)
	svc.On("ResetPassword", mock.Anything, "old", "new").Return(apierrors.ErrInvalidOrExpiredToken)

	_, err := h.RequestPasswordReset(context.Background(), &authrpc.PasswordResetRequest{Email: "ghost@x.com"})
	assert.Equal(t, codes.NotFound, codeOf(err))

	_, err = h.RequestPasswordReset(context.Background(), &authrpc.PasswordResetRequest{Email: "a@x.com"})
	assert.NoError(t, err)

	_, err = h.ResetPassword(context.Background(), &authrpc.ResetPasswordRequest{Token: "tok", NewPassword: "new"})
	assert.NoError(t, err)

	_, err = h.ResetPassword(context.Background(), &authrpc.ResetPasswordRequest{Token: "old", NewPassword: "new"})
	assert.Equal(t, codes.Unauthenticated, codeOf(err))
}
