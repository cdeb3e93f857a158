package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/authkit/authkit-server/internal/apierrors"
	"github.com/authkit/authkit-server/internal/mocks"
	"github.com/authkit/authkit-server/internal/model"
	"github.com/authkit/authkit-server/internal/testutil"
	"github.com/authkit/authkit-server/internal/token"
)

func TestTokenService_Issue(t *testing.T) {
	ctx := context.Background()
	user := model.User{ID: uuid.New(), Email: "a@x.com", IsActive: true}

	manager := mocks.NewTokenManager(t)
	manager.On("GenerateAccessToken", user.ID, user.Email).Return("access", nil).Once()
	manager.On("GenerateRefreshToken", user.ID, user.Email).Return("refresh", nil).Once()

	svc := NewTokenService(manager, mocks.NewUserStore(t), testutil.MakeNoopLogger())

	pair, err := svc.Issue(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, model.TokenPair{AccessToken: "access", RefreshToken: "refresh"}, pair)
}

func TestTokenService_Issue_Error(t *testing.T) {
	user := model.User{ID: uuid.New(), Email: "a@x.com"}

	manager := mocks.NewTokenManager(t)
	manager.On("GenerateAccessToken", user.ID, user.Email).Return("", errors.New("sign failed"))

	svc := NewTokenService(manager, mocks.NewUserStore(t), testutil.MakeNoopLogger())

	_, err := svc.Issue(context.Background(), user)
	assert.Error(t, err)
}

func TestTokenService_Refresh(t *testing.T) {
	ctx := context.Background()
	active := model.User{ID: uuid.New(), Email: "a@x.com", IsActive: true}
	inactive := model.User{ID: uuid.New(), Email: "b@x.com"}

	tests := []struct {
		name    string
		setup   func(m *mocks.TokenManager, s *mocks.UserStore)
		wantErr error
	}{
		{
			name: "valid",
			setup: func(m *mocks.TokenManager, s *mocks.UserStore) {
				m.On("ParseRefreshToken", "rt").Return(active.ID, nil)
				s.On("GetByID", mock.Anything, active.ID).Return(active, nil)
				m.On("GenerateAccessToken", active.ID, active.Email).Return("access", nil)
				m.On("GenerateRefreshToken", active.ID, active.Email).Return("refresh", nil)
			},
		},
		{
			name: "bad token",
			setup: func(m *mocks.TokenManager, s *mocks.UserStore) {
				m.On("ParseRefreshToken", "rt").Return(uuid.Nil, errors.New("expired"))
			},
			wantErr: apierrors.ErrInvalidOrExpiredToken,
		},
		{
			name: "user gone",
			setup: func(m *mocks.TokenManager, s *mocks.UserStore) {
				m.On("ParseRefreshToken", "rt").Return(active.ID, nil)
				s.On("GetByID", mock.Anything, active.ID).Return(model.User{}, model.ErrNotFound)
			},
			wantErr: apierrors.ErrInvalidOrExpiredToken,
		},
		{
			name: "user inactive",
			setup: func(m *mocks.TokenManager, s *mocks.UserStore) {
				m.On("ParseRefreshToken", "rt").Return(inactive.ID, nil)
				s.On("GetByID", mock.Anything, inactive.ID).Return(inactive, nil)
			},
			wantErr: apierrors.ErrInvalidOrExpiredToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager := mocks.NewTokenManager(t)
			store := mocks.NewUserStore(t)
			tt.setup(manager, store)

			svc := NewTokenService(manager, store, testutil.MakeNoopLogger())
			pair, err := svc.Refresh(ctx, "rt")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "access", pair.AccessToken)
			assert.Equal(t, "refresh", pair.RefreshToken)
		})
	}
}

func TestTokenService_WithJWT(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewMemoryUserStore()
	user := model.User{ID: uuid.New(), Email: "a@x.com", IsActive: true}
	store.Put(user)

	svc := NewTokenService(token.NewJWT("access-secret", "refresh-secret"), store, testutil.MakeNoopLogger())

	pair, err := svc.Issue(ctx, user)
	require.NoError(t, err)

	id, err := svc.GetUserID(ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)

	_, err = svc.GetUserID(ctx, pair.RefreshToken)
	assert.Error(t, err)

	refreshed, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = svc.Refresh(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, apierrors.ErrInvalidOrExpiredToken)
}
