package handler

import (
	"context"

	"github.com/google/uuid"

	"github.com/authkit/authkit-server/internal/api/grpc/authrpc"
	"github.com/authkit/authkit-server/internal/apierrors"
	"github.com/authkit/authkit-server/internal/logger"
	"github.com/authkit/authkit-server/internal/model"
)

// AccountService defines the account lifecycle operations.
type AccountService interface {
	Register(ctx context.Context, params model.RegisterParams) (uuid.UUID, error)
	VerifyOTP(ctx context.Context, email, code string) error
	Login(ctx context.Context, email, password string) (model.User, error)
	InitiatePasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	GetByID(ctx context.Context, id uuid.UUID) (model.User, error)
}

// TokenService defines token issue and refresh operations.
type TokenService interface {
	Issue(ctx context.Context, user model.User) (model.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error)
}

var _ authrpc.AuthServer = (*Auth)(nil)

// Auth handles gRPC endpoints for the account lifecycle.
type Auth struct {
	accountService AccountService
	tokenService   TokenService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(accountService AccountService, tokenService TokenService, contextManager model.ContextManager, logger *logger.Logger) *Auth {
	return &Auth{
		accountService: accountService,
		tokenService:   tokenService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Register creates an unverified account.
func (h *Auth) Register(ctx context.Context, req *authrpc.RegisterRequest) (*authrpc.RegisterResponse, error) {
	h.logger.Debug("Auth handler: processing registration request",
		"email", req.Email)

	id, err := h.accountService.Register(ctx, model.RegisterParams{
		Email:     req.Email,
		Password:  req.Password,
		Name:      req.Name,
		Role:      req.Role,
		SecretKey: req.SecretKey,
	})
	if err != nil {
		h.logger.Error("Auth handler: registration failed",
			"email", req.Email,
			"error", err.Error())
		return nil, handleError(err)
	}

	return &authrpc.RegisterResponse{
		UserID:  id.String(),
		Message: "User registered. Please verify your email with the OTP sent.",
	}, nil
}

// VerifyOTP activates an account.
func (h *Auth) VerifyOTP(ctx context.Context, req *authrpc.VerifyOTPRequest) (*authrpc.MessageResponse, error) {
	if err := h.accountService.VerifyOTP(ctx, req.Email, req.OTP); err != nil {
		h.logger.Info("Auth handler: otp verification failed",
			"email", req.Email,
			"error", err.Error())
		return nil, handleError(err)
	}

	return &authrpc.MessageResponse{Message: "Email verified successfully"}, nil
}

// Login authenticates a user and issues a token pair.
func (h *Auth) Login(ctx context.Context, req *authrpc.LoginRequest) (*authrpc.LoginResponse, error) {
	user, err := h.accountService.Login(ctx, req.Email, req.Password)
	if err != nil {
		h.logger.Info("Auth handler: login failed",
			"email", req.Email,
			"error", err.Error())
		return nil, handleError(err)
	}

	pair, err := h.tokenService.Issue(ctx, user)
	if err != nil {
		h.logger.Error("Auth handler: failed to issue tokens",
			"user_id", user.ID,
			"error", err.Error())
		return nil, handleError(err)
	}

	return &authrpc.LoginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         ToUser(user),
	}, nil
}

// Refresh exchanges a refresh token for a new pair.
func (h *Auth) Refresh(ctx context.Context, req *authrpc.RefreshRequest) (*authrpc.TokenResponse, error) {
	if req.RefreshToken == "" {
		return nil, handleError(apierrors.ErrMissingAuthorizationToken)
	}

	pair, err := h.tokenService.Refresh(ctx, req.RefreshToken)
	if err != nil {
		h.logger.Info("Auth handler: refresh failed",
			"error", err.Error())
		return nil, handleError(err)
	}

	return &authrpc.TokenResponse{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}, nil
}

// Me returns the caller's account. Requires authentication.
func (h *Auth) Me(ctx context.Context, _ *authrpc.MeRequest) (*authrpc.User, error) {
	userID, ok := h.contextManager.GetUserIDFromContext(ctx)
	if !ok {
		return nil, handleError(apierrors.ErrMissingAuthorizationToken)
	}

	user, err := h.accountService.GetByID(ctx, userID)
	if err != nil {
		return nil, handleError(err)
	}

	out := ToUser(user)
	return &out, nil
}

// RequestPasswordReset mails a reset link.
func (h *Auth) RequestPasswordReset(ctx context.Context, req *authrpc.PasswordResetRequest) (*authrpc.MessageResponse, error) {
	if err := h.accountService.InitiatePasswordReset(ctx, req.Email); err != nil {
		h.logger.Info("Auth handler: password reset request failed",
			"email", req.Email,
			"error", err.Error())
		return nil, handleError(err)
	}

	return &authrpc.MessageResponse{Message: "Password reset link sent to email"}, nil
}

// ResetPassword sets a new password using a reset token.
func (h *Auth) ResetPassword(ctx context.Context, req *authrpc.ResetPasswordRequest) (*authrpc.MessageResponse, error) {
	if err := h.accountService.ResetPassword(ctx, req.Token, req.NewPassword); err != nil {
		h.logger.Info("Auth handler: password reset failed",
			"error", err.Error())
		return nil, handleError(err)
	}

	return &authrpc.MessageResponse{Message: "Password reset successfully"}, nil
}

// ToUser maps a stored user to its public view.
func ToUser(u model.User) authrpc.User {
	return authrpc.User{
		ID:        u.ID.String(),
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}
