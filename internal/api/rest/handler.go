package rest

import (
	"context"
	"net/http"

	"github.com/google/uuid"

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

// TokenService defines token operations used by the gateway.
type TokenService interface {
	Issue(ctx context.Context, user model.User) (model.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error)
	GetUserID(ctx context.Context, token string) (uuid.UUID, error)
}

// AuthHandler serves the account endpoints used by the web frontend.
type AuthHandler struct {
	accounts       AccountService
	tokens         TokenService
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewAuthHandler(accounts AccountService, tokens TokenService, contextManager model.ContextManager, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{accounts: accounts, tokens: tokens, contextManager: contextManager, logger: logger}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	id, err := h.accounts.Register(r.Context(), model.RegisterParams{
		Email:     req.Email,
		Password:  req.Password,
		Name:      req.Name,
		Role:      req.Role,
		SecretKey: req.SecretKey,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, registerResponse{Message: "OTP sent to your email", UserID: id.String()})
}

func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.accounts.VerifyOTP(r.Context(), req.Email, req.OTP); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Email verified successfully"})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	pair, err := h.tokens.Issue(r.Context(), user)
	if err != nil {
		h.logger.Error("HTTP handler: failed to issue tokens",
			"user_id", user.ID,
			"error", err.Error())
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         toUserView(user),
	})
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.RefreshToken == "" {
		writeError(w, apierrors.ErrMissingAuthorizationToken)
		return
	}

	pair, err := h.tokens.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, apierrors.ErrMissingAuthorizationToken)
		return
	}

	user, err := h.accounts.GetByID(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserView(user))
}

func (h *AuthHandler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.accounts.InitiatePasswordReset(r.Context(), req.Email); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Password reset link sent to email"})
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.accounts.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Password reset successfully"})
}
