// Package apierrors defines the error kinds returned by account operations
// together with their transport status codes.
package apierrors

import (
	"errors"
	"net/http"

	"google.golang.org/grpc/codes"
)

// APIError is an error kind that is safe to show to API callers.
type APIError struct {
	Kind       string
	Message    string
	GRPCCode   codes.Code
	HTTPStatus int
}

func (e *APIError) Error() string {
	return e.Message
}

var (
	ErrValidation = &APIError{
		Kind: "validation_error", Message: "validation failed",
		GRPCCode: codes.InvalidArgument, HTTPStatus: http.StatusBadRequest,
	}
	ErrDuplicateEmail = &APIError{
		Kind: "duplicate_email", Message: "email already exists",
		GRPCCode: codes.AlreadyExists, HTTPStatus: http.StatusConflict,
	}
	ErrForbidden = &APIError{
		Kind: "forbidden", Message: "invalid secret key for super admin",
		GRPCCode: codes.PermissionDenied, HTTPStatus: http.StatusForbidden,
	}
	ErrInvalidCredentials = &APIError{
		Kind: "invalid_credentials", Message: "invalid credentials",
		GRPCCode: codes.Unauthenticated, HTTPStatus: http.StatusUnauthorized,
	}
	ErrEmailNotVerified = &APIError{
		Kind: "email_not_verified", Message: "email not verified, a new OTP has been sent",
		GRPCCode: codes.FailedPrecondition, HTTPStatus: http.StatusForbidden,
	}
	ErrInvalidOrExpiredOTP = &APIError{
		Kind: "invalid_or_expired_otp", Message: "invalid or expired OTP",
		GRPCCode: codes.Unauthenticated, HTTPStatus: http.StatusUnauthorized,
	}
	ErrInvalidOrExpiredToken = &APIError{
		Kind: "invalid_or_expired_token", Message: "invalid or expired token",
		GRPCCode: codes.Unauthenticated, HTTPStatus: http.StatusUnauthorized,
	}
	ErrNotFound = &APIError{
		Kind: "not_found", Message: "user not found",
		GRPCCode: codes.NotFound, HTTPStatus: http.StatusNotFound,
	}
	ErrDeliveryFailed = &APIError{
		Kind: "delivery_failed", Message: "failed to send email",
		GRPCCode: codes.Unavailable, HTTPStatus: http.StatusBadGateway,
	}
	ErrMissingAuthorizationToken = &APIError{
		Kind: "missing_token", Message: "authorization token is required",
		GRPCCode: codes.Unauthenticated, HTTPStatus: http.StatusUnauthorized,
	}
	ErrInternal = &APIError{
		Kind: "internal", Message: "internal server error",
		GRPCCode: codes.Internal, HTTPStatus: http.StatusInternalServerError,
	}
)

// Validation returns an ErrValidation-kind error carrying a specific message.
func Validation(message string) error {
	return &validationError{message: message}
}

type validationError struct {
	message string
}

func (e *validationError) Error() string { return e.message }

func (e *validationError) Is(target error) bool { return target == ErrValidation }

func (e *validationError) As(target any) bool {
	p, ok := target.(**APIError)
	if !ok {
		return false
	}
	*p = &APIError{
		Kind:       ErrValidation.Kind,
		Message:    e.message,
		GRPCCode:   ErrValidation.GRPCCode,
		HTTPStatus: ErrValidation.HTTPStatus,
	}
	return true
}

// From returns the APIError carried by err, or ErrInternal when err is not
// meant for callers.
func From(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return ErrInternal
}
