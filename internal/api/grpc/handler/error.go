package handler

import (
	"google.golang.org/grpc/status"

	"github.com/authkit/authkit-server/internal/apierrors"
)

// handleError converts a service error into a gRPC status. Errors that are not
// API errors are reported as internal without detail.
func handleError(err error) error {
	apiErr := apierrors.From(err)
	return status.Error(apiErr.GRPCCode, apiErr.Message)
}
