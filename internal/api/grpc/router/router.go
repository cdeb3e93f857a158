package router

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/selector"
	"google.golang.org/grpc"

	"github.com/authkit/authkit-server/internal/api/grpc/authrpc"
	"github.com/authkit/authkit-server/internal/api/grpc/handler"
	"github.com/authkit/authkit-server/internal/api/grpc/middleware"
	"github.com/authkit/authkit-server/internal/logger"
	"github.com/authkit/authkit-server/internal/model"
)

// TokenService is what the router needs from the token layer: issuing pairs
// for handlers and resolving bearer tokens for authentication.
type TokenService interface {
	handler.TokenService
	middleware.TokenService
}

// Router wires the Auth service and its interceptors into a gRPC server.
type Router struct {
	accountService handler.AccountService
	tokenService   TokenService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// New creates new gRPC Router instance.
func New(
	accountService handler.AccountService,
	tokenService TokenService,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		accountService: accountService,
		tokenService:   tokenService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// requiresAuth selects the methods that need a bearer token.
func requiresAuth(_ context.Context, c interceptors.CallMeta) bool {
	return c.FullMethod() == authrpc.Auth_Me_FullMethodName
}

// Register builds the gRPC server with recovery, request logging and
// authentication interceptors and registers the Auth service on it.
func (r *Router) Register(opts ...grpc.ServerOption) *grpc.Server {
	logging := middleware.NewLogging(r.logger)
	recovery := middleware.NewRecovery(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokenService, r.contextManager, r.logger)

	opts = append(opts,
		grpc.ChainUnaryInterceptor(
			logging.HandleGRPC,
			recovery.UnaryInterceptor(),
			selector.UnaryServerInterceptor(
				auth.UnaryServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(requiresAuth),
			),
		),
	)

	s := grpc.NewServer(opts...)
	authrpc.RegisterAuthServer(s, handler.NewAuth(r.accountService, r.tokenService, r.contextManager, r.logger))

	return s
}
