package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/authkit/authkit-server/internal/api/authctx"
	"github.com/authkit/authkit-server/internal/api/grpc/router"
	grpcServer "github.com/authkit/authkit-server/internal/api/grpc/server"
	"github.com/authkit/authkit-server/internal/api/rest"
	"github.com/authkit/authkit-server/internal/config"
	"github.com/authkit/authkit-server/internal/logger"
	"github.com/authkit/authkit-server/internal/mailer"
	"github.com/authkit/authkit-server/internal/model"
	"github.com/authkit/authkit-server/internal/password"
	"github.com/authkit/authkit-server/internal/repository/postgres"
	"github.com/authkit/authkit-server/internal/server"
	"github.com/authkit/authkit-server/internal/service"
	"github.com/authkit/authkit-server/internal/token"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the gRPC API and the HTTP gateway",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
		defer stop()

		cfg, err := config.NewConfig()
		if err != nil {
			return err
		}
		return serve(ctx, cfg, logger.New(cfg.LogLevel, cfg.LogFormat))
	},
}

func serve(ctx context.Context, cfg *config.Config, logger *logger.Logger) error {
	if cfg.JWT.UsesDevSecrets() {
		logger.Warn("JWT signing secrets use development defaults, set JWT_SECRET and JWT_REFRESH_SECRET")
	}

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer db.Close()

	queueClient := mailer.NewClient(cfg.Redis)
	defer queueClient.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	userRepo := postgres.NewUserRepository(db)
	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.RefreshSecret)

	accountService := service.NewAccount(
		userRepo,
		password.NewBcrypt(cfg.Auth.BcryptCost),
		mailer.NewQueue(queueClient, logger),
		model.SystemClock{},
		logger,
		service.AccountConfig{
			SuperAdminSecret:      cfg.Auth.SuperAdminSecret,
			HideUnknownResetEmail: cfg.Auth.HideUnknownResetEmail,
		},
	)
	tokenService := service.NewTokenService(tokenManager, userRepo, logger)
	ctxMgr := authctx.NewManager()

	grpcSrv := grpcServer.NewGRPCServer(
		router.New(accountService, tokenService, ctxMgr, logger).Register(),
		fmt.Sprintf(":%s", cfg.GRPC.Port),
	)
	httpSrv := rest.NewHTTPServer(rest.NewRouter(rest.RouterConfig{
		Accounts:       accountService,
		Tokens:         tokenService,
		ContextManager: ctxMgr,
		Checks: map[string]rest.Check{
			"postgres": db.Ping,
			"redis":    rest.RedisCheck(redisClient),
		},
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		Logger:         logger,
	}), fmt.Sprintf(":%s", cfg.HTTP.Port))

	logAppVersion()

	return runServers(ctx, []model.Server{grpcSrv, httpSrv}, server.NewSecurityLayer(cfg.GRPC), logger)
}

// runServers starts every server and stops them all on ctx cancellation or
// as soon as one of them fails to start. The first start error is returned.
func runServers(ctx context.Context, servers []model.Server, sl model.SecurityLayer, logger *logger.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		once     sync.Once
		startErr error
	)
	for _, s := range servers {
		wg.Add(1)
		go func(s model.Server) {
			defer wg.Done()
			logger.Info("Starting server on", "address", s.Address())
			if err := s.Start(sl); err != nil {
				logger.Error("failed to start server", "error", err, "address", s.Address())
				once.Do(func() { startErr = fmt.Errorf("server %s: %w", s.Address(), err) })
				cancel()
			}
		}(s)
	}

	<-ctx.Done()
	logger.Info("shutting down servers")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	for _, s := range servers {
		if err := s.Stop(shutdownCtx); err != nil {
			logger.Error("error during server shutdown", "error", err, "address", s.Address())
		}
	}

	wg.Wait()
	logger.Info("shutdown complete")
	return startErr
}
