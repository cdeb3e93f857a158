package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/spf13/cobra"

	"github.com/authkit/authkit-server/internal/config"
	"github.com/authkit/authkit-server/internal/logger"
	"github.com/authkit/authkit-server/internal/mailer"
	storage "github.com/authkit/authkit-server/internal/storage/minio"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Deliver queued verification and reset mail",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
		defer stop()

		cfg, err := config.NewConfig()
		if err != nil {
			return err
		}
		return work(ctx, cfg, logger.New(cfg.LogLevel, cfg.LogFormat))
	},
}

func work(ctx context.Context, cfg *config.Config, logger *logger.Logger) error {
	sender, err := newSender(ctx, cfg)
	if err != nil {
		return err
	}

	srv := mailer.NewServer(cfg.Redis, cfg.Mail.Concurrency, logger)
	mux := asynq.NewServeMux()
	mailer.NewHandler(sender, cfg.Mail.FrontendURL, logger).RegisterHandlers(mux)

	if err := srv.Start(mux); err != nil {
		return fmt.Errorf("failed to start mail worker: %w", err)
	}
	logger.Info("Mail worker started", "driver", cfg.Mail.Driver, "concurrency", cfg.Mail.Concurrency)

	<-ctx.Done()
	logger.Info("shutting down mail worker")
	srv.Shutdown()
	logger.Info("mail worker stopped")
	return nil
}

// newSender picks the delivery backend named by MAIL_DRIVER.
func newSender(ctx context.Context, cfg *config.Config) (mailer.Sender, error) {
	switch cfg.Mail.Driver {
	case "smtp":
		return mailer.NewSMTPSender(cfg.SMTP, cfg.Mail.From)
	case "bucket":
		client, err := storage.New(ctx, cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize storage client: %w", err)
		}
		return mailer.NewBucketSender(client), nil
	default:
		return nil, fmt.Errorf("unknown mail driver %q", cfg.Mail.Driver)
	}
}
