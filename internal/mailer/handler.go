package mailer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/authkit/authkit-server/internal/apierrors"
	"github.com/authkit/authkit-server/internal/logger"
	"github.com/authkit/authkit-server/internal/model"
)

// Sender hands a rendered message to a delivery backend.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Handler consumes mail tasks in the worker process.
type Handler struct {
	sender      Sender
	frontendURL string
	logger      *logger.Logger
}

func NewHandler(sender Sender, frontendURL string, logger *logger.Logger) *Handler {
	return &Handler{sender: sender, frontendURL: frontendURL, logger: logger}
}

func (h *Handler) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeOTP, h.HandleOTP)
	mux.HandleFunc(TypeReset, h.HandleReset)
}

func (h *Handler) HandleOTP(ctx context.Context, t *asynq.Task) error {
	var payload OTPPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	msg, err := renderOTP(payload.Address, payload.Code, int(model.OTPDuration.Minutes()))
	if err != nil {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	return h.send(ctx, msg)
}

func (h *Handler) HandleReset(ctx context.Context, t *asynq.Task) error {
	var payload ResetPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	link := resetLink(h.frontendURL, payload.Token)
	msg, err := renderReset(payload.Address, link, int(model.ResetDuration.Minutes()))
	if err != nil {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	return h.send(ctx, msg)
}

func (h *Handler) send(ctx context.Context, msg Message) error {
	if err := h.sender.Send(ctx, msg); err != nil {
		h.logger.Error("Mail worker: delivery failed",
			"kind", msg.Kind,
			"address", msg.To,
			"error", err.Error())
		return fmt.Errorf("failed to send %s email: %w: %w", msg.Kind, apierrors.ErrDeliveryFailed, err)
	}

	h.logger.Info("Mail worker: email sent",
		"kind", msg.Kind,
		"address", msg.To)

	return nil
}
