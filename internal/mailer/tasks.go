// Package mailer delivers account emails through an asynq queue: the API
// process enqueues tasks, the worker renders and sends them.
package mailer

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// Task type names
const (
	TypeOTP   = "mail:otp"
	TypeReset = "mail:reset"
)

const queueCritical = "critical"

// OTPPayload carries a verification code to its owner.
type OTPPayload struct {
	Address string `json:"address"`
	Code    string `json:"code"`
}

// ResetPayload carries a raw reset token to its owner.
type ResetPayload struct {
	Address string `json:"address"`
	Token   string `json:"token"`
}

func NewOTPTask(payload OTPPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal otp payload: %w", err)
	}
	return asynq.NewTask(TypeOTP, data), nil
}

func NewResetTask(payload ResetPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal reset payload: %w", err)
	}
	return asynq.NewTask(TypeReset, data), nil
}
