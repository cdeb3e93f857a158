package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/authkit/authkit-server/internal/config"
	"github.com/authkit/authkit-server/internal/logger"
	"github.com/authkit/authkit-server/internal/model"
)

const maxRetry = 5

var _ model.Mailer = (*Queue)(nil)

// enqueuer is the part of *asynq.Client the queue needs.
type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Queue implements model.Mailer by enqueueing delivery tasks. A task is only
// worth delivering while the secret it carries is live, so its deadline is
// the secret's lifetime.
type Queue struct {
	client enqueuer
	now    func() time.Time
	logger *logger.Logger
}

func NewQueue(client enqueuer, logger *logger.Logger) *Queue {
	return &Queue{client: client, now: time.Now, logger: logger}
}

func (q *Queue) SendOTP(ctx context.Context, address, code string) error {
	task, err := NewOTPTask(OTPPayload{Address: address, Code: code})
	if err != nil {
		return err
	}
	return q.enqueue(ctx, task, address, model.OTPDuration)
}

func (q *Queue) SendResetLink(ctx context.Context, address, token string) error {
	task, err := NewResetTask(ResetPayload{Address: address, Token: token})
	if err != nil {
		return err
	}
	return q.enqueue(ctx, task, address, model.ResetDuration)
}

func (q *Queue) enqueue(ctx context.Context, task *asynq.Task, address string, ttl time.Duration) error {
	info, err := q.client.EnqueueContext(ctx, task,
		asynq.Queue(queueCritical),
		asynq.MaxRetry(maxRetry),
		asynq.Deadline(q.now().Add(ttl)),
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue %s: %w", task.Type(), err)
	}

	q.logger.Debug("Mail queue: task enqueued",
		"type", task.Type(),
		"task_id", info.ID,
		"address", address)

	return nil
}

func redisOpt(cfg config.Redis) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

// NewClient creates the asynq client used by Queue.
func NewClient(cfg config.Redis) *asynq.Client {
	return asynq.NewClient(redisOpt(cfg))
}

// NewServer creates the asynq server that runs Handler.
func NewServer(cfg config.Redis, concurrency int, logger *logger.Logger) *asynq.Server {
	if concurrency <= 0 {
		concurrency = 10
	}

	return asynq.NewServer(
		redisOpt(cfg),
		asynq.Config{
			Concurrency: concurrency,
			Queues: map[string]int{
				queueCritical: 6,
				"default":     3,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				logger.Error("Mail worker: task failed",
					"type", task.Type(),
					"error", err.Error())
			}),
		},
	)
}
