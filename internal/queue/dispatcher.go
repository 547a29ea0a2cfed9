package queue

import (
	"context"
	"fmt"

	"github.com/rei-kenpai/backend/internal/domain"
	"github.com/rei-kenpai/backend/internal/queue/client"
	"github.com/rei-kenpai/backend/internal/queue/task"
)

// Dispatcher enqueues transactional emails for asynchronous delivery.
// Delivery failures are retried by the queue, so an issued code always has a
// send either delivered or pending.
type Dispatcher struct{}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

func (d *Dispatcher) DispatchVerificationCode(ctx context.Context, email string, code string, purpose domain.VerificationPurpose) error {
	t, err := task.NewSendVerificationCodeTask(email, code, purpose)
	if err != nil {
		return fmt.Errorf("create send verification code task failed: %w", err)
	}

	if _, err := client.GetClient(ctx).EnqueueContext(ctx, t); err != nil {
		return fmt.Errorf("enqueue send verification code task failed: %w", err)
	}

	return nil
}

func (d *Dispatcher) DispatchChangeNotice(ctx context.Context, email string, notice string) error {
	t, err := task.NewSendChangeNoticeTask(email, notice)
	if err != nil {
		return fmt.Errorf("create send change notice task failed: %w", err)
	}

	if _, err := client.GetClient(ctx).EnqueueContext(ctx, t); err != nil {
		return fmt.Errorf("enqueue send change notice task failed: %w", err)
	}

	return nil
}
