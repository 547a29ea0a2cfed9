package processor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/rei-kenpai/backend/internal/queue/task"
	"github.com/rei-kenpai/backend/internal/worker"
)

type sendVerificationCodeProcessor struct {
	workers *worker.Workers
}

func NewSendVerificationCodeProcessor(workers *worker.Workers) *sendVerificationCodeProcessor {
	return &sendVerificationCodeProcessor{
		workers: workers,
	}
}

func (p *sendVerificationCodeProcessor) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var data task.SendVerificationCode
	err := json.Unmarshal(t.Payload(), &data)
	if err != nil {
		return fmt.Errorf("process send verification code task json unmarshal failed: %w", err)
	}

	if err = p.workers.EmailSender.SendVerificationCodeEmail(ctx, data.Email, data.Code, data.Purpose); err != nil {
		return fmt.Errorf("send verification code email failed: %w", err)
	}

	return nil
}

type sendChangeNoticeProcessor struct {
	workers *worker.Workers
}

func NewSendChangeNoticeProcessor(workers *worker.Workers) *sendChangeNoticeProcessor {
	return &sendChangeNoticeProcessor{
		workers: workers,
	}
}

func (p *sendChangeNoticeProcessor) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var data task.SendChangeNotice
	err := json.Unmarshal(t.Payload(), &data)
	if err != nil {
		return fmt.Errorf("process send change notice task json unmarshal failed: %w", err)
	}

	if err = p.workers.EmailSender.SendChangeNoticeEmail(ctx, data.Email, data.Notice); err != nil {
		return fmt.Errorf("send change notice email failed: %w", err)
	}

	return nil
}
