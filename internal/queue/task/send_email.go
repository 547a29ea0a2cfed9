package task

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/rei-kenpai/backend/internal/domain"
)

const (
	SendVerificationCodeTaskName = "sendVerificationCodeTask"
	SendChangeNoticeTaskName     = "sendChangeNoticeTask"
	SendEmailQueueName           = "sendEmailQueue"
)

type SendVerificationCode struct {
	Email   string                     `json:"email"`
	Code    string                     `json:"code"`
	Purpose domain.VerificationPurpose `json:"purpose"`
}

func NewSendVerificationCodeTask(email string, code string, purpose domain.VerificationPurpose) (*asynq.Task, error) {
	payload, err := json.Marshal(SendVerificationCode{
		Email:   email,
		Code:    code,
		Purpose: purpose,
	})
	if err != nil {
		return nil, fmt.Errorf("json data marshal failed: %w", err)
	}

	return asynq.NewTask(
		SendVerificationCodeTaskName,
		payload,
		asynq.MaxRetry(5),
		asynq.Queue(SendEmailQueueName),
	), nil
}

type SendChangeNotice struct {
	Email  string `json:"email"`
	Notice string `json:"notice"`
}

func NewSendChangeNoticeTask(email string, notice string) (*asynq.Task, error) {
	payload, err := json.Marshal(SendChangeNotice{
		Email:  email,
		Notice: notice,
	})
	if err != nil {
		return nil, fmt.Errorf("json data marshal failed: %w", err)
	}

	return asynq.NewTask(
		SendChangeNoticeTaskName,
		payload,
		asynq.MaxRetry(5),
		asynq.Queue(SendEmailQueueName),
	), nil
}
