package worker

import (
	"context"

	"github.com/rei-kenpai/backend/internal/config"
	"github.com/rei-kenpai/backend/internal/domain"
	emailProvider "github.com/rei-kenpai/backend/pkg/email"
)

type Workers struct {
	EmailSender EmailSender
}

type Deps struct {
	EmailProvider emailProvider.Sender
	Config        *config.Config
}

type EmailSender interface {
	SendVerificationCodeEmail(ctx context.Context, email string, code string, purpose domain.VerificationPurpose) error
	SendChangeNoticeEmail(ctx context.Context, email string, notice string) error
}

func NewWorkers(deps Deps) *Workers {
	return &Workers{
		EmailSender: newEmailSender(deps.EmailProvider, deps.Config.Email),
	}
}
