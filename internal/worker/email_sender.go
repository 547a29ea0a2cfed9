package worker

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/rei-kenpai/backend/internal/config"
	"github.com/rei-kenpai/backend/internal/domain"
	"github.com/rei-kenpai/backend/internal/service"
	emailProvider "github.com/rei-kenpai/backend/pkg/email"
	"github.com/rei-kenpai/backend/pkg/logger"
)

type emailSender struct {
	sender emailProvider.Sender
	config config.EmailConfig
}

func newEmailSender(
	sender emailProvider.Sender,
	config config.EmailConfig,
) *emailSender {
	return &emailSender{
		sender: sender,
		config: config,
	}
}

type verificationEmailInput struct {
	Code  string
	Intro string
}

// Subject lines and intro copy per verification purpose. The code body
// states the 10 minute validity.
var verificationEmailCopy = map[domain.VerificationPurpose]struct {
	Subject string
	Intro   string
}{
	domain.PurposeRegister: {
		Subject: "【Rei】認証コードのお知らせ",
		Intro:   "新規登録の認証コードをお送りします。",
	},
	domain.PurposePasswordReset: {
		Subject: "【Rei】パスワードリセットのご案内",
		Intro:   "パスワードリセットの認証コードをお送りします。",
	},
	domain.PurposeEmailChange: {
		Subject: "【Rei】メールアドレス変更の認証コード",
		Intro:   "メールアドレス変更の認証コードをお送りします。",
	},
}

func (s *emailSender) SendVerificationCodeEmail(ctx context.Context, email string, code string, purpose domain.VerificationPurpose) error {
	if !s.config.Enabled {
		logger.Info("email sending disabled, dropping verification code mail", zap.String("purpose", string(purpose)))
		return nil
	}

	msg, ok := verificationEmailCopy[purpose]
	if !ok {
		return fmt.Errorf("unknown verification purpose: %s", purpose)
	}

	templateInput := verificationEmailInput{Code: code, Intro: msg.Intro}
	sendInput := emailProvider.SendEmailInput{Subject: msg.Subject, To: email}

	if err := sendInput.GenerateBodyFromHTML(s.config.Templates.VerificationCode, templateInput); err != nil {
		return fmt.Errorf("generate email failed: %w", err)
	}

	if err := s.sender.Send(sendInput); err != nil {
		return fmt.Errorf("send email failed: %w", err)
	}

	return nil
}

type changeNoticeInput struct {
	Heading string
	Body    string
}

var changeNoticeCopy = map[string]struct {
	Subject string
	Heading string
	Body    string
}{
	service.NoticePasswordChanged: {
		Subject: "【Rei】パスワードが変更されました",
		Heading: "パスワードが変更されました",
		Body:    "お客様のアカウントのパスワードが正常に変更されました。",
	},
	service.NoticeEmailChanged: {
		Subject: "【Rei】メールアドレスが変更されました",
		Heading: "メールアドレスが変更されました",
		Body:    "このメールアドレスが新しい連絡先として登録されました。",
	},
}

func (s *emailSender) SendChangeNoticeEmail(ctx context.Context, email string, notice string) error {
	if !s.config.Enabled {
		logger.Info("email sending disabled, dropping change notice mail", zap.String("notice", notice))
		return nil
	}

	msg, ok := changeNoticeCopy[notice]
	if !ok {
		return fmt.Errorf("unknown change notice: %s", notice)
	}

	templateInput := changeNoticeInput{Heading: msg.Heading, Body: msg.Body}
	sendInput := emailProvider.SendEmailInput{Subject: msg.Subject, To: email}

	if err := sendInput.GenerateBodyFromHTML(s.config.Templates.ChangeNotice, templateInput); err != nil {
		return fmt.Errorf("generate email failed: %w", err)
	}

	if err := s.sender.Send(sendInput); err != nil {
		return fmt.Errorf("send email failed: %w", err)
	}

	return nil
}
