package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rei-kenpai/backend/internal/config"
	"github.com/rei-kenpai/backend/internal/domain"
	"github.com/rei-kenpai/backend/internal/payment"
	"github.com/rei-kenpai/backend/internal/repository"
	"github.com/rei-kenpai/backend/pkg/logger"

	"go.uber.org/zap"
)

// WebhookDedup atomically claims webhook event ids for a retention window.
// Forget releases a claim so a redelivery can retry after a failed write.
type WebhookDedup interface {
	FirstSeen(ctx context.Context, eventID string, ttl time.Duration) (bool, error)
	Forget(ctx context.Context, eventID string) error
}

const (
	kenpaiProductName = "献杯"

	// Webhook event ids are remembered long enough to swallow processor
	// redeliveries.
	webhookDedupTTL = 24 * time.Hour
)

type kenpaiService struct {
	kenpaiRepository  repository.KenpaiRecords
	projectRepository repository.Projects
	gateway           payment.Gateway
	dedup             WebhookDedup
	paymentConfig     config.PaymentConfig
}

func newKenpaiService(
	kenpaiRepository repository.KenpaiRecords,
	projectRepository repository.Projects,
	gateway payment.Gateway,
	dedup WebhookDedup,
	paymentConfig config.PaymentConfig,
) *kenpaiService {
	return &kenpaiService{
		kenpaiRepository:  kenpaiRepository,
		projectRepository: projectRepository,
		gateway:           gateway,
		dedup:             dedup,
		paymentConfig:     paymentConfig,
	}
}

type CheckoutInput struct {
	Amount    int64
	DonorName string
	ProjectID uuid.UUID
	Slug      string
	Message   string
}

type CheckoutResult struct {
	SessionID string
	URL       string
}

// CreateCheckout opens a hosted payment page for a kenpai contribution.
// Donor identity travels in the session metadata and comes back via webhook.
func (s *kenpaiService) CreateCheckout(ctx context.Context, input CheckoutInput) (*CheckoutResult, error) {
	if _, err := s.projectRepository.GetOneByID(ctx, input.ProjectID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("get project failed: %w", err)
	}

	session, err := s.gateway.CreateCheckoutSession(payment.CheckoutSessionInput{
		AmountJPY:   input.Amount,
		ProductName: kenpaiProductName,
		SuccessURL:  s.paymentConfig.AppBaseURL + "/" + input.Slug + "?success=true&session_id={CHECKOUT_SESSION_ID}",
		CancelURL:   s.paymentConfig.AppBaseURL + "/" + input.Slug + "?canceled=true",
		Metadata: map[string]string{
			"donor_name": input.DonorName,
			"project_id": input.ProjectID.String(),
			"message":    input.Message,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create checkout session failed: %w", err)
	}

	return &CheckoutResult{SessionID: session.ID, URL: session.URL}, nil
}

// HandleWebhook records a completed checkout into the kenpai ledger. Events
// other than checkout completion are acknowledged and dropped. Processing is
// idempotent per event id.
func (s *kenpaiService) HandleWebhook(ctx context.Context, payload []byte) error {
	event, err := payment.ParseEvent(payload)
	if err != nil {
		return fmt.Errorf("parse webhook payload failed: %w", err)
	}

	if event.Type != payment.EventCheckoutSessionCompleted {
		return nil
	}
	if event.Data.Object.PaymentStatus != payment.PaymentStatusPaid {
		return nil
	}

	first, err := s.dedup.FirstSeen(ctx, event.ID, webhookDedupTTL)
	if err != nil {
		return fmt.Errorf("webhook dedup check failed: %w", err)
	}
	if !first {
		logger.Info("duplicate webhook event skipped", zap.String("event_id", event.ID))
		return nil
	}

	session := event.Data.Object
	donorName := session.Metadata["donor_name"]
	projectID, err := uuid.Parse(session.Metadata["project_id"])
	if donorName == "" || err != nil || session.AmountTotal == 0 {
		logger.Warn("webhook session missing kenpai metadata", zap.String("event_id", event.ID))
		return nil
	}

	kenpaiID, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generate kenpai id failed: %w", err)
	}

	kenpai := &domain.Kenpai{
		ID:        kenpaiID,
		ProjectID: projectID,
		DonorName: donorName,
		Amount:    session.AmountTotal,
	}
	if message := session.Metadata["message"]; message != "" {
		kenpai.Message.String = message
		kenpai.Message.Valid = true
	}

	if err := s.kenpaiRepository.Create(ctx, kenpai); err != nil {
		// Release the dedup claim so the processor's redelivery is not
		// dropped as a duplicate; otherwise a paid kenpai is lost.
		if forgetErr := s.dedup.Forget(ctx, event.ID); forgetErr != nil {
			logger.Error("release webhook dedup claim failed", zap.String("event_id", event.ID), zap.Error(forgetErr))
		}
		return fmt.Errorf("record kenpai failed: %w", err)
	}

	return nil
}
