package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/rei-kenpai/backend/internal/config"
	"github.com/rei-kenpai/backend/internal/domain"
	"github.com/rei-kenpai/backend/internal/payment"
	"github.com/rei-kenpai/backend/internal/repository"
)

type payoutService struct {
	homeRepository repository.FuneralHomes
	gateway        payment.Gateway
	paymentConfig  config.PaymentConfig
}

func newPayoutService(
	homeRepository repository.FuneralHomes,
	gateway payment.Gateway,
	paymentConfig config.PaymentConfig,
) *payoutService {
	return &payoutService{
		homeRepository: homeRepository,
		gateway:        gateway,
		paymentConfig:  paymentConfig,
	}
}

// Connect returns an onboarding link for the home's payout account,
// creating the connected account on first call.
func (s *payoutService) Connect(ctx context.Context, funeralHomeID uuid.UUID) (string, error) {
	home, err := s.homeRepository.GetOneByID(ctx, funeralHomeID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", ErrHomeNotFound
		}
		return "", fmt.Errorf("get funeral home failed: %w", err)
	}

	accountID := home.StripeAccountID.String
	if accountID == "" {
		account, err := s.gateway.CreateAccount(payment.CreateAccountInput{
			Email:   home.Email,
			Country: "JP",
			Metadata: map[string]string{
				"funeral_home_id":   home.ID.String(),
				"funeral_home_name": home.Name,
			},
		})
		if err != nil {
			return "", fmt.Errorf("create payout account failed: %w", err)
		}

		accountID = account.ID

		if err := s.homeRepository.UpdateStripeAccountID(ctx, home.ID, accountID); err != nil {
			return "", fmt.Errorf("store payout account id failed: %w", err)
		}
	}

	link, err := s.gateway.CreateAccountLink(
		accountID,
		s.paymentConfig.AppBaseURL+s.paymentConfig.OnboardingRefresh,
		s.paymentConfig.AppBaseURL+s.paymentConfig.OnboardingReturn,
	)
	if err != nil {
		return "", fmt.Errorf("create onboarding link failed: %w", err)
	}

	return link.URL, nil
}

type PayoutStatus struct {
	Connected          bool `json:"connected"`
	OnboardingComplete bool `json:"onboarding_complete"`
	ChargesEnabled     bool `json:"charges_enabled"`
	PayoutsEnabled     bool `json:"payouts_enabled"`
}

// Status refreshes onboarding state from the gateway and persists the
// completion flag once both capabilities are enabled.
func (s *payoutService) Status(ctx context.Context, funeralHomeID uuid.UUID) (*PayoutStatus, error) {
	home, err := s.homeRepository.GetOneByID(ctx, funeralHomeID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrHomeNotFound
		}
		return nil, fmt.Errorf("get funeral home failed: %w", err)
	}

	if home.StripeAccountID.String == "" {
		return &PayoutStatus{}, nil
	}

	account, err := s.gateway.RetrieveAccount(home.StripeAccountID.String)
	if err != nil {
		return nil, fmt.Errorf("retrieve payout account failed: %w", err)
	}

	complete := account.ChargesEnabled && account.PayoutsEnabled
	if complete && !home.StripeOnboardingComplete {
		if err := s.homeRepository.SetOnboardingComplete(ctx, home.ID); err != nil {
			return nil, fmt.Errorf("store onboarding flag failed: %w", err)
		}
	}

	return &PayoutStatus{
		Connected:          true,
		OnboardingComplete: complete,
		ChargesEnabled:     account.ChargesEnabled,
		PayoutsEnabled:     account.PayoutsEnabled,
	}, nil
}
