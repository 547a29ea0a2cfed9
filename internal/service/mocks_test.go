package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/rei-kenpai/backend/internal/domain"
	"github.com/rei-kenpai/backend/internal/payment"
)

type mockVerificationCodes struct {
	mock.Mock
}

func (m *mockVerificationCodes) Create(ctx context.Context, code *domain.VerificationCode) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *mockVerificationCodes) DeleteByEmail(ctx context.Context, purpose domain.VerificationPurpose, email string) error {
	args := m.Called(ctx, purpose, email)
	return args.Error(0)
}

func (m *mockVerificationCodes) DeleteByFuneralHome(ctx context.Context, purpose domain.VerificationPurpose, funeralHomeID uuid.UUID) error {
	args := m.Called(ctx, purpose, funeralHomeID)
	return args.Error(0)
}

func (m *mockVerificationCodes) GetByEmailAndCode(ctx context.Context, purpose domain.VerificationPurpose, email string, code string) (*domain.VerificationCode, error) {
	args := m.Called(ctx, purpose, email, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VerificationCode), args.Error(1)
}

func (m *mockVerificationCodes) GetByFuneralHomeAndCode(ctx context.Context, purpose domain.VerificationPurpose, funeralHomeID uuid.UUID, email string, code string) (*domain.VerificationCode, error) {
	args := m.Called(ctx, purpose, funeralHomeID, email, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VerificationCode), args.Error(1)
}

func (m *mockVerificationCodes) Consume(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockFuneralHomes struct {
	mock.Mock
}

func (m *mockFuneralHomes) Create(ctx context.Context, home *domain.FuneralHome) error {
	args := m.Called(ctx, home)
	return args.Error(0)
}

func (m *mockFuneralHomes) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.FuneralHome, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FuneralHome), args.Error(1)
}

func (m *mockFuneralHomes) GetByEmail(ctx context.Context, email string) (*domain.FuneralHome, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FuneralHome), args.Error(1)
}

func (m *mockFuneralHomes) GetByName(ctx context.Context, name string) (*domain.FuneralHome, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FuneralHome), args.Error(1)
}

func (m *mockFuneralHomes) UpdateEmail(ctx context.Context, id uuid.UUID, email string) error {
	args := m.Called(ctx, id, email)
	return args.Error(0)
}

func (m *mockFuneralHomes) UpdatePasswordByEmail(ctx context.Context, email string, passwordHash string) error {
	args := m.Called(ctx, email, passwordHash)
	return args.Error(0)
}

func (m *mockFuneralHomes) UpdateStripeAccountID(ctx context.Context, id uuid.UUID, accountID string) error {
	args := m.Called(ctx, id, accountID)
	return args.Error(0)
}

func (m *mockFuneralHomes) SetOnboardingComplete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockRefreshSessions struct {
	mock.Mock
}

func (m *mockRefreshSessions) Create(ctx context.Context, session *domain.RefreshSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

type mockDispatcher struct {
	mock.Mock
}

func (m *mockDispatcher) DispatchVerificationCode(ctx context.Context, email string, code string, purpose domain.VerificationPurpose) error {
	args := m.Called(ctx, email, code, purpose)
	return args.Error(0)
}

func (m *mockDispatcher) DispatchChangeNotice(ctx context.Context, email string, notice string) error {
	args := m.Called(ctx, email, notice)
	return args.Error(0)
}

type mockTokenManager struct {
	mock.Mock
}

func (m *mockTokenManager) NewJWT(funeralHomeID *uuid.UUID) (string, time.Duration, error) {
	args := m.Called(funeralHomeID)
	return args.String(0), args.Get(1).(time.Duration), args.Error(2)
}

func (m *mockTokenManager) Parse(accessToken string) (string, error) {
	args := m.Called(accessToken)
	return args.String(0), args.Error(1)
}

func (m *mockTokenManager) NewRefreshToken() (uuid.UUID, time.Duration, error) {
	args := m.Called()
	return args.Get(0).(uuid.UUID), args.Get(1).(time.Duration), args.Error(2)
}

func (m *mockTokenManager) ValidateRefreshToken(refreshToken string) (*uuid.UUID, error) {
	args := m.Called(refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*uuid.UUID), args.Error(1)
}

// stubGenerator hands out a fixed code so tests can assert on it.
type stubGenerator struct {
	code string
}

func (g *stubGenerator) RandomCode(length int) string {
	return g.code
}

type mockProjects struct {
	mock.Mock
}

func (m *mockProjects) Create(ctx context.Context, project *domain.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *mockProjects) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *mockProjects) GetBySlug(ctx context.Context, slug string) (*domain.Project, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *mockProjects) GetAllByFuneralHome(ctx context.Context, funeralHomeID uuid.UUID) ([]domain.Project, error) {
	args := m.Called(ctx, funeralHomeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Project), args.Error(1)
}

type mockKenpaiRecords struct {
	mock.Mock
}

func (m *mockKenpaiRecords) Create(ctx context.Context, kenpai *domain.Kenpai) error {
	args := m.Called(ctx, kenpai)
	return args.Error(0)
}

func (m *mockKenpaiRecords) GetAllByProject(ctx context.Context, projectID uuid.UUID) ([]domain.Kenpai, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Kenpai), args.Error(1)
}

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) CreateCheckoutSession(input payment.CheckoutSessionInput) (*payment.CheckoutSession, error) {
	args := m.Called(input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.CheckoutSession), args.Error(1)
}

func (m *mockGateway) CreateAccount(input payment.CreateAccountInput) (*payment.Account, error) {
	args := m.Called(input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Account), args.Error(1)
}

func (m *mockGateway) CreateAccountLink(accountID string, refreshURL string, returnURL string) (*payment.AccountLink, error) {
	args := m.Called(accountID, refreshURL, returnURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.AccountLink), args.Error(1)
}

func (m *mockGateway) RetrieveAccount(accountID string) (*payment.Account, error) {
	args := m.Called(accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Account), args.Error(1)
}

type mockWebhookDedup struct {
	mock.Mock
}

func (m *mockWebhookDedup) FirstSeen(ctx context.Context, eventID string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, eventID, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *mockWebhookDedup) Forget(ctx context.Context, eventID string) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}
