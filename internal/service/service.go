package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/rei-kenpai/backend/internal/cache"
	"github.com/rei-kenpai/backend/internal/config"
	"github.com/rei-kenpai/backend/internal/domain"
	"github.com/rei-kenpai/backend/internal/payment"
	"github.com/rei-kenpai/backend/internal/repository"
	"github.com/rei-kenpai/backend/pkg/auth"
	"github.com/rei-kenpai/backend/pkg/hash"
	"github.com/rei-kenpai/backend/pkg/otp"
)

// Notice kinds dispatched after a successful privileged mutation.
const (
	NoticePasswordChanged = "password_changed"
	NoticeEmailChanged    = "email_changed"
)

// Dispatcher hands transactional emails to the delivery queue.
type Dispatcher interface {
	DispatchVerificationCode(ctx context.Context, email string, code string, purpose domain.VerificationPurpose) error
	DispatchChangeNotice(ctx context.Context, email string, notice string) error
}

type Services struct {
	Auth          Auth
	Verifications Verifications
	Projects      Projects
	Kenpai        Kenpai
	Payouts       Payouts
}

type Deps struct {
	Config       *config.Config
	Hasher       hash.PasswordHasher
	TokenManager auth.TokenManager
	OtpGenerator otp.Generator
	Dispatcher   Dispatcher
	Gateway      payment.Gateway
	Redis        redis.UniversalClient
	Repos        *repository.Repositories
}

func NewServices(deps Deps) *Services {
	return &Services{
		Auth: newAuthService(
			deps.Repos.FuneralHomes,
			deps.Repos.RefreshSession,
			deps.Hasher,
			deps.TokenManager,
		),
		Verifications: newVerificationService(
			deps.Repos.VerificationCodes,
			deps.Repos.FuneralHomes,
			deps.Hasher,
			deps.OtpGenerator,
			deps.Dispatcher,
			deps.Config.Auth,
		),
		Projects: newProjectService(deps.Repos.Projects, deps.Repos.Kenpai),
		Kenpai: newKenpaiService(
			deps.Repos.Kenpai,
			deps.Repos.Projects,
			deps.Gateway,
			cache.NewWebhookDedup(deps.Redis),
			deps.Config.Payment,
		),
		Payouts: newPayoutService(deps.Repos.FuneralHomes, deps.Gateway, deps.Config.Payment),
	}
}

type Auth interface {
	Login(ctx context.Context, email string, password string, userAgent string, userIP string) (*LoginResult, error)
}

type Verifications interface {
	IssueRegisterCode(ctx context.Context, email string, homeName string) error
	RedeemRegisterCode(ctx context.Context, email string, code string, password string) (*domain.FuneralHome, error)
	IssuePasswordResetCode(ctx context.Context, email string) error
	CheckPasswordResetCode(ctx context.Context, email string, code string) error
	RedeemPasswordResetCode(ctx context.Context, email string, code string, newPassword string) error
	IssueEmailChangeCode(ctx context.Context, funeralHomeID uuid.UUID, newEmail string) error
	RedeemEmailChangeCode(ctx context.Context, funeralHomeID uuid.UUID, newEmail string, code string) error
}

type Projects interface {
	Create(ctx context.Context, funeralHomeID uuid.UUID, deceasedName string, slug string) (*domain.Project, error)
	GetAllByFuneralHome(ctx context.Context, funeralHomeID uuid.UUID) ([]domain.Project, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Project, []domain.Kenpai, error)
}

type Kenpai interface {
	CreateCheckout(ctx context.Context, input CheckoutInput) (*CheckoutResult, error)
	HandleWebhook(ctx context.Context, payload []byte) error
}

type Payouts interface {
	Connect(ctx context.Context, funeralHomeID uuid.UUID) (string, error)
	Status(ctx context.Context, funeralHomeID uuid.UUID) (*PayoutStatus, error)
}
