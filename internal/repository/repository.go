package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/rei-kenpai/backend/internal/domain"
)

type Repositories struct {
	FuneralHomes      FuneralHomes
	VerificationCodes VerificationCodes
	Projects          Projects
	Kenpai            KenpaiRecords
	RefreshSession    RefreshSession
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		FuneralHomes:      newFuneralHomeRepository(db),
		VerificationCodes: newVerificationCodeRepository(db),
		Projects:          newProjectRepository(db),
		Kenpai:            newKenpaiRepository(db),
		RefreshSession:    newRefreshSessionRepository(db),
	}
}

type FuneralHomes interface {
	Create(ctx context.Context, home *domain.FuneralHome) error
	GetOneByID(ctx context.Context, id uuid.UUID) (*domain.FuneralHome, error)
	GetByEmail(ctx context.Context, email string) (*domain.FuneralHome, error)
	GetByName(ctx context.Context, name string) (*domain.FuneralHome, error)
	UpdateEmail(ctx context.Context, id uuid.UUID, email string) error
	UpdatePasswordByEmail(ctx context.Context, email string, passwordHash string) error
	UpdateStripeAccountID(ctx context.Context, id uuid.UUID, accountID string) error
	SetOnboardingComplete(ctx context.Context, id uuid.UUID) error
}

type VerificationCodes interface {
	Create(ctx context.Context, code *domain.VerificationCode) error
	DeleteByEmail(ctx context.Context, purpose domain.VerificationPurpose, email string) error
	DeleteByFuneralHome(ctx context.Context, purpose domain.VerificationPurpose, funeralHomeID uuid.UUID) error
	GetByEmailAndCode(ctx context.Context, purpose domain.VerificationPurpose, email string, code string) (*domain.VerificationCode, error)
	GetByFuneralHomeAndCode(ctx context.Context, purpose domain.VerificationPurpose, funeralHomeID uuid.UUID, email string, code string) (*domain.VerificationCode, error)
	Consume(ctx context.Context, id uuid.UUID) error
}

type Projects interface {
	Create(ctx context.Context, project *domain.Project) error
	GetOneByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Project, error)
	GetAllByFuneralHome(ctx context.Context, funeralHomeID uuid.UUID) ([]domain.Project, error)
}

type KenpaiRecords interface {
	Create(ctx context.Context, kenpai *domain.Kenpai) error
	GetAllByProject(ctx context.Context, projectID uuid.UUID) ([]domain.Kenpai, error)
}

type RefreshSession interface {
	Create(ctx context.Context, session *domain.RefreshSession) error
}
