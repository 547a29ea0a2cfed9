package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rei-kenpai/backend/internal/domain"
	"github.com/rei-kenpai/backend/internal/repository"
	"github.com/rei-kenpai/backend/pkg/auth"
	"github.com/rei-kenpai/backend/pkg/hash"
)

type authService struct {
	homeRepository           repository.FuneralHomes
	refreshSessionRepository repository.RefreshSession
	hasher                   hash.PasswordHasher
	tokenManager             auth.TokenManager
}

func newAuthService(
	homeRepository repository.FuneralHomes,
	refreshSessionRepository repository.RefreshSession,
	hasher hash.PasswordHasher,
	tokenManager auth.TokenManager,
) *authService {
	return &authService{
		homeRepository:           homeRepository,
		refreshSessionRepository: refreshSessionRepository,
		hasher:                   hasher,
		tokenManager:             tokenManager,
	}
}

type Tokens struct {
	AccessToken  string
	AccessTTL    time.Duration
	RefreshToken uuid.UUID
	RefreshTTL   time.Duration
}

type LoginResult struct {
	FuneralHome *domain.FuneralHome
	Tokens      *Tokens
}

// Login verifies the credentials and opens a server-side refresh session.
// The response identity feeds the client session controller.
func (s *authService) Login(ctx context.Context, email string, password string, userAgent string, userIP string) (*LoginResult, error) {
	home, err := s.homeRepository.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrHomeNotFound
		}
		return nil, fmt.Errorf("get funeral home by email failed: %w", err)
	}

	if err := s.hasher.Compare(home.PasswordHash, password); err != nil {
		// Same error for unknown email and wrong password.
		return nil, ErrHomeNotFound
	}

	tokens, err := s.createSession(ctx, &home.ID, &userAgent, &userIP)
	if err != nil {
		return nil, fmt.Errorf("create session failed: %w", err)
	}

	return &LoginResult{FuneralHome: home, Tokens: tokens}, nil
}

func (s *authService) createSession(ctx context.Context, funeralHomeID *uuid.UUID, userAgent *string, userIP *string) (*Tokens, error) {
	var (
		res Tokens
		err error
	)

	res.AccessToken, res.AccessTTL, err = s.tokenManager.NewJWT(funeralHomeID)
	if err != nil {
		return &res, fmt.Errorf("generate access token failed: %w", err)
	}

	res.RefreshToken, res.RefreshTTL, err = s.tokenManager.NewRefreshToken()
	if err != nil {
		return &res, fmt.Errorf("generate refresh token failed: %w", err)
	}

	refreshSessionID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate refresh session id failed: %w", err)
	}
	refreshSession := &domain.RefreshSession{
		ID:            refreshSessionID,
		FuneralHomeID: *funeralHomeID,
		RefreshToken:  res.RefreshToken,
		UserAgent:     *userAgent,
		IP:            *userIP,
		ExpiresIn:     time.Now().Add(res.RefreshTTL),
	}

	if err := s.refreshSessionRepository.Create(ctx, refreshSession); err != nil {
		return nil, fmt.Errorf("create refresh session failed: %w", err)
	}

	return &res, nil
}
