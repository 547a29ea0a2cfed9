package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rei-kenpai/backend/internal/config"
	"github.com/rei-kenpai/backend/internal/domain"
	"github.com/rei-kenpai/backend/internal/repository"
	"github.com/rei-kenpai/backend/pkg/hash"
	"github.com/rei-kenpai/backend/pkg/otp"
	"github.com/rei-kenpai/backend/pkg/validator"
)

// verificationService issues and redeems the one-time codes behind the three
// privileged flows: registration, password reset and email change. Issuing
// supersedes any prior live code for the subject; redemption consumes the
// code row before performing the mutation, so a crash in between costs the
// user a resend rather than allowing a replay.
type verificationService struct {
	codeRepository repository.VerificationCodes
	homeRepository repository.FuneralHomes
	hasher         hash.PasswordHasher
	otpGenerator   otp.Generator
	dispatcher     Dispatcher
	authConfig     config.AuthConfig
}

func newVerificationService(
	codeRepository repository.VerificationCodes,
	homeRepository repository.FuneralHomes,
	hasher hash.PasswordHasher,
	otpGenerator otp.Generator,
	dispatcher Dispatcher,
	authConfig config.AuthConfig,
) *verificationService {
	return &verificationService{
		codeRepository: codeRepository,
		homeRepository: homeRepository,
		hasher:         hasher,
		otpGenerator:   otpGenerator,
		dispatcher:     dispatcher,
		authConfig:     authConfig,
	}
}

func (s *verificationService) IssueRegisterCode(ctx context.Context, email string, homeName string) error {
	if !validator.IsValidHomeName(homeName) {
		return ErrInvalidHomeName
	}

	if _, err := s.homeRepository.GetByName(ctx, homeName); err == nil {
		return ErrHomeNameTaken
	} else if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("check funeral home name failed: %w", err)
	}

	if _, err := s.homeRepository.GetByEmail(ctx, email); err == nil {
		return ErrEmailTaken
	} else if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("check funeral home email failed: %w", err)
	}

	if err := s.codeRepository.DeleteByEmail(ctx, domain.PurposeRegister, email); err != nil {
		return fmt.Errorf("invalidate previous codes failed: %w", err)
	}

	return s.issue(ctx, &domain.VerificationCode{
		Purpose: domain.PurposeRegister,
		Email:   email,
		Payload: homeName,
	})
}

func (s *verificationService) RedeemRegisterCode(ctx context.Context, email string, code string, password string) (*domain.FuneralHome, error) {
	if len(password) < s.authConfig.MinPasswordLength {
		return nil, ErrWeakPassword
	}

	row, err := s.lookupByEmail(ctx, domain.PurposeRegister, email, code)
	if err != nil {
		return nil, err
	}

	// Consume before mutating: a second redemption of the same code must
	// fail even if the mutation below does.
	if err := s.consume(ctx, row.ID); err != nil {
		return nil, err
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password failed: %w", err)
	}

	homeID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate funeral home id failed: %w", err)
	}

	home := &domain.FuneralHome{
		ID:           homeID,
		Name:         row.Payload,
		Email:        email,
		PasswordHash: passwordHash,
	}

	if err := s.homeRepository.Create(ctx, home); err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			return nil, ErrHomeNameTaken
		}
		return nil, fmt.Errorf("create funeral home failed: %w", err)
	}

	return home, nil
}

func (s *verificationService) IssuePasswordResetCode(ctx context.Context, email string) error {
	home, err := s.homeRepository.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrEmailNotRegistered
		}
		return fmt.Errorf("check funeral home email failed: %w", err)
	}

	if err := s.codeRepository.DeleteByEmail(ctx, domain.PurposePasswordReset, email); err != nil {
		return fmt.Errorf("invalidate previous codes failed: %w", err)
	}

	return s.issue(ctx, &domain.VerificationCode{
		Purpose:       domain.PurposePasswordReset,
		Email:         email,
		FuneralHomeID: home.ID,
	})
}

// CheckPasswordResetCode validates a code without consuming it. The reset UI
// confirms the code on its own step before asking for the new password.
func (s *verificationService) CheckPasswordResetCode(ctx context.Context, email string, code string) error {
	_, err := s.lookupByEmail(ctx, domain.PurposePasswordReset, email, code)
	return err
}

func (s *verificationService) RedeemPasswordResetCode(ctx context.Context, email string, code string, newPassword string) error {
	if len(newPassword) < s.authConfig.MinPasswordLength {
		return ErrWeakPassword
	}

	row, err := s.lookupByEmail(ctx, domain.PurposePasswordReset, email, code)
	if err != nil {
		return err
	}

	if err := s.consume(ctx, row.ID); err != nil {
		return err
	}

	passwordHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password failed: %w", err)
	}

	if err := s.homeRepository.UpdatePasswordByEmail(ctx, email, passwordHash); err != nil {
		return fmt.Errorf("update password failed: %w", err)
	}

	if err := s.dispatcher.DispatchChangeNotice(ctx, email, NoticePasswordChanged); err != nil {
		return fmt.Errorf("dispatch password change notice failed: %w", err)
	}

	return nil
}

func (s *verificationService) IssueEmailChangeCode(ctx context.Context, funeralHomeID uuid.UUID, newEmail string) error {
	if _, err := s.homeRepository.GetByEmail(ctx, newEmail); err == nil {
		return ErrEmailTaken
	} else if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("check funeral home email failed: %w", err)
	}

	if err := s.codeRepository.DeleteByFuneralHome(ctx, domain.PurposeEmailChange, funeralHomeID); err != nil {
		return fmt.Errorf("invalidate previous codes failed: %w", err)
	}

	return s.issue(ctx, &domain.VerificationCode{
		Purpose:       domain.PurposeEmailChange,
		Email:         newEmail,
		FuneralHomeID: funeralHomeID,
	})
}

func (s *verificationService) RedeemEmailChangeCode(ctx context.Context, funeralHomeID uuid.UUID, newEmail string, code string) error {
	row, err := s.codeRepository.GetByFuneralHomeAndCode(ctx, domain.PurposeEmailChange, funeralHomeID, newEmail, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrInvalidCode
		}
		return fmt.Errorf("lookup verification code failed: %w", err)
	}

	if row.Expired(time.Now()) {
		return ErrExpiredCode
	}

	if err := s.consume(ctx, row.ID); err != nil {
		return err
	}

	if err := s.homeRepository.UpdateEmail(ctx, funeralHomeID, newEmail); err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			return ErrEmailTaken
		}
		return fmt.Errorf("update email failed: %w", err)
	}

	// Notify the new address that it is now the account contact.
	if err := s.dispatcher.DispatchChangeNotice(ctx, newEmail, NoticeEmailChanged); err != nil {
		return fmt.Errorf("dispatch email change notice failed: %w", err)
	}

	return nil
}

func (s *verificationService) issue(ctx context.Context, code *domain.VerificationCode) error {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generate verification code id failed: %w", err)
	}

	code.ID = id
	code.Code = s.otpGenerator.RandomCode(s.authConfig.VerificationCodeLength)
	code.ExpiresAt = time.Now().Add(s.authConfig.VerificationCodeTTL)

	if err := s.codeRepository.Create(ctx, code); err != nil {
		return fmt.Errorf("store verification code failed: %w", err)
	}

	if err := s.dispatcher.DispatchVerificationCode(ctx, code.Email, code.Code, code.Purpose); err != nil {
		return fmt.Errorf("dispatch verification code failed: %w", err)
	}

	return nil
}

func (s *verificationService) lookupByEmail(ctx context.Context, purpose domain.VerificationPurpose, email string, code string) (*domain.VerificationCode, error) {
	row, err := s.codeRepository.GetByEmailAndCode(ctx, purpose, email, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCode
		}
		return nil, fmt.Errorf("lookup verification code failed: %w", err)
	}

	if row.Expired(time.Now()) {
		return nil, ErrExpiredCode
	}

	return row, nil
}

func (s *verificationService) consume(ctx context.Context, id uuid.UUID) error {
	if err := s.codeRepository.Consume(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNoRowsAffected) {
			// Lost the race against another redemption.
			return ErrInvalidCode
		}
		return fmt.Errorf("consume verification code failed: %w", err)
	}

	return nil
}
