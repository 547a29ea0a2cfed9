package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/rei-kenpai/backend/internal/domain"
)

type verificationCodeRepository struct {
	db *sqlx.DB
}

func newVerificationCodeRepository(db *sqlx.DB) *verificationCodeRepository {
	return &verificationCodeRepository{
		db: db,
	}
}

const verificationCodeColumns = "id, purpose, email, code, funeral_home_id, payload, expires_at, created_at"

func (r *verificationCodeRepository) Create(ctx context.Context, code *domain.VerificationCode) error {
	const op = "repository.verificationCode.Create"

	const query = `
    INSERT INTO verification_codes (id, purpose, email, code, funeral_home_id, payload, expires_at)
    VALUES (uuid_to_bin(:id), :purpose, :email, :code, uuid_to_bin(:funeral_home_id), :payload, :expires_at)
    `

	res, err := r.db.NamedExecContext(ctx, query, code)
	if err != nil {
		return fmt.Errorf("%s: insert verification code failed: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: get rows affected failed: %w", op, err)
	}

	if rows != 1 {
		return fmt.Errorf("%s: expected 1 row affected, got %d", op, rows)
	}

	return nil
}

// DeleteByEmail invalidates prior codes for an email-keyed subject, so only
// the latest issued code is live.
func (r *verificationCodeRepository) DeleteByEmail(ctx context.Context, purpose domain.VerificationPurpose, email string) error {
	const query = `
    DELETE FROM verification_codes WHERE purpose = ? AND email = ?
    `

	if _, err := r.db.ExecContext(ctx, query, purpose, email); err != nil {
		return fmt.Errorf("delete verification codes by email failed: %w", err)
	}

	return nil
}

// DeleteByFuneralHome invalidates prior codes keyed by account, used for the
// email-change purpose.
func (r *verificationCodeRepository) DeleteByFuneralHome(ctx context.Context, purpose domain.VerificationPurpose, funeralHomeID uuid.UUID) error {
	const query = `
    DELETE FROM verification_codes WHERE purpose = ? AND funeral_home_id = uuid_to_bin(?)
    `

	if _, err := r.db.ExecContext(ctx, query, purpose, funeralHomeID); err != nil {
		return fmt.Errorf("delete verification codes by funeral home failed: %w", err)
	}

	return nil
}

func (r *verificationCodeRepository) GetByEmailAndCode(ctx context.Context, purpose domain.VerificationPurpose, email string, code string) (*domain.VerificationCode, error) {
	const query = `
    SELECT ` + verificationCodeColumns + `
    FROM verification_codes
    WHERE purpose = ? AND email = ? AND code = ?
    `

	var row domain.VerificationCode
	if err := r.db.GetContext(ctx, &row, query, purpose, email, code); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select verification code failed: %w", err)
	}

	return &row, nil
}

func (r *verificationCodeRepository) GetByFuneralHomeAndCode(ctx context.Context, purpose domain.VerificationPurpose, funeralHomeID uuid.UUID, email string, code string) (*domain.VerificationCode, error) {
	const query = `
    SELECT ` + verificationCodeColumns + `
    FROM verification_codes
    WHERE purpose = ? AND funeral_home_id = uuid_to_bin(?) AND email = ? AND code = ?
    `

	var row domain.VerificationCode
	if err := r.db.GetContext(ctx, &row, query, purpose, funeralHomeID, email, code); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select verification code failed: %w", err)
	}

	return &row, nil
}

// Consume deletes a code row by id. It reports domain.ErrNoRowsAffected when
// the row is already gone, which callers treat as an invalid code; this is
// what makes redemption single-use under concurrent attempts.
func (r *verificationCodeRepository) Consume(ctx context.Context, id uuid.UUID) error {
	const query = `
    DELETE FROM verification_codes WHERE id = uuid_to_bin(?)
    `

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete verification code failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected failed: %w", err)
	}

	if rows == 0 {
		return domain.ErrNoRowsAffected
	}

	return nil
}
