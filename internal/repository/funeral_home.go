package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/rei-kenpai/backend/internal/db"
	"github.com/rei-kenpai/backend/internal/domain"
)

type funeralHomeRepository struct {
	db *sqlx.DB
}

func newFuneralHomeRepository(db *sqlx.DB) *funeralHomeRepository {
	return &funeralHomeRepository{
		db: db,
	}
}

const funeralHomeColumns = "id, name, email, password_hash, stripe_account_id, stripe_onboarding_complete, created_at, updated_at"

func (r *funeralHomeRepository) Create(ctx context.Context, home *domain.FuneralHome) error {
	const query = `
	INSERT INTO funeral_homes (id, name, email, password_hash)
	VALUES (uuid_to_bin(?), ?, ?, ?);
	`

	_, err := r.db.ExecContext(ctx, query, home.ID, home.Name, home.Email, home.PasswordHash)
	if err != nil {
		//nolint:errorlint
		if mysqlError, ok := err.(*mysql.MySQLError); ok && mysqlError.Number == db.DuplicateEntry {
			return domain.ErrDuplicateEntry
		}
		return fmt.Errorf("db insert funeral home: %w", err)
	}

	return nil
}

func (r *funeralHomeRepository) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.FuneralHome, error) {
	const query = `
	SELECT ` + funeralHomeColumns + ` FROM funeral_homes WHERE id = uuid_to_bin(?);
	`

	var home domain.FuneralHome
	if err := r.db.GetContext(ctx, &home, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select funeral home by id failed: %w", err)
	}

	return &home, nil
}

func (r *funeralHomeRepository) GetByEmail(ctx context.Context, email string) (*domain.FuneralHome, error) {
	const query = `
	SELECT ` + funeralHomeColumns + ` FROM funeral_homes WHERE email = ?;
	`

	var home domain.FuneralHome
	if err := r.db.GetContext(ctx, &home, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select funeral home by email failed: %w", err)
	}

	return &home, nil
}

func (r *funeralHomeRepository) GetByName(ctx context.Context, name string) (*domain.FuneralHome, error) {
	const query = `
	SELECT ` + funeralHomeColumns + ` FROM funeral_homes WHERE name = ?;
	`

	var home domain.FuneralHome
	if err := r.db.GetContext(ctx, &home, query, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select funeral home by name failed: %w", err)
	}

	return &home, nil
}

func (r *funeralHomeRepository) UpdateEmail(ctx context.Context, id uuid.UUID, email string) error {
	const query = `
	UPDATE funeral_homes SET email = ? WHERE id = uuid_to_bin(?);
	`

	res, err := r.db.ExecContext(ctx, query, email, id)
	if err != nil {
		//nolint:errorlint
		if mysqlError, ok := err.(*mysql.MySQLError); ok && mysqlError.Number == db.DuplicateEntry {
			return domain.ErrDuplicateEntry
		}
		return fmt.Errorf("db update funeral home email: %w", err)
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

func (r *funeralHomeRepository) UpdatePasswordByEmail(ctx context.Context, email string, passwordHash string) error {
	const query = `
	UPDATE funeral_homes SET password_hash = ? WHERE email = ?;
	`

	res, err := r.db.ExecContext(ctx, query, passwordHash, email)
	if err != nil {
		return fmt.Errorf("db update funeral home password: %w", err)
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

func (r *funeralHomeRepository) UpdateStripeAccountID(ctx context.Context, id uuid.UUID, accountID string) error {
	const query = `
	UPDATE funeral_homes SET stripe_account_id = ? WHERE id = uuid_to_bin(?);
	`

	if _, err := r.db.ExecContext(ctx, query, accountID, id); err != nil {
		return fmt.Errorf("db update stripe account id: %w", err)
	}

	return nil
}

func (r *funeralHomeRepository) SetOnboardingComplete(ctx context.Context, id uuid.UUID) error {
	const query = `
	UPDATE funeral_homes SET stripe_onboarding_complete = true WHERE id = uuid_to_bin(?);
	`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db update stripe onboarding flag: %w", err)
	}

	return nil
}
