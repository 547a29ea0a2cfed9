package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/rei-kenpai/backend/internal/domain"
)

type kenpaiRepository struct {
	db *sqlx.DB
}

func newKenpaiRepository(db *sqlx.DB) *kenpaiRepository {
	return &kenpaiRepository{
		db: db,
	}
}

func (r *kenpaiRepository) Create(ctx context.Context, kenpai *domain.Kenpai) error {
	const op = "repository.kenpai.Create"

	const query = `
    INSERT INTO kenpai (id, project_id, donor_name, amount, message)
    VALUES (uuid_to_bin(:id), uuid_to_bin(:project_id), :donor_name, :amount, :message)
    `

	res, err := r.db.NamedExecContext(ctx, query, kenpai)
	if err != nil {
		return fmt.Errorf("%s: insert kenpai failed: %w", op, err)
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

func (r *kenpaiRepository) GetAllByProject(ctx context.Context, projectID uuid.UUID) ([]domain.Kenpai, error) {
	const query = `
	SELECT id, project_id, donor_name, amount, message, created_at
	FROM kenpai
	WHERE project_id = uuid_to_bin(?)
	ORDER BY created_at DESC;
	`

	records := []domain.Kenpai{}
	if err := r.db.SelectContext(ctx, &records, query, projectID); err != nil {
		return nil, fmt.Errorf("select kenpai by project failed: %w", err)
	}

	return records, nil
}
