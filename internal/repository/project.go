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

type projectRepository struct {
	db *sqlx.DB
}

func newProjectRepository(db *sqlx.DB) *projectRepository {
	return &projectRepository{
		db: db,
	}
}

func (r *projectRepository) Create(ctx context.Context, project *domain.Project) error {
	const query = `
	INSERT INTO projects (id, funeral_home_id, deceased_name, slug)
	VALUES (uuid_to_bin(?), uuid_to_bin(?), ?, ?);
	`

	_, err := r.db.ExecContext(ctx, query, project.ID, project.FuneralHomeID, project.DeceasedName, project.Slug)
	if err != nil {
		//nolint:errorlint
		if mysqlError, ok := err.(*mysql.MySQLError); ok && mysqlError.Number == db.DuplicateEntry {
			return domain.ErrDuplicateEntry
		}
		return fmt.Errorf("db insert project: %w", err)
	}

	return nil
}

func (r *projectRepository) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	const query = `
	SELECT id, funeral_home_id, deceased_name, slug, created_at FROM projects WHERE id = uuid_to_bin(?);
	`

	var project domain.Project
	if err := r.db.GetContext(ctx, &project, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select project by id failed: %w", err)
	}

	return &project, nil
}

func (r *projectRepository) GetBySlug(ctx context.Context, slug string) (*domain.Project, error) {
	const query = `
	SELECT id, funeral_home_id, deceased_name, slug, created_at FROM projects WHERE slug = ?;
	`

	var project domain.Project
	if err := r.db.GetContext(ctx, &project, query, slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select project by slug failed: %w", err)
	}

	return &project, nil
}

func (r *projectRepository) GetAllByFuneralHome(ctx context.Context, funeralHomeID uuid.UUID) ([]domain.Project, error) {
	const query = `
	SELECT id, funeral_home_id, deceased_name, slug, created_at
	FROM projects
	WHERE funeral_home_id = uuid_to_bin(?)
	ORDER BY created_at DESC;
	`

	projects := []domain.Project{}
	if err := r.db.SelectContext(ctx, &projects, query, funeralHomeID); err != nil {
		return nil, fmt.Errorf("select projects by funeral home failed: %w", err)
	}

	return projects, nil
}
