package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/rei-kenpai/backend/internal/domain"
	"github.com/rei-kenpai/backend/internal/repository"
)

type projectService struct {
	projectRepository repository.Projects
	kenpaiRepository  repository.KenpaiRecords
}

func newProjectService(projectRepository repository.Projects, kenpaiRepository repository.KenpaiRecords) *projectService {
	return &projectService{
		projectRepository: projectRepository,
		kenpaiRepository:  kenpaiRepository,
	}
}

func (s *projectService) Create(ctx context.Context, funeralHomeID uuid.UUID, deceasedName string, slug string) (*domain.Project, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate project id failed: %w", err)
	}

	project := &domain.Project{
		ID:            id,
		FuneralHomeID: funeralHomeID,
		DeceasedName:  deceasedName,
		Slug:          slug,
	}

	if err := s.projectRepository.Create(ctx, project); err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("create project failed: %w", err)
	}

	return project, nil
}

func (s *projectService) GetAllByFuneralHome(ctx context.Context, funeralHomeID uuid.UUID) ([]domain.Project, error) {
	return s.projectRepository.GetAllByFuneralHome(ctx, funeralHomeID)
}

func (s *projectService) GetBySlug(ctx context.Context, slug string) (*domain.Project, []domain.Kenpai, error) {
	project, err := s.projectRepository.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, ErrProjectNotFound
		}
		return nil, nil, fmt.Errorf("get project by slug failed: %w", err)
	}

	records, err := s.kenpaiRepository.GetAllByProject(ctx, project.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("list kenpai failed: %w", err)
	}

	return project, records, nil
}
