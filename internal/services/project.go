package services

import (
	"apiforge/internal/logger"
	"apiforge/internal/models"
	"apiforge/internal/repository"
	"apiforge/internal/validator"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProjectService struct {
	projects  repository.ProjectRepo
	endpoints repository.EndpointRepo
}

func NewProjectService(projects repository.ProjectRepo, endpoints repository.EndpointRepo) *ProjectService {
	return &ProjectService{projects: projects, endpoints: endpoints}
}

func (s *ProjectService) List(ctx context.Context, userID uuid.UUID) ([]models.Project, error) {
	projects, err := s.projects.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

func (s *ProjectService) Create(ctx context.Context, userID uuid.UUID, req models.CreateProjectRequest) (*models.Project, error) {
	req.Name = plain(req.Name)
	if err := validator.Struct(req); err != nil {
		return nil, invalid("Project name is required")
	}

	p := &models.Project{Name: req.Name, UserID: userID}
	if err := s.projects.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	logger.WithCtx(ctx).Info("Проект создан", zap.String("project_id", p.ID.String()))
	return p, nil
}

// Get возвращает проект пользователя вместе с эндпоинтами.
// Чужой, несуществующий и некорректный id неразличимы: ErrProjectNotFound.
func (s *ProjectService) Get(ctx context.Context, userID uuid.UUID, projectID string) (*models.ProjectDetail, error) {
	id, err := uuid.Parse(projectID)
	if err != nil {
		return nil, ErrProjectNotFound
	}
	p, err := s.projects.GetOwnedWithEndpoints(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

// CreateEndpoint сначала проверяет владение проектом (ErrForbidden), затем поля запроса.
func (s *ProjectService) CreateEndpoint(ctx context.Context, userID uuid.UUID, projectID string, req models.CreateEndpointRequest) (*models.Endpoint, error) {
	id, err := uuid.Parse(projectID)
	if err != nil {
		return nil, ErrForbidden
	}
	if _, err := s.projects.GetOwned(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.WithCtx(ctx).Warn("Попытка создать эндпоинт в чужом проекте", zap.String("project_id", projectID))
			return nil, ErrForbidden
		}
		return nil, fmt.Errorf("check project owner: %w", err)
	}

	req.Method = strings.ToUpper(strings.TrimSpace(req.Method))
	req.Path = strings.TrimSpace(req.Path)
	req.JSONBody = strings.TrimSpace(req.JSONBody)
	if err := validator.Struct(req); err != nil {
		var verr *validator.Error
		if errors.As(err, &verr) && verr.MissingRequired() {
			return nil, invalid("Missing required fields")
		}
		return nil, invalid(err.Error())
	}

	e := &models.Endpoint{
		Method:    req.Method,
		Path:      req.Path,
		JSONBody:  req.JSONBody,
		ProjectID: id,
	}
	if err := s.endpoints.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("create endpoint: %w", err)
	}

	logger.WithCtx(ctx).Info("Эндпоинт создан",
		zap.String("project_id", id.String()),
		zap.String("method", e.Method),
		zap.String("path", e.Path),
	)
	return e, nil
}
