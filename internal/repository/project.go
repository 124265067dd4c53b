package repository

import (
	"apiforge/internal/models"
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProjectRepo interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Project, error)
	Create(ctx context.Context, p *models.Project) error
	GetOwned(ctx context.Context, id, userID uuid.UUID) (*models.Project, error)
	GetOwnedWithEndpoints(ctx context.Context, id, userID uuid.UUID) (*models.ProjectDetail, error)
}

type ProjectRepository struct {
	db *pgxpool.Pool
}

func NewProjectRepository(db *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// ListByUser — проекты пользователя по имени (побайтово, COLLATE "C").
func (r *ProjectRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Project, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, user_id, created_at
		FROM projects
		WHERE user_id = $1
		ORDER BY name COLLATE "C" ASC, id ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := make([]models.Project, 0)
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.UserID, &p.CreatedAt); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *ProjectRepository) Create(ctx context.Context, p *models.Project) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO projects (name, user_id) VALUES ($1, $2) RETURNING id, created_at`,
		p.Name, p.UserID,
	).Scan(&p.ID, &p.CreatedAt)
	return mapErr(err)
}

func (r *ProjectRepository) GetOwned(ctx context.Context, id, userID uuid.UUID) (*models.Project, error) {
	var p models.Project
	err := r.db.QueryRow(ctx,
		`SELECT id, name, user_id, created_at FROM projects WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&p.ID, &p.Name, &p.UserID, &p.CreatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &p, nil
}

// GetOwnedWithEndpoints читает проект и его эндпоинты одним запросом.
// Эндпоинты отсортированы по пути.
func (r *ProjectRepository) GetOwnedWithEndpoints(ctx context.Context, id, userID uuid.UUID) (*models.ProjectDetail, error) {
	rows, err := r.db.Query(ctx, `
		SELECT p.id, p.name, p.user_id, p.created_at,
		       e.id, e.method, e.path, e.json_body, e.created_at
		FROM projects p
		LEFT JOIN endpoints e ON e.project_id = p.id
		WHERE p.id = $1 AND p.user_id = $2
		ORDER BY e.path COLLATE "C" ASC NULLS FIRST, e.id ASC
	`, id, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var p *models.ProjectDetail
	for rows.Next() {
		var (
			cur       models.Project
			eID       *uuid.UUID
			eMethod   *string
			ePath     *string
			eJSONBody *string
			eCreated  *time.Time
		)
		if err := rows.Scan(&cur.ID, &cur.Name, &cur.UserID, &cur.CreatedAt,
			&eID, &eMethod, &ePath, &eJSONBody, &eCreated); err != nil {
			return nil, err
		}
		if p == nil {
			p = &models.ProjectDetail{Project: cur, Endpoints: make([]models.Endpoint, 0)}
		}
		if eID == nil {
			continue
		}
		p.Endpoints = append(p.Endpoints, models.Endpoint{
			ID:        *eID,
			Method:    *eMethod,
			Path:      *ePath,
			JSONBody:  *eJSONBody,
			ProjectID: p.ID,
			CreatedAt: *eCreated,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}
