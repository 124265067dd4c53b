package repository

import (
	"apiforge/internal/models"
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type EndpointRepo interface {
	Create(ctx context.Context, e *models.Endpoint) error
}

type EndpointRepository struct {
	db *pgxpool.Pool
}

func NewEndpointRepository(db *pgxpool.Pool) *EndpointRepository {
	return &EndpointRepository{db: db}
}

func (r *EndpointRepository) Create(ctx context.Context, e *models.Endpoint) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO endpoints (method, path, json_body, project_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, e.Method, e.Path, e.JSONBody, e.ProjectID).Scan(&e.ID, &e.CreatedAt)
	return mapErr(err)
}
