package models

import (
	"time"

	"github.com/google/uuid"
)

// Project — именованный набор mock-эндпоинтов одного пользователя.
type Project struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	UserID    uuid.UUID `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// ProjectDetail — проект вместе со всеми его эндпоинтами.
// У проекта без эндпоинтов в ответе будет "endpoints": [].
type ProjectDetail struct {
	Project
	Endpoints []Endpoint `json:"endpoints"`
}

type CreateProjectRequest struct {
	Name string `json:"name" validate:"required"`
}
