package models

import (
	"time"

	"github.com/google/uuid"
)

// Endpoint — сохранённое описание mock-ответа (метод, путь, JSON-тело).
type Endpoint struct {
	ID        uuid.UUID `json:"id"`
	Method    string    `json:"method"`
	Path      string    `json:"path"`
	JSONBody  string    `json:"jsonBody"`
	ProjectID uuid.UUID `json:"projectId"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateEndpointRequest struct {
	Method   string `json:"method" validate:"required,oneof=GET POST PUT PATCH DELETE HEAD OPTIONS"`
	Path     string `json:"path" validate:"required"`
	JSONBody string `json:"jsonBody" validate:"required,json"`
}
