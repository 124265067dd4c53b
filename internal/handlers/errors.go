package handlers

import (
	"apiforge/internal/logger"
	"apiforge/internal/services"
	helpers "apiforge/internal/utils/helpers"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}

// writeError переводит ошибку сервиса в HTTP-статус.
// Непредвиденные ошибки логируются, клиент получает общий текст.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		helpers.Error(w, http.StatusBadRequest, verr.Message)
	case errors.Is(err, services.ErrEmailTaken):
		helpers.Error(w, http.StatusBadRequest, "email is already registered")
	case errors.Is(err, services.ErrPasswordTooLong):
		helpers.Error(w, http.StatusBadRequest, "password must be at most 72 bytes")
	case errors.Is(err, services.ErrInvalidCredentials):
		helpers.Error(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, services.ErrForbidden):
		helpers.Error(w, http.StatusForbidden, "Forbidden")
	case errors.Is(err, services.ErrProjectNotFound):
		helpers.Error(w, http.StatusNotFound, "Project not found")
	default:
		logger.WithCtx(r.Context()).Error("Внутренняя ошибка",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		helpers.Error(w, http.StatusInternalServerError, "Internal Server Error")
	}
}
