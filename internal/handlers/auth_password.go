package handlers

import (
	"errors"
	"net/http"

	"apiforge/internal/logger"
	"apiforge/internal/services"
	helpers "apiforge/internal/utils/helpers"

	"go.uber.org/zap"
)

// ForgotResponseText одинаков для известных и неизвестных email.
const ForgotResponseText = "If an account with that email exists, a password reset link has been sent."

type PasswordHandler struct {
	svc *services.PasswordService
}

func NewPasswordHandler(svc *services.PasswordService) *PasswordHandler {
	return &PasswordHandler{svc: svc}
}

type forgotReq struct {
	Email string `json:"email"`
}

// Forgot godoc
// @Summary Запрос восстановления пароля
// @Description Отправляет письмо со ссылкой для сброса пароля. Ответ всегда одинаковый, даже если e-mail не найден.
// @Tags password
// @Accept json
// @Produce plain
// @Param input body forgotReq true "Email пользователя"
// @Success 200 {string} string
// @Failure 500 {string} string
// @Router /api/password/forgot [post]
func (h *PasswordHandler) Forgot(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	var req forgotReq
	if err := decodeJSON(w, r, &req); err != nil {
		// Не раскрываем ничего и на кривом теле
		log.Warn("Невалидный payload в Forgot", zap.Error(err))
		helpers.Text(w, http.StatusOK, ForgotResponseText)
		return
	}

	if err := h.svc.RequestReset(r.Context(), req.Email); err != nil {
		log.Error("Сбой при запросе восстановления пароля", zap.Error(err))
		helpers.Text(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	helpers.Text(w, http.StatusOK, ForgotResponseText)
}

type resetReq struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// Reset godoc
// @Summary Сброс пароля по токену
// @Description Устанавливает новый пароль по токену из письма. Токен одноразовый.
// @Tags password
// @Accept json
// @Produce plain
// @Param input body resetReq true "Токен и новый пароль"
// @Success 200 {string} string
// @Failure 400 {string} string
// @Failure 500 {string} string
// @Router /api/password/reset [post]
func (h *PasswordHandler) Reset(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	var req resetReq
	if err := decodeJSON(w, r, &req); err != nil {
		helpers.Text(w, http.StatusBadRequest, "Missing token or password")
		return
	}

	err := h.svc.ResetPassword(r.Context(), req.Token, req.Password)
	var verr *services.ValidationError
	switch {
	case err == nil:
		helpers.Text(w, http.StatusOK, "Password has been reset successfully.")
	case errors.As(err, &verr):
		helpers.Text(w, http.StatusBadRequest, verr.Message)
	case errors.Is(err, services.ErrPasswordTooShort):
		helpers.Text(w, http.StatusBadRequest, "Password must be at least 8 characters.")
	case errors.Is(err, services.ErrPasswordTooLong):
		helpers.Text(w, http.StatusBadRequest, "Password must be at most 72 bytes.")
	case errors.Is(err, services.ErrInvalidToken):
		helpers.Text(w, http.StatusBadRequest, "Invalid token")
	case errors.Is(err, services.ErrTokenExpired):
		helpers.Text(w, http.StatusBadRequest, "Token has expired")
	default:
		log.Error("[PASSWORD_RESET_ERROR]", zap.Error(err))
		helpers.Text(w, http.StatusInternalServerError, "Internal Server Error")
	}
}
