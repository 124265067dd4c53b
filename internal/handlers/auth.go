package handlers

import (
	"apiforge/internal/logger"
	"apiforge/internal/models"
	"apiforge/internal/reqctx"
	"apiforge/internal/services"
	helpers "apiforge/internal/utils/helpers"
	"apiforge/internal/validator"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type AuthHandler struct {
	authService  *services.AuthService
	cookieName   string
	secureCookie bool
	sessionTTL   time.Duration
}

func NewAuthHandler(authService *services.AuthService, cookieName string, secureCookie bool, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		cookieName:   cookieName,
		secureCookie: secureCookie,
		sessionTTL:   sessionTTL,
	}
}

// Register godoc
// @Summary Регистрация нового пользователя
// @Tags auth
// @Accept json
// @Produce json
// @Param input body models.RegisterRequest true "Данные регистрации"
// @Success 200 {object} models.UserProfileResponse
// @Failure 400 {object} map[string]string
// @Router /api/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		logger.WithCtx(r.Context()).Warn("Ошибка декодирования JSON в Register", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	user, err := h.authService.RegisterUser(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	helpers.JSON(w, http.StatusOK, user.Profile())
}

// Login godoc
// @Summary Вход по email и паролю
// @Description Выдаёт сессионный токен (в теле и в HttpOnly cookie).
// @Tags auth
// @Accept json
// @Produce json
// @Param input body models.LoginRequest true "Данные для входа"
// @Success 200 {object} models.LoginResponse
// @Failure 401 {object} map[string]string
// @Router /api/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := validator.Struct(req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "Missing email or password")
		return
	}

	token, user, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.sessionTTL),
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	helpers.JSON(w, http.StatusOK, models.LoginResponse{Token: token, User: user.Profile()})
}

// Logout godoc
// @Summary Выход (удаление сессионной cookie)
// @Tags auth
// @Success 200 {object} map[string]string
// @Router /api/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	helpers.JSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// Session godoc
// @Summary Текущий пользователь
// @Tags auth
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} models.UserProfileResponse
// @Failure 401 {object} map[string]string
// @Router /api/session [get]
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	u, ok := reqctx.UserFrom(r.Context())
	if !ok {
		helpers.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.authService.GetUserByID(r.Context(), u.ID)
	if err != nil {
		// Токен валиден, но пользователя уже нет.
		helpers.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	helpers.JSON(w, http.StatusOK, user.Profile())
}
