package services

import (
	"apiforge/internal/logger"
	"apiforge/internal/models"
	"apiforge/internal/repository"
	"apiforge/internal/utils"
	"apiforge/internal/validator"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService struct {
	repo       repository.UserRepo
	jwtSecret  string
	sessionTTL time.Duration
}

func NewAuthService(repo repository.UserRepo, jwtSecret string, sessionTTL time.Duration) *AuthService {
	return &AuthService{repo: repo, jwtSecret: jwtSecret, sessionTTL: sessionTTL}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) RegisterUser(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	req.Name = plain(req.Name)
	req.Email = normalizeEmail(req.Email)
	if err := validator.Struct(req); err != nil {
		return nil, invalid(err.Error())
	}
	if len(req.Password) > utils.MaxPasswordBytes {
		return nil, ErrPasswordTooLong
	}

	log := logger.WithCtx(ctx)
	log.Info("Регистрация пользователя (service)", zap.String("email", req.Email))

	exists, err := s.repo.IsEmailTaken(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Error("Ошибка хеширования пароля", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashed,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		// Гонка двух регистраций с одним email ловится уникальным индексом.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	log.Info("Пользователь зарегистрирован (service)", zap.String("user_id", user.ID.String()))
	return user, nil
}

// Login проверяет email и пароль и выдаёт сессионный токен.
// Неизвестный email и неверный пароль неразличимы для клиента.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	email = normalizeEmail(email)
	log := logger.WithCtx(ctx)

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Warn("Пользователь не найден (service)", zap.String("email", email))
			utils.CheckDummyPassword(password)
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("get user: %w", err)
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		log.Warn("Неверный пароль (service)", zap.String("user_id", user.ID.String()))
		return "", nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(s.jwtSecret, user.ID, user.Email, s.sessionTTL)
	if err != nil {
		return "", nil, fmt.Errorf("generate session token: %w", err)
	}

	log.Info("Вход выполнен (service)", zap.String("user_id", user.ID.String()))
	return token, user, nil
}

// Authenticate разбирает сессионный токен.
func (s *AuthService) Authenticate(token string) (*utils.SessionClaims, error) {
	return utils.ParseToken(s.jwtSecret, token)
}

func (s *AuthService) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		logger.WithCtx(ctx).Warn("Пользователь не найден по ID (service)", zap.String("user_id", id.String()), zap.Error(err))
		return nil, err
	}
	return user, nil
}
