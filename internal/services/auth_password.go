package services

import (
	"apiforge/internal/logger"
	"apiforge/internal/repository"
	"apiforge/internal/utils"
	helpers "apiforge/internal/utils/helpers"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	minPasswordLen     = 8
	resetEmailSubject  = "Reset Your API Forge Password"
	defaultResetTTL    = time.Hour
	resetPasswordRoute = "/reset-password"
)

type PasswordService struct {
	users    repository.UserRepo
	resets   repository.PasswordResetRepo
	mailer   Mailer
	appURL   string // ссылка вида <appURL>/reset-password?token=...
	tokenTTL time.Duration
	now      func() time.Time
}

func NewPasswordService(users repository.UserRepo, resets repository.PasswordResetRepo, mailer Mailer, appURL string, tokenTTL time.Duration) *PasswordService {
	if tokenTTL <= 0 {
		tokenTTL = defaultResetTTL
	}
	return &PasswordService{
		users:    users,
		resets:   resets,
		mailer:   mailer,
		appURL:   strings.TrimRight(appURL, "/"),
		tokenTTL: tokenTTL,
		now:      time.Now,
	}
}

// RequestReset выдаёт новый одноразовый токен и отправляет письмо со ссылкой.
// Для неизвестного email возвращает nil: вызывающий не должен отличать этот случай.
// Ошибка возвращается только при сбое базы; сбой отправки письма только логируется.
func (s *PasswordService) RequestReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	log := logger.WithCtx(ctx)

	if email == "" {
		return nil
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Info("Запрос сброса для неизвестного email", zap.String("email_masked", maskEmail(email)))
			return nil
		}
		return fmt.Errorf("find user: %w", err)
	}

	secret, err := utils.NewResetSecret()
	if err != nil {
		return fmt.Errorf("generate reset secret: %w", err)
	}

	// В базе храним только хеш
	expires := s.now().Add(s.tokenTTL)
	if err := s.resets.Replace(ctx, user.ID, utils.HashToken(secret), expires); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	resetLink := s.appURL + resetPasswordRoute + "?token=" + url.QueryEscape(secret)
	if err := s.mailer.Send(ctx, user.Email, resetEmailSubject, helpers.BuildPasswordResetHTML(resetLink, s.tokenTTL)); err != nil {
		log.Error("Ошибка отправки письма для сброса пароля",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return nil
	}

	log.Info("Письмо со ссылкой на сброс пароля отправлено",
		zap.String("user_id", user.ID.String()),
		zap.Time("expires_at", expires),
	)
	return nil
}

// ResetPassword проверяет токен, меняет пароль и гасит токен.
func (s *PasswordService) ResetPassword(ctx context.Context, token, newPassword string) error {
	log := logger.WithCtx(ctx)

	if strings.TrimSpace(token) == "" || newPassword == "" {
		return invalid("Missing token or password")
	}
	if len([]rune(newPassword)) < minPasswordLen {
		return ErrPasswordTooShort
	}
	if len(newPassword) > utils.MaxPasswordBytes {
		return ErrPasswordTooLong
	}

	rec, err := s.resets.GetByHash(ctx, utils.HashToken(strings.TrimSpace(token)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Warn("Неизвестный токен сброса пароля")
			return ErrInvalidToken
		}
		return fmt.Errorf("find reset token: %w", err)
	}

	if rec.Expired(s.now()) {
		log.Warn("Просроченный токен сброса пароля", zap.String("user_id", rec.UserID.String()))
		return ErrTokenExpired
	}

	pwHash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.resets.Consume(ctx, rec, pwHash); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Токен погасил параллельный запрос.
			return ErrInvalidToken
		}
		return fmt.Errorf("consume reset token: %w", err)
	}

	log.Info("Пароль успешно сброшен", zap.String("user_id", rec.UserID.String()))
	return nil
}

func maskEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return "***"
	}
	if at <= 1 {
		return "***" + email[at:]
	}
	return email[:1] + "***" + email[at:]
}
