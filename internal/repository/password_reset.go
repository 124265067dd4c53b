package repository

import (
	"apiforge/internal/logger"
	"apiforge/internal/models"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type PasswordResetRepo interface {
	Replace(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error
	GetByHash(ctx context.Context, tokenHash string) (*models.PasswordResetToken, error)
	Consume(ctx context.Context, token *models.PasswordResetToken, passwordHash string) error
}

type PasswordResetRepository struct {
	db *pgxpool.Pool
}

func NewPasswordResetRepository(db *pgxpool.Pool) *PasswordResetRepository {
	return &PasswordResetRepository{db: db}
}

// Replace выдаёт пользователю новый токен вместо старого.
// У пользователя не больше одной строки (UNIQUE user_id), поэтому хватает одного upsert.
func (r *PasswordResetRepository) Replace(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO password_reset_tokens (user_id, token, expires)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET id = gen_random_uuid(), token = EXCLUDED.token, expires = EXCLUDED.expires, created_at = now()
	`, userID, tokenHash, expiresAt)
	if err != nil {
		logger.Log.Error("Create reset token failed", zap.Error(err), zap.String("user_id", userID.String()))
	}
	return mapErr(err)
}

func (r *PasswordResetRepository) GetByHash(ctx context.Context, tokenHash string) (*models.PasswordResetToken, error) {
	var t models.PasswordResetToken
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, token, expires, created_at
		FROM password_reset_tokens
		WHERE token = $1
	`, tokenHash).Scan(&t.ID, &t.UserID, &t.TokenHash, &t.ExpiresAt, &t.CreatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &t, nil
}

// Consume в одной транзакции удаляет токен и меняет пароль.
// Если токен уже удалён параллельным запросом, возвращает ErrNotFound и ничего не меняет.
func (r *PasswordResetRepository) Consume(ctx context.Context, token *models.PasswordResetToken, passwordHash string) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM password_reset_tokens WHERE id = $1 AND token = $2`, token.ID, token.TokenHash)
		if err != nil {
			return fmt.Errorf("delete reset token: %w", err)
		}
		if tag.RowsAffected() != 1 {
			return ErrNotFound
		}

		tag, err = tx.Exec(ctx, `UPDATE users SET password_hash = $1 WHERE id = $2`, passwordHash, token.UserID)
		if err != nil {
			return fmt.Errorf("update password: %w", err)
		}
		if tag.RowsAffected() != 1 {
			return ErrNotFound
		}
		return nil
	})
}
