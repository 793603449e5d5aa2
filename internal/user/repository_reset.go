package user

import (
	"context"
	"database/sql"
	"errors"

	"bookstore-be/internal/db"
	"bookstore-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InvalidateResetTokens marks every unused token of the user as used.
func (r *repository) InvalidateResetTokens(ctx context.Context, userID uint) error {
	const q = `
		UPDATE password_reset_tokens
		SET is_used = true
		WHERE user_id = $1 AND is_used = false
	`

	if _, err := r.db.ExecContext(ctx, q, userID); err != nil {
		logger.FromCtx(ctx).Error("failed to invalidate reset tokens",
			zap.String("layer", "repository"),
			zap.Uint("user_id", userID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (r *repository) CreateResetToken(ctx context.Context, t *PasswordResetToken) error {
	const q = `
		INSERT INTO password_reset_tokens (user_id, token, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, q, t.UserID, t.Token, t.ExpiresAt).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to create reset token",
			zap.String("layer", "repository"),
			zap.Uint("user_id", t.UserID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (r *repository) GetResetToken(ctx context.Context, token string) (*PasswordResetToken, error) {
	parsed, err := uuid.Parse(token)
	if err != nil {
		return nil, ErrInvalidResetToken
	}

	const q = `
		SELECT id, user_id, token, created_at, expires_at, is_used, used_at
		FROM password_reset_tokens
		WHERE token = $1
	`

	var t PasswordResetToken
	err = r.db.QueryRowContext(ctx, q, parsed).Scan(
		&t.ID, &t.UserID, &t.Token, &t.CreatedAt, &t.ExpiresAt, &t.IsUsed, &t.UsedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvalidResetToken
	}
	if err != nil {
		logger.FromCtx(ctx).Error("query failed",
			zap.String("layer", "repository"),
			zap.String("method", "GetResetToken"),
			zap.Error(err),
		)
		return nil, err
	}
	return &t, nil
}

// ConsumeResetToken sets the new password and marks the token used in one
// transaction. A token consumed concurrently makes the second call fail with
// ErrResetTokenUsed.
func (r *repository) ConsumeResetToken(ctx context.Context, t *PasswordResetToken, passwordHash string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ConsumeResetToken"),
		zap.Uint("user_id", t.UserID),
	)

	return db.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE password_reset_tokens
			SET is_used = true, used_at = NOW()
			WHERE id = $1 AND is_used = false
		`, t.ID)
		if err != nil {
			log.Error("failed to mark token used", zap.Error(err))
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ErrResetTokenUsed
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE users SET password_hash = $1 WHERE id = $2`,
			passwordHash, t.UserID,
		); err != nil {
			log.Error("failed to update password", zap.Error(err))
			return err
		}

		return nil
	})
}
