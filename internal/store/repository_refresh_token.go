// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-learning-platform/internal/logger"
)

// refreshTokenRepository is the PostgreSQL-backed implementation of
// [RefreshTokenRepository].
//
// The "refresh_tokens" table has UNIQUE(user_id), so a user never owns more
// than one live token. Rotation and replacement both run in a transaction,
// and Replace deletes the presented hash with a conditional DELETE ...
// RETURNING. Two concurrent refreshes with the same token therefore yield
// exactly one winner: the loser finds no row to delete.
type refreshTokenRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewRefreshTokenRepository constructs a [RefreshTokenRepository].
func NewRefreshTokenRepository(db *DB, logger *logger.Logger) RefreshTokenRepository {
	logger.Debug().Msg("creating refresh token repository")
	return &refreshTokenRepository{
		db:     db,
		logger: logger,
	}
}

// Rotate deletes every stored token of userID and stores tokenHash.
func (r *refreshTokenRepository) Rotate(ctx context.Context, userID int64, tokenHash string, expiresAt time.Time) error {
	log := logger.FromContext(ctx)

	err := r.db.inTx(ctx, "*refreshTokenRepository.Rotate", func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, deleteUserRefreshTokens, userID); err != nil {
			log.Err(err).Str("func", "*refreshTokenRepository.Rotate").Int64("user_id", userID).Msg("failed to delete old refresh tokens")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.dbError(err))
		}

		if _, err := tx.ExecContext(ctx, upsertRefreshToken, userID, tokenHash, expiresAt); err != nil {
			log.Err(err).Str("func", "*refreshTokenRepository.Rotate").Int64("user_id", userID).Msg("failed to store refresh token")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.dbError(err))
		}

		return nil
	})
	if err != nil {
		return err
	}

	log.Debug().Str("func", "*refreshTokenRepository.Rotate").Int64("user_id", userID).Msg("refresh token rotated")
	return nil
}

// Replace consumes oldHash and stores newHash in one transaction.
func (r *refreshTokenRepository) Replace(ctx context.Context, userID int64, oldHash, newHash string, expiresAt time.Time) error {
	log := logger.FromContext(ctx)

	return r.db.inTx(ctx, "*refreshTokenRepository.Replace", func(tx *sql.Tx) error {
		var consumedID int64
		err := tx.QueryRowContext(ctx, consumeRefreshToken, userID, oldHash).Scan(&consumedID)
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn().Str("func", "*refreshTokenRepository.Replace").Int64("user_id", userID).Msg("presented refresh token is not the live one")
			return ErrRefreshTokenNotFound
		}
		if err != nil {
			log.Err(err).Str("func", "*refreshTokenRepository.Replace").Int64("user_id", userID).Msg("failed to consume refresh token")
			return fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.dbError(err))
		}

		if _, err = tx.ExecContext(ctx, upsertRefreshToken, userID, newHash, expiresAt); err != nil {
			log.Err(err).Str("func", "*refreshTokenRepository.Replace").Int64("user_id", userID).Msg("failed to store refresh token")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.dbError(err))
		}

		return nil
	})
}

func (r *refreshTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, deleteExpiredRefreshTokens, now)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*refreshTokenRepository.DeleteExpired").Msg("failed to delete expired refresh tokens")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.dbError(err))
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, r.db.dbError(err)
	}

	return deleted, nil
}
