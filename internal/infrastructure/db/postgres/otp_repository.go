package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/oladokun-o/engine/internal/core/domain"
	"github.com/oladokun-o/engine/internal/core/ports"
)

type OtpRepository struct {
	db DBTX
}

func NewOtpRepository(db DBTX) *OtpRepository {
	return &OtpRepository{db: db}
}

var _ ports.OtpRepository = (*OtpRepository)(nil)

func (r *OtpRepository) Create(ctx context.Context, record *domain.OtpRecord) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO otps (id, user_id, code, created_at, expires_at) VALUES ($1, $2, $3, $4, $5)`,
		id, record.UserID, record.Code, record.CreatedAt, record.ExpiresAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	record.ID = id
	return nil
}

func (r *OtpRepository) FindByUserAndCode(ctx context.Context, userID, code string) (*domain.OtpRecord, error) {
	if !validID(userID) {
		return nil, domain.ErrOtpNotFound
	}
	return r.findOne(ctx,
		`SELECT id, user_id, code, created_at, expires_at FROM otps WHERE user_id = $1 AND code = $2
		 ORDER BY created_at DESC LIMIT 1`, userID, code)
}

func (r *OtpRepository) findOne(ctx context.Context, query string, args ...any) (*domain.OtpRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rec domain.OtpRecord
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&rec.ID, &rec.UserID, &rec.Code, &rec.CreatedAt, &rec.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrOtpNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &rec, nil
}

func (r *OtpRepository) Delete(ctx context.Context, id string) (bool, error) {
	if !validID(id) {
		return false, nil
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM otps WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n == 1, nil
}

func (r *OtpRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	if !validID(userID) {
		return 0, nil
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM otps WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
