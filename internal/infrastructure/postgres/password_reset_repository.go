package postgres

import (
	"context"
	"time"

	"github.com/jhoicas/Marketplace-api/internal/domain"
	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	"github.com/jhoicas/Marketplace-api/internal/domain/repository"
)

var _ repository.PasswordResetRepository = (*PasswordResetRepo)(nil)

// PasswordResetRepo tokens de restablecimiento; solo se guarda el hash.
type PasswordResetRepo struct {
	q Querier
}

func NewPasswordResetRepository(q Querier) *PasswordResetRepo {
	return &PasswordResetRepo{q: q}
}

func (r *PasswordResetRepo) Create(ctx context.Context, pr *entity.PasswordReset) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO password_resets (id, user_id, token_hash, expires_at, used_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		pr.ID, pr.UserID, pr.TokenHash, pr.ExpiresAt, pr.UsedAt, pr.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return storeErr("insert password reset", err)
	}
	return nil
}

func (r *PasswordResetRepo) GetByTokenHash(ctx context.Context, hash string) (*entity.PasswordReset, error) {
	var pr entity.PasswordReset
	err := r.q.QueryRow(ctx, `
		SELECT id, user_id, token_hash, expires_at, used_at, created_at
		FROM password_resets WHERE token_hash = $1`, hash,
	).Scan(&pr.ID, &pr.UserID, &pr.TokenHash, &pr.ExpiresAt, &pr.UsedAt, &pr.CreatedAt)
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, storeErr("get password reset", err)
	}
	return &pr, nil
}

// MarkUsed consume el token con una sola sentencia condicional; dos peticiones con el mismo token no pueden ganar ambas.
func (r *PasswordResetRepo) MarkUsed(ctx context.Context, id string, at time.Time) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE password_resets SET used_at = $2
		WHERE id = $1 AND used_at IS NULL AND expires_at > $2`, id, at)
	if err != nil {
		return storeErr("mark password reset used", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTokenExpired
	}
	return nil
}
