package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
)

// SettingRepository configuración global clave-valor.
type SettingRepository interface {
	List(ctx context.Context) ([]*entity.Setting, error)
	Get(ctx context.Context, key string) (*entity.Setting, error)
	Upsert(ctx context.Context, s *entity.Setting) error
}

// PasswordResetRepository tokens de restablecimiento de contraseña.
type PasswordResetRepository interface {
	Create(ctx context.Context, pr *entity.PasswordReset) error
	GetByTokenHash(ctx context.Context, hash string) (*entity.PasswordReset, error)
	// MarkUsed consume el token en at solo si sigue sin usar y vigente; si no, domain.ErrTokenExpired.
	MarkUsed(ctx context.Context, id string, at time.Time) error
}
