package usecase

import (
	"context"

	"github.com/jhoicas/Marketplace-api/internal/application/admin"
	"github.com/jhoicas/Marketplace-api/internal/application/dto"
	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	"github.com/jhoicas/Marketplace-api/internal/domain/repository"
	"github.com/jhoicas/Marketplace-api/internal/domain/resource"
)

// UserAdmin administración de cuentas: el cambio de "estado" es el cambio de rol.
type UserAdmin = admin.Resource[entity.User, dto.UserResponse]

// NewUserAdmin construye el recurso users.
func NewUserAdmin(repo repository.UserRepository, maxLimit int) *UserAdmin {
	return admin.New(admin.Config[entity.User, dto.UserResponse]{
		Schema:     resource.Users,
		Store:      repo,
		ToResponse: toUserResponse,
		StatusOf:   func(u *entity.User) string { return u.Role },
		UpdateStatus: func(ctx context.Context, u *entity.User, to, _ string) error {
			return repo.UpdateRole(ctx, u.ID, to)
		},
		Delete:   repo.Delete,
		MaxLimit: maxLimit,
	})
}
