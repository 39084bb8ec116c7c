package entity

import (
	"fmt"
	"time"

	"github.com/jhoicas/Marketplace-api/internal/domain"
)

// Roles válidos para User.
const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
	RoleAdmin  = "admin"
)

// Roles en el orden en que los muestra la consola.
var Roles = []string{RoleBuyer, RoleSeller, RoleAdmin}

// User representa una cuenta del marketplace.
// PasswordHash es nil para cuentas creadas solo con Google; Role vacío hasta que
// la cuenta OAuth elige comprador o vendedor.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash *string
	Role         string
	GoogleID     *string
	RoleSelected bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasPassword indica si la cuenta admite login local.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// ValidateRole verifica que role pertenezca al conjunto admitido.
func ValidateRole(role string) error {
	for _, r := range Roles {
		if r == role {
			return nil
		}
	}
	return fmt.Errorf("%w: rol %q no admitido", domain.ErrInvalidInput, role)
}

// RoleTransition el rol de un usuario puede cambiar libremente entre los valores válidos.
func RoleTransition(from, to string) bool {
	return ValidateRole(to) == nil
}
