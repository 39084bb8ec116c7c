package auth

import "github.com/jhoicas/Marketplace-api/internal/domain/entity"

// Identity usuario autenticado de la petición en curso, extraído del JWT.
// Vive solo durante la petición; nunca se guarda en estado global.
type Identity struct {
	UserID string
	Email  string
	Role   string
}

// IsAdmin indica si la identidad tiene rol administrador.
func (i Identity) IsAdmin() bool { return i.Role == entity.RoleAdmin }
