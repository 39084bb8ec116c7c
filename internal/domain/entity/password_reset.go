package entity

import "time"

// PasswordReset token de un solo uso para restablecer la contraseña. Solo se guarda el hash.
type PasswordReset struct {
	ID        string
	UserID    string
	TokenHash string
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}

// Usable indica si el token no se ha usado y no ha vencido en now.
func (p *PasswordReset) Usable(now time.Time) bool {
	return p.UsedAt == nil && now.Before(p.ExpiresAt)
}
