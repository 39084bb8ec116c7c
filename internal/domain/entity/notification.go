package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Marketplace-api/internal/domain"
)

// Notification aviso para todos los usuarios (TargetAll) o para un conjunto explícito.
type Notification struct {
	ID            string
	Title         string
	Message       string
	IsRead        bool
	IsImportant   bool
	TargetAll     bool
	TargetUserIDs []string
	CreatedAt     time.Time
}

// Validate exige título y mensaje, y un destino: todos o al menos un usuario.
func (n *Notification) Validate() error {
	if strings.TrimSpace(n.Title) == "" || strings.TrimSpace(n.Message) == "" {
		return fmt.Errorf("%w: title y message son requeridos", domain.ErrInvalidInput)
	}
	if n.TargetAll == (len(n.TargetUserIDs) > 0) {
		return fmt.Errorf("%w: indique target all o una lista de usuarios, no ambos", domain.ErrInvalidInput)
	}
	return nil
}

// TargetsUser indica si la notificación va dirigida a userID.
func (n *Notification) TargetsUser(userID string) bool {
	if n.TargetAll {
		return true
	}
	for _, id := range n.TargetUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}
