package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// La capa HTTP los traduce a códigos de estado; nunca se expone el detalle de ErrStore al cliente.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInvalidTransition  = errors.New("transición de estado no permitida")
	ErrStaleStatus        = errors.New("el estado cambió mientras se procesaba la solicitud")
	ErrTokenExpired       = errors.New("token inválido o expirado")
	ErrStore              = errors.New("error de almacenamiento")
	ErrMaintenance        = errors.New("sitio en mantenimiento")
)
