package entity

import (
	"fmt"
	"net/mail"
	"strconv"
	"time"

	"github.com/jhoicas/Marketplace-api/internal/domain"
)

// Claves de configuración del sitio.
const (
	SettingMaintenanceMode = "maintenance_mode"
	SettingSiteTitle       = "site_title"
	SettingContactEmail    = "contact_email"
	SettingPageSizeDefault = "page_size_default"
)

// DefaultSettings valores iniciales cuando la tabla está vacía.
var DefaultSettings = map[string]string{
	SettingMaintenanceMode: "false",
	SettingSiteTitle:       "Marketplace",
	SettingContactEmail:    "soporte@marketplace.local",
	SettingPageSizeDefault: "10",
}

// Setting par clave-valor de configuración global del sitio.
type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// ValidateSetting valida el valor según la clave. maxPageSize acota page_size_default.
func ValidateSetting(key, value string, maxPageSize int) error {
	switch key {
	case SettingMaintenanceMode:
		if _, err := strconv.ParseBool(value); err != nil {
			return fmt.Errorf("%w: %s debe ser true o false", domain.ErrInvalidInput, key)
		}
	case SettingSiteTitle:
		if value == "" {
			return fmt.Errorf("%w: %s no puede estar vacío", domain.ErrInvalidInput, key)
		}
	case SettingContactEmail:
		if _, err := mail.ParseAddress(value); err != nil {
			return fmt.Errorf("%w: %s no es un email válido", domain.ErrInvalidInput, key)
		}
	case SettingPageSizeDefault:
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 || n > maxPageSize {
			return fmt.Errorf("%w: %s debe estar entre 1 y %d", domain.ErrInvalidInput, key, maxPageSize)
		}
	default:
		return fmt.Errorf("%w: clave %q desconocida", domain.ErrNotFound, key)
	}
	return nil
}
