package ports

import (
	"context"
	"time"
)

// SettingsCache caché de la configuración del sitio. Get devuelve ok=false si no hay entrada.
type SettingsCache interface {
	Get(ctx context.Context) (map[string]string, bool, error)
	Set(ctx context.Context, values map[string]string, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}

// StateStore guarda el parámetro state de OAuth hasta que vuelve el callback.
// Consume es de un solo uso: devuelve false si no existe o ya venció.
type StateStore interface {
	Save(ctx context.Context, state string, ttl time.Duration) error
	Consume(ctx context.Context, state string) (bool, error)
}

// RateLimiter ventana fija por clave. Allow devuelve false cuando se supera limit.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}
