// Package bootstrap arma la infraestructura compartida por cmd/api y cmd/worker
// según la configuración: almacén (PostgreSQL o memoria) y servicios efímeros (Redis o memoria).
package bootstrap

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Marketplace-api/internal/application/ports"
	"github.com/jhoicas/Marketplace-api/internal/domain/repository"
	"github.com/jhoicas/Marketplace-api/internal/infrastructure/memory"
	"github.com/jhoicas/Marketplace-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/Marketplace-api/internal/infrastructure/redis"
	"github.com/jhoicas/Marketplace-api/pkg/config"
)

// Repositories repositorios de la aplicación, independientes del driver.
type Repositories struct {
	Users         repository.UserRepository
	Products      repository.ProductRepository
	Orders        repository.OrderRepository
	Reviews       repository.ReviewRepository
	Tickets       repository.TicketRepository
	Notifications repository.NotificationRepository
	Settings      repository.SettingRepository
	Resets        repository.PasswordResetRepository
	Analytics     repository.AnalyticsRepository
	Tx            repository.TxRunner

	close func()
}

// Close libera el pool de conexiones, si lo hay.
func (r *Repositories) Close() {
	if r.close != nil {
		r.close()
	}
}

// OpenStore abre el almacén configurado en STORE_DRIVER.
// Con DB_MIGRATE_ON_START aplica las migraciones pendientes.
func OpenStore(ctx context.Context, cfg config.DBConfig) (*Repositories, error) {
	switch cfg.Driver {
	case "memory":
		log.Warn().Msg("STORE_DRIVER=memory: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return &Repositories{
			Users:         s.Users(),
			Products:      s.Products(),
			Orders:        s.Orders(),
			Reviews:       s.Reviews(),
			Tickets:       s.Tickets(),
			Notifications: s.Notifications(),
			Settings:      s.Settings(),
			Resets:        s.Resets(),
			Analytics:     s.Analytics(),
			Tx:            s.TxRunner(),
		}, nil
	case "", "postgres":
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if cfg.MigrateOnStart {
			if err := postgres.Migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, fmt.Errorf("migraciones: %w", err)
			}
		}
		s := postgres.NewStore(pool)
		return &Repositories{
			Users:         s.Users(),
			Products:      s.Products(),
			Orders:        s.Orders(),
			Reviews:       s.Reviews(),
			Tickets:       s.Tickets(),
			Notifications: s.Notifications(),
			Settings:      s.Settings(),
			Resets:        s.Resets(),
			Analytics:     s.Analytics(),
			Tx:            s.TxRunner(),
			close:         pool.Close,
		}, nil
	default:
		return nil, fmt.Errorf("STORE_DRIVER %q no soportado", cfg.Driver)
	}
}

// Ephemeral estado de corta duración: caché de settings, state OAuth y rate limit.
type Ephemeral struct {
	SettingsCache ports.SettingsCache // nil sin Redis
	States        ports.StateStore
	RateLimiter   ports.RateLimiter

	close func() error
}

// Close cierra el cliente Redis, si lo hay.
func (e *Ephemeral) Close() error {
	if e.close != nil {
		return e.close()
	}
	return nil
}

// OpenEphemeral usa Redis si REDIS_ADDR está definido. Sin Redis los states OAuth
// y el rate limit viven en memoria (por réplica) y no hay caché de settings.
func OpenEphemeral(ctx context.Context, cfg config.RedisConfig) (*Ephemeral, error) {
	rdb, err := infraredis.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("conexión a Redis: %w", err)
	}
	if rdb == nil {
		log.Warn().Msg("REDIS_ADDR vacío: sin caché de settings; states y rate limit en memoria")
		return &Ephemeral{States: memory.NewStateStore(), RateLimiter: memory.NewRateLimiter()}, nil
	}
	return &Ephemeral{
		SettingsCache: infraredis.NewSettingsCache(rdb),
		States:        infraredis.NewStateStore(rdb),
		RateLimiter:   infraredis.NewRateLimiter(rdb),
		close:         rdb.Close,
	}, nil
}
